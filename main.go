package main

import (
	"fmt"

	"bitwise74/cloudmedia/app"
	"bitwise74/cloudmedia/config"
	"bitwise74/cloudmedia/db"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.SetupAPI()
	if err != nil {
		panic(err)
	}

	config.MakeLogger()

	if *config.Migrate {
		conn, err := db.New()
		if err != nil {
			panic(err)
		}

		if err := db.RunMigrations(conn); err != nil {
			panic(err)
		}

		zap.L().Info("Migrations applied")
		return
	}

	r, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", viper.GetInt("host.port")))

	err = r.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
