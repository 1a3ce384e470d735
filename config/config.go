// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	// Migrate makes the binary apply pending schema migrations and exit
	// instead of serving requests
	Migrate = pflag.Bool("migrate", false, "Applies pending database migrations and exits")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("db.host", "db_host")
	v.BindEnv("db.port", "db_port")
	v.BindEnv("db.user", "db_user")
	v.BindEnv("db.password", "db_password")
	v.BindEnv("db.name", "db_name")
	v.BindEnv("db.ssl_mode", "db_ssl_mode")

	v.BindEnv("s3.endpoint", "s3_endpoint")
	v.BindEnv("s3.region", "s3_region")
	v.BindEnv("s3.access_key_id", "s3_access_key_id")
	v.BindEnv("s3.secret_access_key", "s3_secret_access_key")
	v.BindEnv("s3.bucket", "s3_bucket")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("thumbnail.max_dim", "thumbnail_max_dim")
	v.BindEnv("thumbnail.port", "thumbnail_port")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("db.port", 5432)
	v.SetDefault("db.ssl_mode", "disable")

	v.SetDefault("s3.region", "auto")

	v.SetDefault("upload.max_size", 50)

	v.SetDefault("thumbnail.max_dim", 200)
	v.SetDefault("thumbnail.port", 8081)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		// Everything can come from env vars, a config.toml is optional
	}

	if err := validateShared(); err != nil {
		return err
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}

// SetupAPI runs Setup plus the checks only the API server needs. The
// thumbnailer never opens the database, so it must not fail on missing
// db settings.
func SetupAPI() error {
	if err := Setup(); err != nil {
		return err
	}

	return validateAPI()
}

// Settings both binaries depend on
func validateShared() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	for _, key := range []string{"s3.endpoint", "s3.access_key_id", "s3.secret_access_key", "s3.bucket"} {
		if v.GetString(key) == "" {
			return fmt.Errorf("%s can't be empty", key)
		}
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("thumbnail.max_dim") <= 0 {
		return errors.New("thumbnail.max_dim must be bigger than 0")
	}

	if v.GetInt("thumbnail.port") <= 0 {
		return errors.New("invalid thumbnailer port provided")
	}

	return nil
}

// Settings only the API server depends on
func validateAPI() error {
	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	for _, key := range []string{"db.host", "db.user", "db.password", "db.name"} {
		if v.GetString(key) == "" {
			return fmt.Errorf("%s can't be empty", key)
		}
	}

	return nil
}
