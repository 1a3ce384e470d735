package db

import (
	"fmt"

	"bitwise74/cloudmedia/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type migration struct {
	Name string
	Run  func(tx *gorm.DB) error
}

// Applied in order, tracked by name in the migrations table.
// Append only, never edit an entry that has shipped.
var migrations = []migration{
	{
		Name: "001_create_media_files",
		Run: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&model.MediaFile{})
		},
	},
}

// RunMigrations applies every migration that hasn't been recorded yet.
// Each one runs in its own transaction together with its bookkeeping row,
// so a failed migration leaves no trace and can be retried.
func RunMigrations(db *gorm.DB) error {
	if !db.Migrator().HasTable(&model.Migration{}) {
		if err := db.Migrator().CreateTable(&model.Migration{}); err != nil {
			return fmt.Errorf("failed to create migrations table, %w", err)
		}
	}

	for _, m := range migrations {
		var count int64

		err := db.Model(&model.Migration{}).Where("name = ?", m.Name).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check migration %s, %w", m.Name, err)
		}

		if count > 0 {
			continue
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}

			return tx.Create(&model.Migration{Name: m.Name}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed, %w", m.Name, err)
		}

		zap.L().Info("Applied migration", zap.String("name", m.Name))
	}

	return nil
}
