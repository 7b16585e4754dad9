package models

import (
	"fmt"

	"github.com/taskhive/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&UserProfile{},
		&Category{},
		&Project{},
		&Task{},
		&RefreshToken{},
		&SystemLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates a starter set of categories on first boot.
func SeedDefaultData() error {
	var count int64
	DB.Model(&Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	defaults := []Category{
		{Name: "Development", Description: "Implementation work", Color: "#007bff"},
		{Name: "Design", Description: "UX and visual design", Color: "#6f42c1"},
		{Name: "Documentation", Description: "Docs and specs", Color: "#28a745"},
		{Name: "Bug", Description: "Defects and regressions", Color: "#dc3545"},
	}
	for _, cat := range defaults {
		if err := DB.Create(&cat).Error; err != nil {
			return err
		}
	}
	return nil
}
