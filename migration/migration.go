// Package migration brings the schema up to date. Postgres runs the embedded
// goose migrations; sqlite, used for development and tests, is auto-migrated
// from the gorm models.
package migration

import (
	"embed"
	"fmt"

	"blog-api/models"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Models lists every table owned by the application in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Blog{},
		&models.Comment{},
		&models.Reaction{},
		&models.ViewCount{},
		&models.Notification{},
		&models.ContactMessage{},
		&models.Advertisement{},
	}
}

func Run(db *gorm.DB) error {
	switch name := db.Dialector.Name(); name {
	case "postgres":
		return Goose(db)
	case "sqlite":
		if err := db.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		log.Info().Str("driver", name).Msg("database schema migrated")
		return nil
	default:
		return fmt.Errorf("no migrations for dialect %q", name)
	}
}

// Goose applies all pending SQL migrations.
func Goose(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	log.Info().Int64("version", version).Msg("database migrations applied")
	return nil
}
