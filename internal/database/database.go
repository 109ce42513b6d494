package database

import (
	"fmt"
	"log"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database/migrations"
)

var DB *gorm.DB

func Connect(dsn string, verbose bool) {
	level := logger.Warn
	if verbose {
		level = logger.Info // 👀 Log niveau info
	}

	var err error
	DB, err = gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		log.Fatalf("Erreur de connexion à Supabase: %v", err)
	}
}

// Migrate applique les migrations SQL embarquées
func Migrate() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("récupération sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.Up(sqlDB, ".")
}
