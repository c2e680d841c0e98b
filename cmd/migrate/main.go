package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/softdesk/api/pkg/config"
	"github.com/softdesk/api/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := runMigrations(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
