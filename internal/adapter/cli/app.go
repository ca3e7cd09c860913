package cli

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-financing/internal/config"
	"invoice-financing/internal/infrastructure/db"
	"invoice-financing/internal/infrastructure/logger"
)

// app holds what every data command needs.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func openApp(flags *rootFlags) (*app, error) {
	cfg := config.Load(flags.envFile)
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logger.NewConsole(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbOpts := []db.Option{db.WithLogger(log, db.ParseLogLevel(cfg.LogLevel))}
	var gdb *gorm.DB
	switch cfg.DBDriver {
	case config.DriverSQLite:
		gdb, err = db.OpenSQLite(cfg.SQLitePath, dbOpts...)
	default:
		gdb, err = db.OpenGorm(cfg.MySQLDSN(), dbOpts...)
	}
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return &app{cfg: cfg, log: log, db: gdb}, nil
}

func (a *app) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}
