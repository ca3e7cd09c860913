package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type options struct {
	log          *zap.Logger
	logLevel     logger.LogLevel
	maxOpenConns int
}

type Option func(*options)

// WithLogger routes gorm's SQL log through l at the given level.
func WithLogger(l *zap.Logger, level logger.LogLevel) Option {
	return func(o *options) {
		o.log = l
		o.logLevel = level
	}
}

func WithMaxOpenConns(n int) Option {
	return func(o *options) { o.maxOpenConns = n }
}

func OpenGorm(dsn string, opts ...Option) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), opts...)
}

// OpenSQLite opens a sqlite database. A single connection keeps shared-cache
// in-memory databases consistent across the pool.
func OpenSQLite(path string, opts ...Option) (*gorm.DB, error) {
	return OpenGormWithDialector(sqlite.Open(path), append([]Option{WithMaxOpenConns(1)}, opts...)...)
}

func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{logLevel: logger.Warn, maxOpenConns: 30}
	for _, opt := range opts {
		opt(&o)
	}

	// pinged explicitly below, after the pool is sized
	cfg := &gorm.Config{Logger: logger.Discard, DisableAutomaticPing: true}
	if o.log != nil {
		cfg.Logger = logger.New(zap.NewStdLog(o.log.Named("gorm")), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  o.logLevel,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dial.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.maxOpenConns)
	sqlDB.SetMaxIdleConns(min(10, o.maxOpenConns))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", dial.Name(), err)
	}
	if o.log != nil {
		o.log.Info("gorm: connected", zap.String("dialect", dial.Name()))
	}
	return db, nil
}

// ParseLogLevel maps a textual level onto gorm's logger levels.
func ParseLogLevel(s string) logger.LogLevel {
	switch s {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}
