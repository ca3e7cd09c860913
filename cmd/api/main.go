package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadp "invoice-financing/internal/adapter/http"
	idemp "invoice-financing/internal/adapter/middleware"
	"invoice-financing/internal/adapter/repository/mysql"
	"invoice-financing/internal/config"
	"invoice-financing/internal/infrastructure/cache"
	"invoice-financing/internal/infrastructure/db"
	"invoice-financing/internal/infrastructure/logger"
	"invoice-financing/internal/usecase/financing"
	invoiceuc "invoice-financing/internal/usecase/invoice"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := openDB(cfg, zl)
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		zl.Fatal("database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cache.WithRedisLogger(zl))
	if err != nil {
		zl.Fatal("open redis", zap.Error(err))
	}
	defer rdb.Close()

	// wiring
	u := mysql.NewGormUoW(gdb)
	invoiceUC := invoiceuc.NewUsecase(mysql.NewInvoiceRepository(gdb), mysql.NewPartyRepository(gdb))
	financingUC := financing.NewUsecase(financing.Params{
		UoW:    u,
		Log:    zl,
		Lock:   cache.NewRunLock(rdb, cache.FinancingRunKey, cache.DefaultLockTTL),
		Config: financing.Config{BatchSize: cfg.FinancingBatchSize},
	})

	h := httpadp.NewHandler(
		httpadp.Check{Name: "db", Ping: sqlDB.PingContext},
		httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)
	invoiceH := httpadp.NewInvoiceHandler(invoiceUC, zl)
	financingH := httpadp.NewFinancingHandler(financingUC, zl)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(idemp.RequestLogger(zl), middleware.Recover())

	idempotent := idemp.Idempotency(idemp.IdempotencyConfig{
		Redis: rdb,
		TTL:   time.Duration(cfg.IdempTTLSecs) * time.Second,
		Log:   zl,
	})

	// routes
	e.GET("/health", h.Health)
	e.POST("/invoices", invoiceH.CreateInvoice, idempotent)
	e.GET("/invoices/:invoice_id", invoiceH.GetInvoice)
	e.POST("/invoices/:invoice_id/finance", financingH.FinanceInvoice, idempotent)
	e.POST("/financing/runs", financingH.RunFinancing, idempotent)

	go func() {
		addr := ":" + cfg.AppPort
		zl.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}

func openDB(cfg *config.Config, zl *zap.Logger) (*gorm.DB, error) {
	opts := []db.Option{db.WithLogger(zl, db.ParseLogLevel(cfg.LogLevel))}
	if cfg.DBDriver == config.DriverSQLite {
		return db.OpenSQLite(cfg.SQLitePath, opts...)
	}
	return db.OpenGorm(cfg.MySQLDSN(), opts...)
}
