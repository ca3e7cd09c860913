package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/invoices/:invoice_id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.POST("/financing/runs", func(c echo.Context) error { return errors.New("db down") })

	req := httptest.NewRequest(http.MethodGet, "/invoices/abc", nil)
	req.Header.Set(HeaderClientID, "ops")
	e.ServeHTTP(httptest.NewRecorder(), req)

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/financing/runs", nil))

	entries := logs.FilterMessage("request").All()
	if len(entries) != 2 {
		t.Fatalf("want 2 access log lines, got %d", len(entries))
	}

	ok := entries[0].ContextMap()
	if ok["route"] != "/invoices/:invoice_id" || ok["status"] != int64(200) || ok["client_id"] != "ops" {
		t.Fatalf("unexpected fields: %v", ok)
	}
	if entries[0].LoggerName != "http" {
		t.Fatalf("logger name = %q", entries[0].LoggerName)
	}

	failed := entries[1]
	if failed.Level != zapcore.ErrorLevel || failed.ContextMap()["status"] != int64(500) {
		t.Fatalf("5xx should log at error level: %+v", failed)
	}
}
