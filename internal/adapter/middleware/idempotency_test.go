package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"invoice-financing/internal/clock"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

const (
	reqID    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	clientID = "treasury-batch"
)

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func setupEcho(rdb *redis.Client, ttl time.Duration, log *zap.Logger, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Idempotency(IdempotencyConfig{Redis: rdb, TTL: ttl, Log: log, Clock: clock.Fixed(fixedNow)}))
	e.POST("/financing/runs", handler)
	e.GET("/financing/runs", handler)
	return e
}

func validHeaders() map[string]string {
	return map[string]string{
		HeaderRequestID: reqID,
		HeaderRequestAt: fixedNow.Format(time.RFC3339),
		HeaderClientID:  clientID,
	}
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body []byte, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func countingHandler(calls *int32) echo.HandlerFunc {
	return func(c echo.Context) error {
		n := atomic.AddInt32(calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"run": n})
	}
}

func TestIdempotency_BypassOnGET(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, time.Minute, nil, countingHandler(&calls))

	rec := doReq(t, e, http.MethodGet, "/financing/runs", nil, nil)
	if rec.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("GET should pass through, got %d calls=%d", rec.Code, calls)
	}
}

func TestIdempotency_HeaderValidation(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, time.Minute, nil, countingHandler(&calls))

	tests := []struct {
		name   string
		mutate func(h map[string]string)
		want   string
	}{
		{"missing request id", func(h map[string]string) { delete(h, HeaderRequestID) }, "missing Ax-Request-Id"},
		{"invalid request id", func(h map[string]string) { h[HeaderRequestID] = "NOT-VALID" }, "invalid Ax-Request-Id"},
		{"missing request at", func(h map[string]string) { delete(h, HeaderRequestAt) }, "missing Ax-Request-At"},
		{"naive timestamp", func(h map[string]string) { h[HeaderRequestAt] = "2026-03-02T10:00:00" }, "RFC3339"},
		{"skewed past", func(h map[string]string) {
			h[HeaderRequestAt] = fixedNow.Add(-maxClockSkew - time.Minute).Format(time.RFC3339)
		}, "too skewed"},
		{"skewed future epoch", func(h map[string]string) {
			h[HeaderRequestAt] = strconv.FormatInt(fixedNow.Add(time.Hour).Unix(), 10)
		}, "too skewed"},
		{"missing client id", func(h map[string]string) { delete(h, HeaderClientID) }, "missing Ax-Client-Id"},
		{"invalid client id", func(h map[string]string) { h[HeaderClientID] = "has spaces" }, "invalid Ax-Client-Id"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := validHeaders()
			tt.mutate(h)
			rec := doReq(t, e, http.MethodPost, "/financing/runs", []byte(`{}`), h)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d body=%s", rec.Code, rec.Body.String())
			}
			if tt.want != "" && !strings.Contains(rec.Body.String(), tt.want) {
				t.Fatalf("body %s does not mention %q", rec.Body.String(), tt.want)
			}
		})
	}
	if calls != 0 {
		t.Fatalf("handler must not run on invalid headers, ran %d times", calls)
	}
}

func TestIdempotency_ReplaysFinishedResponse(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, 2*time.Minute, nil, countingHandler(&calls))

	rec1 := doReq(t, e, http.MethodPost, "/financing/runs", []byte(`{}`), validHeaders())
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	rec2 := doReq(t, e, http.MethodPost, "/financing/runs", []byte(`{}`), validHeaders())
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() || calls != 1 {
		t.Fatalf("expected replay without a second call: %q vs %q (calls=%d)", rec1.Body.String(), rec2.Body.String(), calls)
	}

	key := storeKey(http.MethodPost, "/financing/runs", clientID, reqID)
	if ttl := mr.TTL(key); ttl != 2*time.Minute {
		t.Fatalf("final entry TTL = %v, want 2m", ttl)
	}

	// another client may reuse the same request id
	h := validHeaders()
	h[HeaderClientID] = "other-client"
	if rec := doReq(t, e, http.MethodPost, "/financing/runs", []byte(`{}`), h); rec.Code != http.StatusCreated || calls != 2 {
		t.Fatalf("other client => want fresh call, got %d calls=%d", rec.Code, calls)
	}
}

func TestIdempotency_ConflictWhenInProgress(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, time.Minute, nil, countingHandler(&calls))

	body := []byte(`{}`)
	s := &store{rdb: rdb, provisionalTTL: time.Minute, ttl: time.Minute}
	key := storeKey(http.MethodPost, "/financing/runs", clientID, reqID)
	if ok, err := s.reserve(context.Background(), key, entry{InProgress: true, BodySHA256: bodyHash(body), RequestID: reqID}); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/financing/runs", body, validHeaders())
	if rec.Code != http.StatusConflict || !strings.Contains(rec.Body.String(), "already in progress") {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
	if calls != 0 {
		t.Fatalf("handler must not run while original is in progress")
	}
}

func TestIdempotency_ConflictOnDifferentBody(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, time.Minute, nil, countingHandler(&calls))

	if rec := doReq(t, e, http.MethodPost, "/financing/runs", []byte(`{"a":1}`), validHeaders()); rec.Code != http.StatusCreated {
		t.Fatalf("first => %d", rec.Code)
	}
	rec := doReq(t, e, http.MethodPost, "/financing/runs", []byte(`{"a":2}`), validHeaders())
	if rec.Code != http.StatusConflict || !strings.Contains(rec.Body.String(), "different body") {
		t.Fatalf("different body same request id => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestIdempotency_StoreUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })
	core, logs := observer.New(zapcore.WarnLevel)
	var calls int32
	e := setupEcho(rdb, time.Minute, zap.New(core), countingHandler(&calls))

	rec := doReq(t, e, http.MethodPost, "/financing/runs", []byte(`{}`), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
	if logs.FilterMessage("idempotency store unavailable").Len() != 1 {
		t.Fatalf("expected a warning, got %v", logs.All())
	}
}

func TestIdempotency_RecordsHandlerErrors(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, time.Minute, nil, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusConflict, "financing run already in progress")
	})

	rec := doReq(t, e, http.MethodPost, "/financing/runs", []byte(`{}`), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d", rec.Code)
	}

	s := &store{rdb: rdb}
	got, err := s.load(context.Background(), storeKey(http.MethodPost, "/financing/runs", clientID, reqID))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var body map[string]string
	_ = json.Unmarshal(got.Body, &body)
	if got.InProgress || got.Code != http.StatusConflict || body["message"] == "" {
		t.Fatalf("unexpected stored entry: %+v", got)
	}
}
