package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"invoice-financing/internal/clock"
)

const (
	defaultProvisionalTTL = 60 * time.Second
	// allowed client/server clock skew for Ax-Request-At
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

type IdempotencyConfig struct {
	Redis *redis.Client
	// TTL is how long a finished response stays replayable
	TTL   time.Duration
	Log   *zap.Logger
	Clock clock.Clock
}

type respRecorder struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *respRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// Idempotency makes mutating requests safe to retry. The key is method +
// route + Ax-Client-Id + Ax-Request-Id; a retry with the same body replays
// the stored response, a different body or an unfinished original is a 409.
func Idempotency(cfg IdempotencyConfig) echo.MiddlewareFunc {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("idempotency")
	clk := cfg.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	s := &store{rdb: cfg.Redis, provisionalTTL: defaultProvisionalTTL, ttl: cfg.TTL}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			hdr, err := parseHeaders(req.Header, clk.Now().UTC(), maxClockSkew)
			if err != nil {
				return errorJSON(c, http.StatusBadRequest, err.Error())
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			hash := bodyHash(body)

			key := storeKey(req.Method, c.Path(), hdr.clientID, hdr.requestID)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			ok, err := s.reserve(ctx, key, entry{
				InProgress:  true,
				BodySHA256:  hash,
				RequestID:   hdr.requestID,
				RequestAtMS: hdr.at.UnixMilli(),
				CreatedAt:   clk.Now().UTC(),
			})
			if err != nil {
				log.Warn("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				return errorJSON(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !ok {
				cur, err := s.load(ctx, key)
				if err != nil {
					log.Warn("load idempotency entry failed", zap.String("key", key), zap.Error(err))
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != hash {
					return errorJSON(c, http.StatusConflict, HeaderRequestID+" reused with different body")
				}
				if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return errorJSON(c, http.StatusConflict, "request is already in progress")
			}

			rec := &respRecorder{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			final := entry{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  hash,
				RequestID:   hdr.requestID,
				RequestAtMS: hdr.at.UnixMilli(),
				CreatedAt:   clk.Now().UTC(),
			}
			if err := s.finish(context.WithoutCancel(req.Context()), key, final); err != nil {
				log.Warn("store idempotent response failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
