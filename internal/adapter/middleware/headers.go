package middleware

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"invoice-financing/pkg/id"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	HeaderClientID  = "Ax-Client-Id"
)

var (
	reUUID     = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reClientID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)
)

// requestHeaders are the caller-supplied idempotency coordinates.
type requestHeaders struct {
	requestID string
	clientID  string
	at        time.Time
}

type headerError struct{ msg string }

func (e headerError) Error() string { return e.msg }

func parseHeaders(h http.Header, now time.Time, maxSkew time.Duration) (requestHeaders, error) {
	var out requestHeaders

	out.requestID = strings.ToLower(strings.TrimSpace(h.Get(HeaderRequestID)))
	switch {
	case out.requestID == "":
		return out, headerError{"missing " + HeaderRequestID}
	case !reUUID.MatchString(out.requestID) && !id.IsID32(out.requestID):
		return out, headerError{"invalid " + HeaderRequestID + " format"}
	}

	at, err := parseRequestAt(h.Get(HeaderRequestAt))
	if err != nil {
		return out, headerError{err.Error()}
	}
	if at.Before(now.Add(-maxSkew)) || at.After(now.Add(maxSkew)) {
		return out, headerError{HeaderRequestAt + " too skewed"}
	}
	out.at = at

	out.clientID = strings.TrimSpace(h.Get(HeaderClientID))
	switch {
	case out.clientID == "":
		return out, headerError{"missing " + HeaderClientID}
	case !reClientID.MatchString(out.clientID):
		return out, headerError{"invalid " + HeaderClientID}
	}
	return out, nil
}

// parseRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339(Nano)
// with an explicit zone. Naive local timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
}
