package financing

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"invoice-financing/internal/domain/invoice"
)

// RunSummary counts what a financing run did. Processed is the sum of the
// four outcome counters.
type RunSummary struct {
	Pages             int `json:"pages"`
	Processed         int `json:"processed"`
	Financed          int `json:"financed"`
	MissingFinanciers int `json:"missing_financiers"`
	ShortTerm         int `json:"short_term"`
	RateLimitExceeded int `json:"rate_limit_exceeded"`
}

func (s *RunSummary) record(status invoice.Status) {
	s.Processed++
	switch status {
	case invoice.StatusFinanced:
		s.Financed++
	case invoice.StatusMissingFinanciers:
		s.MissingFinanciers++
	case invoice.StatusShortTerm:
		s.ShortTerm++
	case invoice.StatusRateLimitExceeded:
		s.RateLimitExceeded++
	}
}

func (s RunSummary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("pages", s.Pages)
	enc.AddInt("processed", s.Processed)
	enc.AddInt("financed", s.Financed)
	enc.AddInt("missing_financiers", s.MissingFinanciers)
	enc.AddInt("short_term", s.ShortTerm)
	enc.AddInt("rate_limit_exceeded", s.RateLimitExceeded)
	return nil
}

func (s RunSummary) field() zap.Field { return zap.Object("summary", s) }
