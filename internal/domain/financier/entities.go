package financier

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// BankingYearDays is the day count used to prorate annual rates.
	BankingYearDays = 360
	// DefaultBatchSize is the page size used when none is configured.
	DefaultBatchSize = 10
)

var (
	ErrNotFound            = errors.New("financier not found")
	ErrInvalidName         = errors.New("financier name is required")
	ErrInvalidMinTerm      = errors.New("minimum financing term must not be negative")
	ErrInvalidRate         = errors.New("annual rate must not be negative")
	ErrMissingIssuer       = errors.New("rate configuration requires an issuer")
	ErrDuplicateRateConfig = errors.New("duplicate rate configuration for issuer")
)

// Financier (purchaser) pays issuers early in exchange for a discount.
type Financier struct {
	ID          uint64       `gorm:"primaryKey;column:id" json:"id"`
	Name        string       `gorm:"size:255;not null;uniqueIndex:ux_financiers_name" json:"name"`
	MinTermDays int          `gorm:"column:min_term_days;not null" json:"min_term_days"`
	RateConfigs []RateConfig `gorm:"foreignKey:FinancierID;constraint:OnDelete:CASCADE" json:"rate_configs"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"-"`
}

func (Financier) TableName() string { return "financiers" }

// RateConfig is the annual rate a financier charges a given issuer.
// At most one row exists per (financier, issuer).
type RateConfig struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	FinancierID   uint64    `gorm:"column:financier_id;not null;uniqueIndex:ux_rate_configs_financier_issuer,priority:1" json:"-"`
	IssuerID      uint64    `gorm:"column:issuer_id;not null;index;uniqueIndex:ux_rate_configs_financier_issuer,priority:2" json:"issuer_id"`
	AnnualRateBps int       `gorm:"column:annual_rate_bps;not null" json:"annual_rate_bps"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"-"`
}

func (RateConfig) TableName() string { return "rate_configs" }

// New validates and builds a financier with its per-issuer rates.
func New(name string, minTermDays int, configs ...RateConfig) (*Financier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if minTermDays < 0 {
		return nil, ErrInvalidMinTerm
	}
	seen := make(map[uint64]struct{}, len(configs))
	for _, c := range configs {
		if c.IssuerID == 0 {
			return nil, ErrMissingIssuer
		}
		if c.AnnualRateBps < 0 {
			return nil, fmt.Errorf("issuer %d: %w", c.IssuerID, ErrInvalidRate)
		}
		if _, dup := seen[c.IssuerID]; dup {
			return nil, fmt.Errorf("issuer %d: %w", c.IssuerID, ErrDuplicateRateConfig)
		}
		seen[c.IssuerID] = struct{}{}
	}
	return &Financier{
		Name:        name,
		MinTermDays: minTermDays,
		RateConfigs: append([]RateConfig(nil), configs...),
	}, nil
}
