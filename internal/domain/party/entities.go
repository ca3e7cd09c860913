package party

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrIssuerNotFound  = errors.New("issuer not found")
	ErrObligorNotFound = errors.New("obligor not found")
	ErrInvalidName     = errors.New("name is required")
	ErrInvalidMaxRate  = errors.New("max financing rate must be between 0 and 10000 bps")
)

// MaxRateCeilingBps is 100%: a higher rate would discount more than the face value.
const MaxRateCeilingBps = 10_000

// Issuer is the creditor that billed the obligor and asks for early payment.
type Issuer struct {
	ID   uint64 `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex:ux_issuers_name" json:"name"`
	// Ceiling for the prorated rate a financier may charge, in basis points.
	MaxRateBps int       `gorm:"column:max_rate_bps;not null" json:"max_rate_bps"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Issuer) TableName() string { return "issuers" }

func NewIssuer(name string, maxRateBps int) (*Issuer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if maxRateBps < 0 || maxRateBps > MaxRateCeilingBps {
		return nil, ErrInvalidMaxRate
	}
	return &Issuer{Name: name, MaxRateBps: maxRateBps}, nil
}

// Obligor is the debtor that owes the invoice amount at maturity.
type Obligor struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:ux_obligors_name" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Obligor) TableName() string { return "obligors" }

func NewObligor(name string) (*Obligor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Obligor{Name: name}, nil
}
