package invoice

import (
	"errors"
	"time"

	"invoice-financing/internal/domain/party"
)

var (
	ErrNotFound         = errors.New("invoice not found")
	ErrAlreadyProcessed = errors.New("invoice already processed")
	ErrInvalidFaceValue = errors.New("face value must not be negative")
	ErrMissingIssuer    = errors.New("invoice requires an issuer")
	ErrMissingObligor   = errors.New("invoice requires an obligor")
	ErrMissingMaturity  = errors.New("invoice requires a maturity date")
)

type Status string

const (
	StatusNonFinanced       Status = "NON_FINANCED"
	StatusFinanced          Status = "FINANCED"
	StatusMissingFinanciers Status = "MISSING_FINANCIERS"
	StatusShortTerm         Status = "SHORT_TERM"
	StatusRateLimitExceeded Status = "RATE_LIMIT_EXCEEDED"
)

// Terminal reports whether the status is a final outcome of a financing pass.
func (s Status) Terminal() bool {
	switch s {
	case StatusFinanced, StatusMissingFinanciers, StatusShortTerm, StatusRateLimitExceeded:
		return true
	}
	return false
}

type Invoice struct {
	ID        uint64        `gorm:"primaryKey;column:id;index:idx_invoices_status_id,priority:2" json:"-"`
	InvoiceID string        `gorm:"size:32;not null;uniqueIndex:ux_invoices_invoice_id" json:"invoice_id"`
	IssuerID  uint64        `gorm:"column:issuer_id;not null;index:idx_invoices_issuer" json:"issuer_id"`
	Issuer    *party.Issuer `gorm:"foreignKey:IssuerID" json:"-"`
	ObligorID uint64        `gorm:"column:obligor_id;not null" json:"obligor_id"`
	// Amounts are integer minor-currency units (cents)
	FaceValueCents int64     `gorm:"column:face_value_cents;not null" json:"face_value_cents"`
	MaturityDate   time.Time `gorm:"column:maturity_date;type:date;not null" json:"maturity_date"`
	Status         Status    `gorm:"size:32;not null;default:'NON_FINANCED';index:idx_invoices_status_id,priority:1" json:"status"`

	// Set only once the invoice is FINANCED
	FinancierID       *uint64    `gorm:"column:financier_id" json:"financier_id,omitempty"`
	FinancingDate     *time.Time `gorm:"column:financing_date;type:date" json:"financing_date,omitempty"`
	TermDays          *int64     `gorm:"column:financing_term_days" json:"financing_term_days,omitempty"`
	RateBps           *int64     `gorm:"column:financing_rate_bps" json:"financing_rate_bps,omitempty"`
	EarlyPaymentCents *int64     `gorm:"column:early_payment_cents" json:"early_payment_cents,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// New builds a pending invoice. The public InvoiceID is assigned by the caller.
func New(issuerID, obligorID uint64, faceValueCents int64, maturity time.Time) (*Invoice, error) {
	if issuerID == 0 {
		return nil, ErrMissingIssuer
	}
	if obligorID == 0 {
		return nil, ErrMissingObligor
	}
	if faceValueCents < 0 {
		return nil, ErrInvalidFaceValue
	}
	if maturity.IsZero() {
		return nil, ErrMissingMaturity
	}
	return &Invoice{
		IssuerID:       issuerID,
		ObligorID:      obligorID,
		FaceValueCents: faceValueCents,
		MaturityDate:   maturity.UTC(),
		Status:         StatusNonFinanced,
	}, nil
}

func (i *Invoice) Pending() bool { return i.Status == StatusNonFinanced }
