package invoice

import (
	"time"

	domain "invoice-financing/internal/domain/invoice"
)

const DateLayout = "2006-01-02"

type CreateInvoiceInput struct {
	IssuerID       uint64 `json:"issuer_id"`
	ObligorID      uint64 `json:"obligor_id"`
	FaceValueCents int64  `json:"face_value_cents"`
	MaturityDate   string `json:"maturity_date"`
}

type DTO struct {
	InvoiceID         string    `json:"invoice_id"`
	IssuerID          uint64    `json:"issuer_id"`
	ObligorID         uint64    `json:"obligor_id"`
	FaceValueCents    int64     `json:"face_value_cents"`
	MaturityDate      string    `json:"maturity_date"`
	Status            string    `json:"status"`
	FinancierID       *uint64   `json:"financier_id,omitempty"`
	FinancingDate     *string   `json:"financing_date,omitempty"`
	TermDays          *int64    `json:"financing_term_days,omitempty"`
	RateBps           *int64    `json:"financing_rate_bps,omitempty"`
	EarlyPaymentCents *int64    `json:"early_payment_cents,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToDTO(inv *domain.Invoice) *DTO {
	dto := &DTO{
		InvoiceID:         inv.InvoiceID,
		IssuerID:          inv.IssuerID,
		ObligorID:         inv.ObligorID,
		FaceValueCents:    inv.FaceValueCents,
		MaturityDate:      inv.MaturityDate.UTC().Format(DateLayout),
		Status:            string(inv.Status),
		FinancierID:       inv.FinancierID,
		TermDays:          inv.TermDays,
		RateBps:           inv.RateBps,
		EarlyPaymentCents: inv.EarlyPaymentCents,
		CreatedAt:         inv.CreatedAt,
	}
	if inv.FinancingDate != nil {
		d := inv.FinancingDate.UTC().Format(DateLayout)
		dto.FinancingDate = &d
	}
	return dto
}
