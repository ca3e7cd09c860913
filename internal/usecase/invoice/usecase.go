package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/party"
	"invoice-financing/pkg/id"

	"gorm.io/gorm"
)

var ErrInvalidMaturityDate = errors.New("maturity_date must be YYYY-MM-DD")

type Usecase struct {
	invoices domain.Repository
	parties  party.Repository
}

func NewUsecase(invoices domain.Repository, parties party.Repository) *Usecase {
	return &Usecase{invoices: invoices, parties: parties}
}

// Create registers a pending invoice after checking both parties exist.
func (u *Usecase) Create(ctx context.Context, in CreateInvoiceInput) (*DTO, error) {
	maturity, err := time.ParseInLocation(DateLayout, in.MaturityDate, time.UTC)
	if err != nil {
		return nil, ErrInvalidMaturityDate
	}
	inv, err := domain.New(in.IssuerID, in.ObligorID, in.FaceValueCents, maturity)
	if err != nil {
		return nil, err
	}

	if _, err := u.parties.GetIssuerByID(ctx, in.IssuerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, party.ErrIssuerNotFound
		}
		return nil, fmt.Errorf("lookup issuer %d: %w", in.IssuerID, err)
	}
	if _, err := u.parties.GetObligorByID(ctx, in.ObligorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, party.ErrObligorNotFound
		}
		return nil, fmt.Errorf("lookup obligor %d: %w", in.ObligorID, err)
	}

	inv.InvoiceID = id.NewID32()
	if err := u.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return ToDTO(inv), nil
}

func (u *Usecase) Get(ctx context.Context, invoiceID string) (*DTO, error) {
	inv, err := u.invoices.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ToDTO(inv), nil
}
