package invoicemock

import (
	"context"
	"errors"

	domain "invoice-financing/internal/domain/invoice"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("invoicemock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to success, reads to errUnimplemented.
type Repo struct {
	CreateFn                  func(ctx context.Context, inv *domain.Invoice) error
	CreateInBatchesFn         func(ctx context.Context, invs []*domain.Invoice, batchSize int) error
	GetByInvoiceIDFn          func(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	GetByInvoiceIDForUpdateFn func(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	FindPageFn                func(ctx context.Context, req domain.PageRequest) (*domain.Page, error)
	CountByStatusFn           func(ctx context.Context, status domain.Status) (int64, error)
	SaveFn                    func(ctx context.Context, inv *domain.Invoice) error
}

func (m *Repo) Create(ctx context.Context, inv *domain.Invoice) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}

func (m *Repo) CreateInBatches(ctx context.Context, invs []*domain.Invoice, batchSize int) error {
	if m.CreateInBatchesFn != nil {
		return m.CreateInBatchesFn(ctx, invs, batchSize)
	}
	return nil
}

func (m *Repo) GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if m.GetByInvoiceIDFn != nil {
		return m.GetByInvoiceIDFn(ctx, invoiceID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if m.GetByInvoiceIDForUpdateFn != nil {
		return m.GetByInvoiceIDForUpdateFn(ctx, invoiceID)
	}
	return nil, errUnimplemented
}

func (m *Repo) FindPage(ctx context.Context, req domain.PageRequest) (*domain.Page, error) {
	if m.FindPageFn != nil {
		return m.FindPageFn(ctx, req)
	}
	return nil, errUnimplemented
}

func (m *Repo) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, inv *domain.Invoice) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, inv)
	}
	return nil
}
