package uow

import (
	"context"

	"invoice-financing/internal/domain/financier"
	"invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/party"
)

// Repos are bound to the same transaction.
type Repos struct {
	Invoices   invoice.Repository
	Financiers financier.Repository
	Parties    party.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock invoice first, then pass it in
	WithinInvoiceTx(ctx context.Context, invoiceID string, fn func(r Repos, inv *invoice.Invoice) error) error
}
