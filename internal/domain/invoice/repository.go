package invoice

import "context"

// PageRequest selects invoices in a given status using a keyset cursor:
// only rows with ID greater than After are returned, ordered by ID.
type PageRequest struct {
	Status Status
	Size   int
	After  uint64
}

type Page struct {
	Invoices []*Invoice
	HasNext  bool
	// Next is the cursor for the following page (ID of the last invoice)
	Next uint64
}

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	CreateInBatches(ctx context.Context, invs []*Invoice, batchSize int) error
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Invoice, error)
	// Locks the row until the surrounding transaction ends
	GetByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*Invoice, error)
	FindPage(ctx context.Context, req PageRequest) (*Page, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	Save(ctx context.Context, inv *Invoice) error
}
