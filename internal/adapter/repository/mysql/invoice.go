package mysql

import (
	"context"

	invoiceDomain "invoice-financing/internal/domain/invoice"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepository struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository { return &InvoiceRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *InvoiceRepository) Tx(ctx context.Context, fn func(repo invoiceDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&InvoiceRepository{db: tx})
	})
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoiceDomain.Invoice) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error
}

func (r *InvoiceRepository) CreateInBatches(ctx context.Context, invs []*invoiceDomain.Invoice, batchSize int) error {
	if len(invs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(invs, batchSize).Error
}

// Save writes the invoice row only; the preloaded issuer is never touched.
func (r *InvoiceRepository) Save(ctx context.Context, inv *invoiceDomain.Invoice) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(inv).Error
}

func (r *InvoiceRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*invoiceDomain.Invoice, error) {
	var out invoiceDomain.Invoice
	if err := r.db.WithContext(ctx).Preload("Issuer").Where("invoice_id = ?", invoiceID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InvoiceRepository) GetByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*invoiceDomain.Invoice, error) {
	var out invoiceDomain.Invoice
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Issuer").
		Where("invoice_id = ?", invoiceID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindPage is keyset paginated on id, so rows that leave req.Status while
// the caller iterates never shift the following pages.
func (r *InvoiceRepository) FindPage(ctx context.Context, req invoiceDomain.PageRequest) (*invoiceDomain.Page, error) {
	size := req.Size
	if size <= 0 {
		size = 1
	}
	var rows []*invoiceDomain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Issuer").
		Where("status = ? AND id > ?", req.Status, req.After).
		Order("id ASC").
		Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	page := &invoiceDomain.Page{Invoices: rows, HasNext: len(rows) == size, Next: req.After}
	if len(rows) > 0 {
		page.Next = rows[len(rows)-1].ID
	}
	return page, nil
}

func (r *InvoiceRepository) CountByStatus(ctx context.Context, status invoiceDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&invoiceDomain.Invoice{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
