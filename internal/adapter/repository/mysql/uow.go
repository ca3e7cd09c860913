package mysql

import (
	"context"

	"invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Invoices:   &InvoiceRepository{db: tx},
		Financiers: &FinancierRepository{db: tx},
		Parties:    &PartyRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinInvoiceTx(ctx context.Context, invoiceID string, fn func(r uow.Repos, inv *invoice.Invoice) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the invoice row up-front to prevent races
		inv, err := r.Invoices.GetByInvoiceIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		return fn(r, inv)
	})
}
