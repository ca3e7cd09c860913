package mysql

import (
	"context"
	"fmt"
	"testing"
	"time"

	"invoice-financing/internal/domain/financier"
	"invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/party"
	"invoice-financing/internal/infrastructure/db"
	"invoice-financing/pkg/id"

	"gorm.io/gorm"
)

// openTestDB creates a private in-memory sqlite DB with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", id.NewID32()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

type fixture struct {
	issuer  *party.Issuer
	obligor *party.Obligor
}

func seedParties(t *testing.T, gdb *gorm.DB, maxRateBps int) fixture {
	t.Helper()
	ctx := context.Background()
	repo := NewPartyRepository(gdb)

	iss, _ := party.NewIssuer("Coffee Beans LLC", maxRateBps)
	if err := repo.CreateIssuer(ctx, iss); err != nil {
		t.Fatalf("CreateIssuer: %v", err)
	}
	obl, _ := party.NewObligor("Chocolate Factory")
	if err := repo.CreateObligor(ctx, obl); err != nil {
		t.Fatalf("CreateObligor: %v", err)
	}
	return fixture{issuer: iss, obligor: obl}
}

func makeInvoice(t *testing.T, f fixture, face int64, maturity time.Time) *invoice.Invoice {
	t.Helper()
	inv, err := invoice.New(f.issuer.ID, f.obligor.ID, face, maturity)
	if err != nil {
		t.Fatalf("invoice.New: %v", err)
	}
	inv.InvoiceID = id.NewID32()
	return inv
}

func makeFinancier(t *testing.T, name string, minTerm int, issuerID uint64, annualBps int) *financier.Financier {
	t.Helper()
	f, err := financier.New(name, minTerm, financier.RateConfig{IssuerID: issuerID, AnnualRateBps: annualBps})
	if err != nil {
		t.Fatalf("financier.New: %v", err)
	}
	return f
}
