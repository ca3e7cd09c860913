package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"invoice-financing/internal/clock"
	"invoice-financing/internal/domain/financier"
	"invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/party"
	"invoice-financing/internal/domain/uow"
	"invoice-financing/pkg/id"
)

const insertBatchSize = 500

// Result counts rows inserted by Apply; existing master data is not counted.
type Result struct {
	Issuers    int
	Obligors   int
	Financiers int
	Invoices   int
}

// Apply ensures master data exists (looked up by name) and appends the
// fixture's invoices with maturities relative to today. It runs in one
// transaction.
func Apply(ctx context.Context, u uow.UnitOfWork, f *Fixture, today time.Time) (*Result, error) {
	if f == nil {
		return nil, errors.New("seed: fixture is required")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	err := u.WithinTx(ctx, func(r uow.Repos) error {
		issuers := make(map[string]uint64, len(f.Issuers))
		for _, def := range f.Issuers {
			iss, created, err := ensureIssuer(ctx, r.Parties, def)
			if err != nil {
				return err
			}
			issuers[iss.Name] = iss.ID
			if created {
				res.Issuers++
			}
		}

		obligors := make(map[string]uint64, len(f.Obligors))
		for _, def := range f.Obligors {
			obl, created, err := ensureObligor(ctx, r.Parties, def)
			if err != nil {
				return err
			}
			obligors[obl.Name] = obl.ID
			if created {
				res.Obligors++
			}
		}

		for _, def := range f.Financiers {
			created, err := ensureFinancier(ctx, r.Financiers, def, issuers)
			if err != nil {
				return err
			}
			if created {
				res.Financiers++
			}
		}

		base := clock.Date(today)
		invs := make([]*invoice.Invoice, 0, len(f.Invoices))
		for _, def := range f.Invoices {
			inv, err := invoice.New(issuers[def.Issuer], obligors[def.Obligor], def.FaceValueCents, base.AddDate(0, 0, def.MaturityInDays))
			if err != nil {
				return fmt.Errorf("invoice %s -> %s: %w", def.Issuer, def.Obligor, err)
			}
			inv.InvoiceID = id.NewID32()
			invs = append(invs, inv)
		}
		if err := r.Invoices.CreateInBatches(ctx, invs, insertBatchSize); err != nil {
			return fmt.Errorf("insert invoices: %w", err)
		}
		res.Invoices = len(invs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Backlog builds n pending invoices for one issuer/obligor pair, for load tests.
func Backlog(issuerID, obligorID uint64, n int, maturity time.Time) ([]*invoice.Invoice, error) {
	out := make([]*invoice.Invoice, 0, n)
	for i := 0; i < n; i++ {
		inv, err := invoice.New(issuerID, obligorID, int64(100_000+i%900_000), maturity)
		if err != nil {
			return nil, err
		}
		inv.InvoiceID = id.NewID32()
		out = append(out, inv)
	}
	return out, nil
}

// ApplyBacklog inserts n pending invoices for the named issuer and obligor.
func ApplyBacklog(ctx context.Context, u uow.UnitOfWork, issuerName, obligorName string, n int, maturity time.Time) error {
	return u.WithinTx(ctx, func(r uow.Repos) error {
		iss, err := r.Parties.GetIssuerByName(ctx, issuerName)
		if err != nil {
			return fmt.Errorf("issuer %q: %w", issuerName, notFound(err, party.ErrIssuerNotFound))
		}
		obl, err := r.Parties.GetObligorByName(ctx, obligorName)
		if err != nil {
			return fmt.Errorf("obligor %q: %w", obligorName, notFound(err, party.ErrObligorNotFound))
		}
		invs, err := Backlog(iss.ID, obl.ID, n, maturity)
		if err != nil {
			return err
		}
		return r.Invoices.CreateInBatches(ctx, invs, insertBatchSize)
	})
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func ensureIssuer(ctx context.Context, repo party.Repository, def IssuerSpec) (*party.Issuer, bool, error) {
	existing, err := repo.GetIssuerByName(ctx, def.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	iss, err := party.NewIssuer(def.Name, def.MaxRateBps)
	if err != nil {
		return nil, false, fmt.Errorf("issuer %q: %w", def.Name, err)
	}
	if err := repo.CreateIssuer(ctx, iss); err != nil {
		return nil, false, err
	}
	return iss, true, nil
}

func ensureObligor(ctx context.Context, repo party.Repository, def ObligorSpec) (*party.Obligor, bool, error) {
	existing, err := repo.GetObligorByName(ctx, def.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	obl, err := party.NewObligor(def.Name)
	if err != nil {
		return nil, false, fmt.Errorf("obligor %q: %w", def.Name, err)
	}
	if err := repo.CreateObligor(ctx, obl); err != nil {
		return nil, false, err
	}
	return obl, true, nil
}

func ensureFinancier(ctx context.Context, repo financier.Repository, def FinancierSpec, issuers map[string]uint64) (bool, error) {
	_, err := repo.GetByName(ctx, def.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	configs := make([]financier.RateConfig, 0, len(def.Rates))
	for _, r := range def.Rates {
		configs = append(configs, financier.RateConfig{IssuerID: issuers[r.Issuer], AnnualRateBps: r.AnnualRateBps})
	}
	f, err := financier.New(def.Name, def.MinTermDays, configs...)
	if err != nil {
		return false, fmt.Errorf("financier %q: %w", def.Name, err)
	}
	return true, repo.Create(ctx, f)
}
