package financing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-financing/internal/clock"
	"invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/uow"
	"invoice-financing/internal/usecase/allocation"
	invoiceuc "invoice-financing/internal/usecase/invoice"
)

var (
	ErrRunInProgress = errors.New("financing run already in progress")
	ErrNoFinanciers  = errors.New("no financiers configured")
)

// RunLock keeps two financing runs from overlapping across processes.
type RunLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type Params struct {
	UoW   uow.UnitOfWork
	Clock clock.Clock
	Log   *zap.Logger
	// Lock is optional; without it runs are not serialised
	Lock   RunLock
	Config Config
}

type Usecase struct {
	uow   uow.UnitOfWork
	clock clock.Clock
	log   *zap.Logger
	lock  RunLock
	cfg   Config
}

func NewUsecase(p Params) *Usecase {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Usecase{
		uow:   p.UoW,
		clock: clk,
		log:   log.Named("financing"),
		lock:  p.Lock,
		cfg:   p.Config.withDefaults(),
	}
}

// Finance evaluates every NON_FINANCED invoice against the current roster
// and persists each outcome. The whole run is one transaction.
func (u *Usecase) Finance(ctx context.Context) (*RunSummary, error) {
	release, err := u.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	today := clock.Date(u.clock.Now())
	u.log.Info("financing started", zap.Time("today", today), zap.Int("batch_size", u.cfg.BatchSize))

	summary := &RunSummary{}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return u.run(ctx, r, today, summary)
	})
	if err != nil {
		u.log.Error("financing failed", zap.Error(err), summary.field())
		return nil, err
	}

	u.log.Info("financing completed", summary.field())
	return summary, nil
}

func (u *Usecase) run(ctx context.Context, r uow.Repos, today time.Time, summary *RunSummary) error {
	req := invoice.PageRequest{Status: invoice.StatusNonFinanced, Size: u.cfg.BatchSize}
	page, err := r.Invoices.FindPage(ctx, req)
	if err != nil {
		return fmt.Errorf("fetch pending invoices: %w", err)
	}
	if len(page.Invoices) == 0 {
		u.log.Info("no pending invoices")
		return nil
	}

	financiers, err := r.Financiers.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load financiers: %w", err)
	}
	if len(financiers) == 0 {
		// pending invoices stay NON_FINANCED until a roster exists
		u.log.Warn("no financiers configured, skipping run")
		return nil
	}
	roster := allocation.NewRoster(financiers)
	u.log.Info("roster loaded", zap.Int("financiers", roster.Len()))

	for {
		summary.Pages++
		for _, inv := range page.Invoices {
			out := allocation.Evaluate(inv, roster, today)
			out.Apply(inv)
			if err := r.Invoices.Save(ctx, inv); err != nil {
				return fmt.Errorf("save invoice %s: %w", inv.InvoiceID, err)
			}
			summary.record(out.Status)
			u.log.Debug("invoice evaluated",
				zap.String("invoice_id", inv.InvoiceID),
				zap.String("status", string(out.Status)),
				zap.Uint64("financier_id", out.FinancierID),
				zap.Int64("term_days", out.TermDays),
				zap.Int64("rate_bps", out.RateBps))
		}
		if !page.HasNext {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		req.After = page.Next
		page, err = r.Invoices.FindPage(ctx, req)
		if err != nil {
			return fmt.Errorf("fetch pending invoices after %d: %w", req.After, err)
		}
		if len(page.Invoices) == 0 {
			return nil
		}
	}
}

// FinanceOne evaluates a single pending invoice on demand with its row locked.
// It shares the run lock with Finance so a batch snapshot never overwrites it.
func (u *Usecase) FinanceOne(ctx context.Context, invoiceID string) (*invoiceuc.DTO, error) {
	release, err := u.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	today := clock.Date(u.clock.Now())

	var dto *invoiceuc.DTO
	err = u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *invoice.Invoice) error {
		if inv.Status.Terminal() {
			return invoice.ErrAlreadyProcessed
		}
		if !inv.Pending() {
			return fmt.Errorf("invoice %s: unexpected status %q", inv.InvoiceID, inv.Status)
		}
		financiers, err := r.Financiers.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("load financiers: %w", err)
		}
		if len(financiers) == 0 {
			return ErrNoFinanciers
		}

		out := allocation.Evaluate(inv, allocation.NewRoster(financiers), today)
		out.Apply(inv)
		if err := r.Invoices.Save(ctx, inv); err != nil {
			return fmt.Errorf("save invoice %s: %w", inv.InvoiceID, err)
		}
		u.log.Info("invoice evaluated",
			zap.String("invoice_id", inv.InvoiceID),
			zap.String("status", string(out.Status)),
			zap.Uint64("financier_id", out.FinancierID))

		dto = invoiceuc.ToDTO(inv)
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invoice.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// acquire takes the run lock when one is configured. The returned release is never nil.
func (u *Usecase) acquire(ctx context.Context) (func(), error) {
	if u.lock == nil {
		return func() {}, nil
	}
	ok, err := u.lock.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	return func() {
		if err := u.lock.Release(context.WithoutCancel(ctx)); err != nil {
			u.log.Warn("release run lock failed", zap.Error(err))
		}
	}, nil
}
