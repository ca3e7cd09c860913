package financiermock

import (
	"context"
	"errors"

	domain "invoice-financing/internal/domain/financier"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("financiermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn    func(ctx context.Context, f *domain.Financier) error
	GetByNameFn func(ctx context.Context, name string) (*domain.Financier, error)
	FindAllFn   func(ctx context.Context) ([]domain.Financier, error)
}

// Static returns a mock whose FindAll always yields roster.
func Static(roster ...domain.Financier) *Repo {
	return &Repo{FindAllFn: func(context.Context) ([]domain.Financier, error) { return roster, nil }}
}

func (m *Repo) Create(ctx context.Context, f *domain.Financier) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) GetByName(ctx context.Context, name string) (*domain.Financier, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	return nil, errUnimplemented
}

func (m *Repo) FindAll(ctx context.Context) ([]domain.Financier, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	return nil, errUnimplemented
}
