package financier

import "context"

type Repository interface {
	// Create persists the financier together with its rate configurations
	Create(ctx context.Context, f *Financier) error
	GetByName(ctx context.Context, name string) (*Financier, error)
	// FindAll returns the full roster with rate configurations preloaded
	FindAll(ctx context.Context) ([]Financier, error)
}
