package partymock

import (
	"context"
	"errors"

	domain "invoice-financing/internal/domain/party"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("partymock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateIssuerFn     func(ctx context.Context, i *domain.Issuer) error
	GetIssuerByIDFn    func(ctx context.Context, id uint64) (*domain.Issuer, error)
	GetIssuerByNameFn  func(ctx context.Context, name string) (*domain.Issuer, error)
	CreateObligorFn    func(ctx context.Context, o *domain.Obligor) error
	GetObligorByIDFn   func(ctx context.Context, id uint64) (*domain.Obligor, error)
	GetObligorByNameFn func(ctx context.Context, name string) (*domain.Obligor, error)
}

func (m *Repo) CreateIssuer(ctx context.Context, i *domain.Issuer) error {
	if m.CreateIssuerFn != nil {
		return m.CreateIssuerFn(ctx, i)
	}
	return nil
}

func (m *Repo) GetIssuerByID(ctx context.Context, id uint64) (*domain.Issuer, error) {
	if m.GetIssuerByIDFn != nil {
		return m.GetIssuerByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetIssuerByName(ctx context.Context, name string) (*domain.Issuer, error) {
	if m.GetIssuerByNameFn != nil {
		return m.GetIssuerByNameFn(ctx, name)
	}
	return nil, errUnimplemented
}

func (m *Repo) CreateObligor(ctx context.Context, o *domain.Obligor) error {
	if m.CreateObligorFn != nil {
		return m.CreateObligorFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetObligorByID(ctx context.Context, id uint64) (*domain.Obligor, error) {
	if m.GetObligorByIDFn != nil {
		return m.GetObligorByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetObligorByName(ctx context.Context, name string) (*domain.Obligor, error) {
	if m.GetObligorByNameFn != nil {
		return m.GetObligorByNameFn(ctx, name)
	}
	return nil, errUnimplemented
}
