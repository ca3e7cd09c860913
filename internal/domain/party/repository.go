package party

import "context"

type Repository interface {
	CreateIssuer(ctx context.Context, i *Issuer) error
	GetIssuerByID(ctx context.Context, id uint64) (*Issuer, error)
	GetIssuerByName(ctx context.Context, name string) (*Issuer, error)

	CreateObligor(ctx context.Context, o *Obligor) error
	GetObligorByID(ctx context.Context, id uint64) (*Obligor, error)
	GetObligorByName(ctx context.Context, name string) (*Obligor, error)
}
