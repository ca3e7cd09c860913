package mysql

import (
	"context"

	partyDomain "invoice-financing/internal/domain/party"

	"gorm.io/gorm"
)

type PartyRepository struct{ db *gorm.DB }

func NewPartyRepository(db *gorm.DB) *PartyRepository { return &PartyRepository{db: db} }

func (r *PartyRepository) CreateIssuer(ctx context.Context, i *partyDomain.Issuer) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *PartyRepository) GetIssuerByID(ctx context.Context, id uint64) (*partyDomain.Issuer, error) {
	var out partyDomain.Issuer
	if err := r.db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PartyRepository) GetIssuerByName(ctx context.Context, name string) (*partyDomain.Issuer, error) {
	var out partyDomain.Issuer
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PartyRepository) CreateObligor(ctx context.Context, o *partyDomain.Obligor) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *PartyRepository) GetObligorByID(ctx context.Context, id uint64) (*partyDomain.Obligor, error) {
	var out partyDomain.Obligor
	if err := r.db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PartyRepository) GetObligorByName(ctx context.Context, name string) (*partyDomain.Obligor, error) {
	var out partyDomain.Obligor
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
