package mysql

import (
	"context"

	financierDomain "invoice-financing/internal/domain/financier"

	"gorm.io/gorm"
)

type FinancierRepository struct{ db *gorm.DB }

func NewFinancierRepository(db *gorm.DB) *FinancierRepository { return &FinancierRepository{db: db} }

// Create inserts the financier and its rate configurations.
func (r *FinancierRepository) Create(ctx context.Context, f *financierDomain.Financier) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FinancierRepository) GetByName(ctx context.Context, name string) (*financierDomain.Financier, error) {
	var out financierDomain.Financier
	if err := r.db.WithContext(ctx).Preload("RateConfigs").Where("name = ?", name).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *FinancierRepository) FindAll(ctx context.Context) ([]financierDomain.Financier, error) {
	var out []financierDomain.Financier
	err := r.db.WithContext(ctx).
		Preload("RateConfigs", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
