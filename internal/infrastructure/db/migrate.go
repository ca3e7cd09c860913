package db

import (
	"invoice-financing/internal/domain/financier"
	"invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/party"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&party.Issuer{},
		&party.Obligor{},
		&financier.Financier{},
		&financier.RateConfig{},
		&invoice.Invoice{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
