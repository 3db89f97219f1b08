package postgres

import (
	"gasfill/internal/adapters/out/postgres/earningrepo"
	"gasfill/internal/adapters/out/postgres/orderrepo"
	"gasfill/internal/adapters/out/postgres/riderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the orders, riders and rider_earnings tables with
// GORM AutoMigrate. Columns and indexes are added but never dropped, so running
// it against an existing database is safe. The serve and migrate commands call
// it; integration tests call it on a fresh container.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&riderrepo.RiderDTO{},
		&earningrepo.EarningDTO{},
	)
}
