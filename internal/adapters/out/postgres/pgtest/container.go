// Package pgtest starts a disposable PostgreSQL container with the fulfillment
// schema for integration suites.
package pgtest

import (
	"context"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every table Truncate clears.
const Tables = "orders, invoices, carts, boxes, collections, shipments, " +
	"treasury_balances, treasury_movements, customers"

// Start runs postgres:15-alpine, connects GORM to it and migrates the schema.
// The caller terminates the container.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return container, nil, err
	}

	if err := postgres_adapter.Migrate(ctx, db); err != nil {
		return container, nil, err
	}
	return container, db, nil
}

// Truncate empties every table and re-seeds the zero ledger rows.
func Truncate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec("TRUNCATE TABLE " + Tables).Error; err != nil {
		return err
	}
	return postgres_adapter.Migrate(ctx, db)
}
