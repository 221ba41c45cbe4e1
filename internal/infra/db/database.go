package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hotel-checkout/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cleanup := func() {
		slog.Info("closing database pool")
		pool.Close()
	}

	return pool, cleanup, nil
}

// RequiredTables are the tables the checkout flow writes to.
var RequiredTables = []string{"users", "coupons", "payment_attempts", "bookings", "user_booking_history"}

// CheckSchema reports the first missing table, so a service started against
// an unmigrated database fails at boot rather than on the first payment.
func CheckSchema(ctx context.Context, pool *pgxpool.Pool, tables ...string) error {
	for _, table := range tables {
		var found *string
		if err := pool.QueryRow(ctx, "SELECT to_regclass($1)::text", table).Scan(&found); err != nil {
			return fmt.Errorf("failed to inspect table %s: %w", table, err)
		}
		if found == nil {
			return fmt.Errorf("table %s is missing, run `hotel-checkout migrate`", table)
		}
	}
	return nil
}
