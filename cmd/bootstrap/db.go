package bootstrap

import (
	"context"
	"log/slog"

	"hotel-checkout/internal/infra/db"
	"hotel-checkout/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.CheckSchema(ctx, pool, db.RequiredTables...); err != nil {
				return err
			}
			logger.Info("database ready", "database", cfg.DB.DBName, "max_conns", cfg.DB.MaxConns)
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
