package db

import (
	"context"
	"fmt"

	"github.com/kvv7ma/bento-order-system/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool holds client-side state only (sessions, login throttle). Menu and
// order data live in the backend and are never mirrored here.
var Pool *pgxpool.Pool

func Init(ctx context.Context, cfg config.DBConfig) error {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping: %w", err)
	}
	Pool = pool
	return nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
	}
}
