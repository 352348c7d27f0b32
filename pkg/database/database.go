package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"clientdesk/pkg/logger"
)

// NewPool connects to Postgres and verifies the connection with a ping.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log := logger.Get()
	log.Info().Msg("database connected")

	return pool, nil
}
