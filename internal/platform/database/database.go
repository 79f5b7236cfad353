// Package database opens the PostgreSQL pool used to publish normalized
// questions.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/p-n-ai/quizbank/internal/platform/config"
)

const applicationName = "quizbank-normalizer"

// ParseURL validates a PostgreSQL connection URL.
func ParseURL(url string) (*pgxpool.Config, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	return cfg, nil
}

// Connect opens a small pool sized for a single batch run and verifies it
// with a ping. The caller closes the pool.
func Connect(ctx context.Context, dc config.DatabaseConfig) (*pgxpool.Pool, error) {
	cfg, err := ParseURL(dc.URL)
	if err != nil {
		return nil, err
	}

	if dc.MaxConns > 0 {
		cfg.MaxConns = int32(dc.MaxConns)
	}
	if dc.MinConns >= 0 && dc.MinConns <= dc.MaxConns {
		cfg.MinConns = int32(dc.MinConns)
	}
	cfg.MaxConnIdleTime = time.Minute
	if _, ok := cfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		cfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}
