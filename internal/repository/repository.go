// Package repository provides the PostgreSQL persistence layer for users.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing for the user store. The directory is read-heavy with cheap
// queries, so a small pool suffices.
const (
	poolMaxConns = 10
	poolMinConns = 2
)

// Repository wraps a pgx connection pool over the users database.
type Repository struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and verifies connectivity before returning.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = poolMaxConns
	config.MinConns = poolMinConns

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{pool: pool}, nil
}

// Ping checks database connectivity. The readiness probe calls this.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool exposes the underlying pool for test fixtures (advisory locks,
// schema resets). Production code goes through Repository methods.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}
