package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Querier is implemented by both pgxpool.Pool and pgx.Tx, so seeding and repositories
// can run inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RetryPolicy controls how NewPool waits between connection attempts.
// The wait doubles after every failed attempt, starting at BaseBackoff.
type RetryPolicy struct {
	Attempts    int
	BaseBackoff time.Duration
}

// DefaultRetryPolicy waits 1s, 2s, 4s, 8s, 16s (about 31s) before giving up.
var DefaultRetryPolicy = RetryPolicy{Attempts: 5, BaseBackoff: time.Second}

// NewPool creates a PostgreSQL connection pool, retrying until the database answers a ping.
func NewPool(ctx context.Context, dsn string, policy RetryPolicy) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}

	// At least one attempt even if Attempts is 0
	attempts := max(1, policy.Attempts)
	base := policy.BaseBackoff
	if base <= 0 {
		base = DefaultRetryPolicy.BaseBackoff
	}

	for attempt := 0; attempt < attempts; attempt++ {
		var pool *pgxpool.Pool
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			pingErr := pool.Ping(ctx)
			if pingErr == nil {
				log.Info().
					Str("host", cfg.ConnConfig.Host).
					Str("database", cfg.ConnConfig.Database).
					Int32("max_conns", cfg.MaxConns).
					Msg("database connection established")
				return pool, nil
			}
			pool.Close()
			err = fmt.Errorf("ping failed: %w", pingErr)
		}

		if attempt == attempts-1 {
			break
		}

		backoff := base << attempt
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", attempts).
			Dur("next_retry_in", backoff).
			Msg("database connection failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, err)
}
