package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// EarningRuleRepository provides data access for the single global earning rule row.
type EarningRuleRepository struct {
	pool PoolInterface
}

// NewEarningRuleRepository creates a new EarningRuleRepository with the given pool.
func NewEarningRuleRepository(pool *pgxpool.Pool) *EarningRuleRepository {
	return &EarningRuleRepository{pool: pool}
}

// NewEarningRuleRepositoryWithPool creates a new EarningRuleRepository with a custom pool interface.
func NewEarningRuleRepositoryWithPool(pool PoolInterface) *EarningRuleRepository {
	return &EarningRuleRepository{pool: pool}
}

// Get returns the earning rule. A missing row reads as a zero rule.
func (r *EarningRuleRepository) Get(ctx context.Context) (model.EarningRule, error) {
	var rule model.EarningRule
	err := r.pool.QueryRow(ctx, `SELECT points_per_dollar FROM earning_rule WHERE id = 1`).
		Scan(&rule.PointsPerDollar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.EarningRule{}, nil
		}
		return model.EarningRule{}, fmt.Errorf("get earning rule: %w", err)
	}
	return rule, nil
}

// Update stores the earning rule.
func (r *EarningRuleRepository) Update(ctx context.Context, rule model.EarningRule) error {
	query := `INSERT INTO earning_rule (id, points_per_dollar) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET points_per_dollar = EXCLUDED.points_per_dollar`

	if _, err := r.pool.Exec(ctx, query, rule.PointsPerDollar); err != nil {
		return fmt.Errorf("update earning rule: %w", err)
	}
	return nil
}
