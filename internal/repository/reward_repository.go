package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
	"github.com/fairyhunter13/keepup-loyalty/internal/service"
)

// RewardRepository provides data access for the reward catalog using pgx.
type RewardRepository struct {
	pool PoolInterface
}

// NewRewardRepository creates a new RewardRepository with the given pool.
func NewRewardRepository(pool *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{pool: pool}
}

// NewRewardRepositoryWithPool creates a new RewardRepository with a custom pool interface.
func NewRewardRepositoryWithPool(pool PoolInterface) *RewardRepository {
	return &RewardRepository{pool: pool}
}

// List returns all rewards in creation order.
func (r *RewardRepository) List(ctx context.Context) ([]model.Reward, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, points, status FROM rewards ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	defer rows.Close()

	rewards := []model.Reward{}
	for rows.Next() {
		var (
			rw     model.Reward
			status string
		)
		if err := rows.Scan(&rw.ID, &rw.Name, &rw.Points, &status); err != nil {
			return nil, fmt.Errorf("scan reward: %w", err)
		}
		rw.Status = model.RewardStatus(status)
		rewards = append(rewards, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reward rows: %w", err)
	}
	return rewards, nil
}

// GetByID retrieves a reward by ID.
// Returns nil, nil if the reward is not found.
func (r *RewardRepository) GetByID(ctx context.Context, id string) (*model.Reward, error) {
	var (
		rw     model.Reward
		status string
	)
	err := r.pool.QueryRow(ctx, `SELECT id, name, points, status FROM rewards WHERE id = $1`, id).
		Scan(&rw.ID, &rw.Name, &rw.Points, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reward %s: %w", id, err)
	}
	rw.Status = model.RewardStatus(status)
	return &rw, nil
}

// Insert inserts a new reward.
// Returns service.ErrAlreadyExists if the ID is taken.
func (r *RewardRepository) Insert(ctx context.Context, reward *model.Reward) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO rewards (id, name, points, status) VALUES ($1, $2, $3, $4)`,
		reward.ID, reward.Name, reward.Points, string(reward.Status))
	if err != nil {
		if isUniqueViolation(err) {
			return service.ErrAlreadyExists
		}
		return fmt.Errorf("insert reward: %w", err)
	}
	return nil
}

// Update replaces the fields of an existing reward.
// Returns service.ErrRewardNotFound if the reward does not exist.
func (r *RewardRepository) Update(ctx context.Context, reward *model.Reward) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rewards SET name = $2, points = $3, status = $4 WHERE id = $1`,
		reward.ID, reward.Name, reward.Points, string(reward.Status))
	if err != nil {
		return fmt.Errorf("update reward %s: %w", reward.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrRewardNotFound
	}
	return nil
}

// Delete removes a reward.
// Returns service.ErrRewardNotFound if the reward does not exist.
func (r *RewardRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rewards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reward %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrRewardNotFound
	}
	return nil
}
