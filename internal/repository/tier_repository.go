package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
	"github.com/fairyhunter13/keepup-loyalty/internal/service"
)

// TierRepository provides data access for loyalty tiers using pgx.
// Benefits are stored as a JSONB array of tagged benefit records.
type TierRepository struct {
	pool PoolInterface
}

// NewTierRepository creates a new TierRepository with the given pool.
func NewTierRepository(pool *pgxpool.Pool) *TierRepository {
	return &TierRepository{pool: pool}
}

// NewTierRepositoryWithPool creates a new TierRepository with a custom pool interface.
// This is primarily used for testing.
func NewTierRepositoryWithPool(pool PoolInterface) *TierRepository {
	return &TierRepository{pool: pool}
}

// List returns the tier configuration in its configured order.
func (r *TierRepository) List(ctx context.Context) ([]model.TierConfig, error) {
	query := `SELECT name, points_threshold, benefits FROM loyalty_tiers ORDER BY position, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}
	defer rows.Close()

	tiers := []model.TierConfig{}
	for rows.Next() {
		var (
			name      string
			threshold int
			raw       []byte
		)
		if err := rows.Scan(&name, &threshold, &raw); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		benefits, err := decodeBenefits(raw)
		if err != nil {
			return nil, fmt.Errorf("decode benefits of tier %s: %w", name, err)
		}
		tiers = append(tiers, model.TierConfig{
			Name:            model.Tier(name),
			PointsThreshold: threshold,
			Benefits:        benefits,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tier rows: %w", err)
	}
	return tiers, nil
}

// Update replaces the threshold and benefits of an existing tier.
// Returns service.ErrTierNotFound if no tier has that name.
func (r *TierRepository) Update(ctx context.Context, tier model.TierConfig) error {
	raw, err := json.Marshal(model.EncodeBenefits(tier.Benefits))
	if err != nil {
		return fmt.Errorf("encode benefits of tier %s: %w", tier.Name, err)
	}

	query := `UPDATE loyalty_tiers SET points_threshold = $2, benefits = $3, updated_at = now() WHERE name = $1`

	tag, err := r.pool.Exec(ctx, query, string(tier.Name), tier.PointsThreshold, raw)
	if err != nil {
		return fmt.Errorf("update tier %s: %w", tier.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrTierNotFound
	}
	return nil
}

func decodeBenefits(raw []byte) ([]model.Benefit, error) {
	if len(raw) == 0 {
		return []model.Benefit{}, nil
	}
	var records []model.BenefitRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	benefits, err := model.DecodeBenefits(records)
	if err != nil {
		return nil, err
	}
	if benefits == nil {
		benefits = []model.Benefit{}
	}
	return benefits, nil
}
