package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
	"github.com/fairyhunter13/keepup-loyalty/internal/seed"
	"github.com/fairyhunter13/keepup-loyalty/pkg/database"
)

// SeedPoolInterface is the subset of pgxpool.Pool needed to seed the database.
type SeedPoolInterface interface {
	PoolInterface
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SeedIfEmpty writes ds when the tier table is empty and reports whether it did.
func SeedIfEmpty(ctx context.Context, pool SeedPoolInterface, ds *seed.Dataset) (bool, error) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM loyalty_tiers`).Scan(&count); err != nil {
		return false, fmt.Errorf("count tiers: %w", err)
	}
	if count > 0 {
		log.Debug().Int("tiers", count).Msg("database already seeded")
		return false, nil
	}
	if err := Seed(ctx, pool, ds); err != nil {
		return false, err
	}
	return true, nil
}

// Seed writes every record of ds in a single transaction.
func Seed(ctx context.Context, pool SeedPoolInterface, ds *seed.Dataset) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := seedTiers(ctx, tx, ds.Tiers); err != nil {
		return err
	}
	if err := NewEarningRuleRepositoryWithPool(tx).Update(ctx, ds.EarningRule); err != nil {
		return err
	}
	customers := NewCustomerRepositoryWithPool(tx)
	for i := range ds.Customers {
		if err := customers.Insert(ctx, &ds.Customers[i]); err != nil {
			return err
		}
	}
	rewards := NewRewardRepositoryWithPool(tx)
	for i := range ds.Rewards {
		if err := rewards.Insert(ctx, &ds.Rewards[i]); err != nil {
			return err
		}
	}
	activities := NewActivityRepositoryWithPool(tx)
	for i := range ds.Activities {
		if err := activities.Insert(ctx, &ds.Activities[i]); err != nil {
			return err
		}
	}
	reservations := NewReservationRepositoryWithPool(tx)
	for i := range ds.Reservations {
		if err := reservations.Insert(ctx, &ds.Reservations[i]); err != nil {
			return err
		}
	}
	templates := NewCampaignTemplateRepositoryWithPool(tx)
	for i := range ds.Templates {
		if err := templates.Insert(ctx, &ds.Templates[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	log.Info().
		Int("tiers", len(ds.Tiers)).
		Int("customers", len(ds.Customers)).
		Int("rewards", len(ds.Rewards)).
		Int("activities", len(ds.Activities)).
		Int("reservations", len(ds.Reservations)).
		Int("templates", len(ds.Templates)).
		Msg("database seeded")
	return nil
}

func seedTiers(ctx context.Context, q database.Querier, tiers []model.TierConfig) error {
	query := `INSERT INTO loyalty_tiers (name, points_threshold, benefits, position) VALUES ($1, $2, $3, $4)`
	for i, t := range tiers {
		raw, err := json.Marshal(model.EncodeBenefits(t.Benefits))
		if err != nil {
			return fmt.Errorf("encode benefits of tier %s: %w", t.Name, err)
		}
		if _, err := q.Exec(ctx, query, string(t.Name), t.PointsThreshold, raw, i); err != nil {
			return fmt.Errorf("insert tier %s: %w", t.Name, err)
		}
	}
	return nil
}
