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

const activityColumns = `id, title, to_char(activity_date, 'YYYY-MM-DD'), COALESCE(start_time, ''), COALESCE(end_time, ''),
	description, target_audience, color`

// ActivityRepository provides data access for calendar activities using pgx.
// Dates are stored as DATE and read back as literal YYYY-MM-DD text.
type ActivityRepository struct {
	pool PoolInterface
}

// NewActivityRepository creates a new ActivityRepository with the given pool.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// NewActivityRepositoryWithPool creates a new ActivityRepository with a custom pool interface.
func NewActivityRepositoryWithPool(pool PoolInterface) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// List returns all activities in insertion order.
func (r *ActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity rows: %w", err)
	}
	return activities, nil
}

// GetByID retrieves an activity by ID.
// Returns nil, nil if the activity is not found.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity %s: %w", id, err)
	}
	return &a, nil
}

// Insert inserts a new activity.
// Returns service.ErrAlreadyExists if the ID is taken.
func (r *ActivityRepository) Insert(ctx context.Context, a *model.Activity) error {
	query := `INSERT INTO activities (id, title, activity_date, start_time, end_time, description, target_audience, color)
		VALUES ($1, $2, $3::date, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Title, a.Date, a.StartTime, a.EndTime, a.Description, a.TargetAudience, a.Color)
	if err != nil {
		if isUniqueViolation(err) {
			return service.ErrAlreadyExists
		}
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Update replaces the fields of an existing activity.
// Returns service.ErrActivityNotFound if the activity does not exist.
func (r *ActivityRepository) Update(ctx context.Context, a *model.Activity) error {
	query := `UPDATE activities
		SET title = $2, activity_date = $3::date, start_time = NULLIF($4, ''), end_time = NULLIF($5, ''),
			description = $6, target_audience = $7, color = $8
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		a.ID, a.Title, a.Date, a.StartTime, a.EndTime, a.Description, a.TargetAudience, a.Color)
	if err != nil {
		return fmt.Errorf("update activity %s: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrActivityNotFound
	}
	return nil
}

// Delete removes an activity.
// Returns service.ErrActivityNotFound if the activity does not exist.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrActivityNotFound
	}
	return nil
}

func scanActivity(row pgx.Row) (model.Activity, error) {
	var a model.Activity
	err := row.Scan(&a.ID, &a.Title, &a.Date, &a.StartTime, &a.EndTime, &a.Description, &a.TargetAudience, &a.Color)
	if err != nil {
		return model.Activity{}, fmt.Errorf("scan activity: %w", err)
	}
	return a, nil
}
