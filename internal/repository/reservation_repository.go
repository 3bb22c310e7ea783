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

const reservationColumns = `id, customer_name, to_char(reservation_date, 'YYYY-MM-DD'), reservation_time, party_size,
	status, table_number, notes, COALESCE(activity_id, '')`

// ReservationRepository provides data access for table reservations using pgx.
type ReservationRepository struct {
	pool PoolInterface
}

// NewReservationRepository creates a new ReservationRepository with the given pool.
func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

// NewReservationRepositoryWithPool creates a new ReservationRepository with a custom pool interface.
func NewReservationRepositoryWithPool(pool PoolInterface) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

// List returns all reservations in insertion order.
func (r *ReservationRepository) List(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	reservations := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}
	return reservations, nil
}

// GetByID retrieves a reservation by ID.
// Returns nil, nil if the reservation is not found.
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation %s: %w", id, err)
	}
	return &res, nil
}

// Insert inserts a new reservation.
// Returns service.ErrAlreadyExists if the ID is taken.
func (r *ReservationRepository) Insert(ctx context.Context, res *model.Reservation) error {
	query := `INSERT INTO reservations
		(id, customer_name, reservation_date, reservation_time, party_size, status, table_number, notes, activity_id)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, NULLIF($9, ''))`

	_, err := r.pool.Exec(ctx, query,
		res.ID, res.CustomerName, res.Date, res.Time, res.PartySize,
		string(res.Status), res.TableNumber, res.Notes, res.ActivityID)
	if err != nil {
		if isUniqueViolation(err) {
			return service.ErrAlreadyExists
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// Update replaces the fields of an existing reservation.
// Returns service.ErrReservationNotFound if the reservation does not exist.
func (r *ReservationRepository) Update(ctx context.Context, res *model.Reservation) error {
	query := `UPDATE reservations
		SET customer_name = $2, reservation_date = $3::date, reservation_time = $4, party_size = $5,
			status = $6, table_number = $7, notes = $8, activity_id = NULLIF($9, '')
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		res.ID, res.CustomerName, res.Date, res.Time, res.PartySize,
		string(res.Status), res.TableNumber, res.Notes, res.ActivityID)
	if err != nil {
		return fmt.Errorf("update reservation %s: %w", res.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrReservationNotFound
	}
	return nil
}

// UpdateStatus changes the status of a reservation.
// Returns service.ErrReservationNotFound if the reservation does not exist.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE reservations SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update reservation %s status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrReservationNotFound
	}
	return nil
}

// Delete removes a reservation.
// Returns service.ErrReservationNotFound if the reservation does not exist.
func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reservation %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrReservationNotFound
	}
	return nil
}

func scanReservation(row pgx.Row) (model.Reservation, error) {
	var (
		res    model.Reservation
		status string
	)
	err := row.Scan(&res.ID, &res.CustomerName, &res.Date, &res.Time, &res.PartySize,
		&status, &res.TableNumber, &res.Notes, &res.ActivityID)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("scan reservation: %w", err)
	}
	res.Status = model.ReservationStatus(status)
	return res, nil
}
