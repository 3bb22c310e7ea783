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

const customerColumns = `id, name, email, phone, COALESCE(to_char(dob, 'YYYY-MM-DD'), ''), tier, COALESCE(to_char(last_seen, 'YYYY-MM-DD'), ''), points`

// CustomerRepository provides data access for loyalty members using pgx.
type CustomerRepository struct {
	pool PoolInterface
}

// NewCustomerRepository creates a new CustomerRepository with the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// NewCustomerRepositoryWithPool creates a new CustomerRepository with a custom pool interface.
func NewCustomerRepositoryWithPool(pool PoolInterface) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// List returns all customers ordered by name.
func (r *CustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a customer by ID.
// Returns nil, nil if the customer is not found (service layer handles this).
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return &c, nil
}

// Insert inserts a new customer.
// Returns service.ErrAlreadyExists if the ID is taken.
func (r *CustomerRepository) Insert(ctx context.Context, c *model.Customer) error {
	query := `INSERT INTO customers (id, name, email, phone, dob, tier, last_seen, points)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::date, $6, NULLIF($7, '')::date, $8)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.DOB, string(c.Tier), c.LastSeen, c.Points)
	if err != nil {
		if isUniqueViolation(err) {
			return service.ErrAlreadyExists
		}
		return fmt.Errorf("insert customer %s: %w", c.ID, err)
	}
	return nil
}

// Update replaces the profile fields of an existing customer. Points are left untouched.
// Returns service.ErrCustomerNotFound if the customer does not exist.
func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	query := `UPDATE customers
		SET name = $2, email = $3, phone = $4, dob = NULLIF($5, '')::date, tier = $6, last_seen = NULLIF($7, '')::date
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.DOB, string(c.Tier), c.LastSeen)
	if err != nil {
		return fmt.Errorf("update customer %s: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCustomerNotFound
	}
	return nil
}

// Delete removes a customer.
// Returns service.ErrCustomerNotFound if the customer does not exist.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (model.Customer, error) {
	var (
		c    model.Customer
		tier string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.DOB, &tier, &c.LastSeen, &c.Points)
	if err != nil {
		return model.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	c.Tier = model.Tier(tier)
	return c, nil
}
