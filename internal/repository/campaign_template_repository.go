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

const templateColumns = `id, name, channel, subject, whatsapp_template_name, content,
	to_char(created_on, 'YYYY-MM-DD'), occasion_name, COALESCE(to_char(occasion_date, 'YYYY-MM-DD'), ''),
	COALESCE(activity_id, '')`

// CampaignTemplateRepository provides data access for campaign templates using pgx.
type CampaignTemplateRepository struct {
	pool PoolInterface
}

// NewCampaignTemplateRepository creates a new CampaignTemplateRepository with the given pool.
func NewCampaignTemplateRepository(pool *pgxpool.Pool) *CampaignTemplateRepository {
	return &CampaignTemplateRepository{pool: pool}
}

// NewCampaignTemplateRepositoryWithPool creates a new CampaignTemplateRepository with a custom pool interface.
func NewCampaignTemplateRepositoryWithPool(pool PoolInterface) *CampaignTemplateRepository {
	return &CampaignTemplateRepository{pool: pool}
}

// List returns all templates in insertion order.
func (r *CampaignTemplateRepository) List(ctx context.Context) ([]model.CampaignTemplate, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+templateColumns+` FROM campaign_templates ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list campaign templates: %w", err)
	}
	defer rows.Close()

	templates := []model.CampaignTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaign template rows: %w", err)
	}
	return templates, nil
}

// GetByID retrieves a template by ID.
// Returns nil, nil if the template is not found.
func (r *CampaignTemplateRepository) GetByID(ctx context.Context, id string) (*model.CampaignTemplate, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+templateColumns+` FROM campaign_templates WHERE id = $1`, id)
	t, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get campaign template %s: %w", id, err)
	}
	return &t, nil
}

// Insert inserts a new template.
// Returns service.ErrAlreadyExists if the ID is taken.
func (r *CampaignTemplateRepository) Insert(ctx context.Context, t *model.CampaignTemplate) error {
	query := `INSERT INTO campaign_templates
		(id, name, channel, subject, whatsapp_template_name, content, created_on, occasion_name, occasion_date, activity_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, NULLIF($9, '')::date, NULLIF($10, ''))`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.Name, string(t.Channel), t.Subject, t.WhatsAppTemplateName, t.Content,
		t.CreatedAt, t.OccasionName, t.OccasionDate, t.ActivityID)
	if err != nil {
		if isUniqueViolation(err) {
			return service.ErrAlreadyExists
		}
		return fmt.Errorf("insert campaign template: %w", err)
	}
	return nil
}

// Update replaces the editable fields of a template. The creation date is kept.
// Returns service.ErrTemplateNotFound if the template does not exist.
func (r *CampaignTemplateRepository) Update(ctx context.Context, t *model.CampaignTemplate) error {
	query := `UPDATE campaign_templates
		SET name = $2, channel = $3, subject = $4, whatsapp_template_name = $5, content = $6,
			occasion_name = $7, occasion_date = NULLIF($8, '')::date, activity_id = NULLIF($9, '')
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		t.ID, t.Name, string(t.Channel), t.Subject, t.WhatsAppTemplateName, t.Content,
		t.OccasionName, t.OccasionDate, t.ActivityID)
	if err != nil {
		return fmt.Errorf("update campaign template %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrTemplateNotFound
	}
	return nil
}

// Delete removes a template.
// Returns service.ErrTemplateNotFound if the template does not exist.
func (r *CampaignTemplateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaign_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete campaign template %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrTemplateNotFound
	}
	return nil
}

func scanTemplate(row pgx.Row) (model.CampaignTemplate, error) {
	var (
		t       model.CampaignTemplate
		channel string
	)
	err := row.Scan(&t.ID, &t.Name, &channel, &t.Subject, &t.WhatsAppTemplateName, &t.Content,
		&t.CreatedAt, &t.OccasionName, &t.OccasionDate, &t.ActivityID)
	if err != nil {
		return model.CampaignTemplate{}, fmt.Errorf("scan campaign template: %w", err)
	}
	t.Channel = model.CampaignChannel(channel)
	return t, nil
}
