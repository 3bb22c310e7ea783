package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/keepup-loyalty/internal/calendar"
	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// CampaignService manages the campaign template library.
type CampaignService struct {
	templateRepo CampaignTemplateRepositoryInterface
	activityRepo ActivityRepositoryInterface
	now          func() time.Time
	newID        func() string
}

// NewCampaignService creates a new CampaignService using the wall clock.
func NewCampaignService(templateRepo CampaignTemplateRepositoryInterface, activityRepo ActivityRepositoryInterface) *CampaignService {
	return NewCampaignServiceWithClock(templateRepo, activityRepo, time.Now)
}

// NewCampaignServiceWithClock creates a CampaignService with a custom clock.
// The clock stamps the creation date of new templates.
func NewCampaignServiceWithClock(
	templateRepo CampaignTemplateRepositoryInterface,
	activityRepo ActivityRepositoryInterface,
	now func() time.Time,
) *CampaignService {
	return &CampaignService{
		templateRepo: templateRepo,
		activityRepo: activityRepo,
		now:          now,
		newID:        uuid.NewString,
	}
}

// ListTemplates returns every template.
func (s *CampaignService) ListTemplates(ctx context.Context) ([]model.CampaignTemplate, error) {
	return s.templateRepo.List(ctx)
}

// CreateTemplate stores a new template created today.
// Returns ErrActivityNotFound when the template is linked to an unknown activity.
func (s *CampaignService) CreateTemplate(ctx context.Context, req *model.CampaignTemplateRequest) (*model.CampaignTemplate, error) {
	if err := s.checkTemplateRequest(ctx, req); err != nil {
		return nil, err
	}

	template := &model.CampaignTemplate{
		ID:        s.newID(),
		CreatedAt: calendar.FormatDate(calendar.DateOf(s.now())),
	}
	applyTemplateRequest(template, req)
	if err := s.templateRepo.Insert(ctx, template); err != nil {
		return nil, err
	}

	log.Info().Str("template_id", template.ID).Str("channel", string(template.Channel)).Msg("campaign template created")
	return template, nil
}

// UpdateTemplate replaces a template, keeping its creation date.
// Returns ErrTemplateNotFound if the template doesn't exist.
func (s *CampaignService) UpdateTemplate(ctx context.Context, id string, req *model.CampaignTemplateRequest) (*model.CampaignTemplate, error) {
	if err := s.checkTemplateRequest(ctx, req); err != nil {
		return nil, err
	}

	existing, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTemplateNotFound
	}

	applyTemplateRequest(existing, req)
	if err := s.templateRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	log.Info().Str("template_id", existing.ID).Msg("campaign template updated")
	return existing, nil
}

// DeleteTemplate removes a template.
// Returns ErrTemplateNotFound if the template doesn't exist.
func (s *CampaignService) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("template_id", id).Msg("campaign template deleted")
	return nil
}

func (s *CampaignService) checkTemplateRequest(ctx context.Context, req *model.CampaignTemplateRequest) error {
	if req == nil {
		return ErrInvalidRequest
	}
	switch req.Channel {
	case model.ChannelEmail, model.ChannelWhatsApp:
	default:
		return ErrInvalidRequest
	}
	if req.OccasionDate != "" {
		if _, err := calendar.ParseDate(req.OccasionDate); err != nil {
			return ErrInvalidRequest
		}
	}
	if req.ActivityID == "" {
		return nil
	}
	activity, err := s.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		return err
	}
	if activity == nil {
		return ErrActivityNotFound
	}
	return nil
}

// applyTemplateRequest copies the request onto t. Only the field of the chosen channel is kept.
func applyTemplateRequest(t *model.CampaignTemplate, req *model.CampaignTemplateRequest) {
	t.Name = req.Name
	t.Channel = req.Channel
	t.Subject = ""
	t.WhatsAppTemplateName = ""
	if req.Channel == model.ChannelEmail {
		t.Subject = req.Subject
	} else {
		t.WhatsAppTemplateName = req.WhatsAppTemplateName
	}
	t.Content = req.Content
	t.OccasionName = req.OccasionName
	t.OccasionDate = req.OccasionDate
	t.ActivityID = req.ActivityID
}
