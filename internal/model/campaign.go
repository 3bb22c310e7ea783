package model

// CampaignChannel is the delivery channel of a campaign template.
type CampaignChannel string

const (
	ChannelEmail    CampaignChannel = "Email"
	ChannelWhatsApp CampaignChannel = "WhatsApp"
)

// CampaignTemplate is a reusable message sent to members.
// Subject applies to Email templates and WhatsAppTemplateName to WhatsApp ones.
type CampaignTemplate struct {
	ID                   string          `json:"id" yaml:"id"`
	Name                 string          `json:"name" yaml:"name"`
	Channel              CampaignChannel `json:"channel" yaml:"channel"`
	Subject              string          `json:"subject,omitempty" yaml:"subject,omitempty"`
	WhatsAppTemplateName string          `json:"whatsapp_template_name,omitempty" yaml:"whatsapp_template_name,omitempty"`
	Content              string          `json:"content" yaml:"content"`
	CreatedAt            string          `json:"created_at" yaml:"created_at"` // YYYY-MM-DD
	OccasionName         string          `json:"occasion_name,omitempty" yaml:"occasion_name,omitempty"`
	OccasionDate         string          `json:"occasion_date,omitempty" yaml:"occasion_date,omitempty"`
	ActivityID           string          `json:"activity_id,omitempty" yaml:"activity_id,omitempty"`
}

// CampaignTemplateRequest is the DTO for POST /api/campaigns/templates and PUT /api/campaigns/templates/:id
type CampaignTemplateRequest struct {
	Name                 string          `json:"name" validate:"required,notblank,max=255"`
	Channel              CampaignChannel `json:"channel" validate:"required,oneof=Email WhatsApp"`
	Subject              string          `json:"subject" validate:"required_if=Channel Email,max=255"`
	WhatsAppTemplateName string          `json:"whatsapp_template_name" validate:"required_if=Channel WhatsApp,max=128"`
	Content              string          `json:"content" validate:"required,notblank,max=5000"`
	OccasionName         string          `json:"occasion_name" validate:"max=255"`
	OccasionDate         string          `json:"occasion_date" validate:"omitempty,isodate"`
	ActivityID           string          `json:"activity_id" validate:"max=64"`
}
