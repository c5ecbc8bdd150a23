package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/rollover/internal/models"
	"github.com/starford/rollover/internal/rollover"
)

// SettingsResponse is the current template heading and its allowed values.
type SettingsResponse struct {
	TemplateHeading string   `json:"template_heading" example:"## Tasks" validate:"required"`
	Candidates      []string `json:"candidates" example:"## Tasks,none" validate:"required"`
}

// UpdateSettingsRequest is the request body for changing the template heading.
type UpdateSettingsRequest struct {
	TemplateHeading string `json:"template_heading" example:"## Tasks" validate:"required"`
}

// Validate validates the request body.
func (r UpdateSettingsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TemplateHeading, validation.Required, validation.Length(1, 1024)),
	)
}

// RolloverListResponse wraps the rollover history.
type RolloverListResponse struct {
	Rollovers []models.Rollover `json:"rollovers" validate:"required"`
}

// PreviewResponse is the dry-run result for a note (aliased from the domain layer).
type PreviewResponse = rollover.Preview
