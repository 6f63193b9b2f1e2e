package services

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"baro_landing_go/models"
)

// inputPolicy strips all markup from submitted text. Submissions come from an
// unauthenticated public form and the values end up inside the notification
// email HTML, so they are sanitized before anything else touches them.
var inputPolicy = bluemonday.StrictPolicy()

// SanitizeInput removes markup and surrounding whitespace from a submitted value.
func SanitizeInput(s string) string {
	return strings.TrimSpace(inputPolicy.Sanitize(s))
}

// CreateConsultation persists a new consultation record: sanitized inputs,
// canonical contact form, completion flag unset, click source defaulted.
// A single insert, no retries.
func CreateConsultation(db *gorm.DB, consultation *models.Consultation) error {
	consultation.Name = SanitizeInput(consultation.Name)
	consultation.Contact = FormatContact(consultation.Contact)
	consultation.ClickSource = SanitizeInput(consultation.ClickSource)
	if consultation.ClickSource == "" {
		consultation.ClickSource = models.ClickSourceUnknown
	}
	consultation.IsCompleted = false

	if err := db.Create(consultation).Error; err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}
