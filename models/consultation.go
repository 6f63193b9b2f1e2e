package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClickSourceUnknown is stored when a submission carries no attribution label.
const ClickSourceUnknown = "unknown"

// Consultation is a visitor-submitted consultation request (a lead).
// Records are immutable after creation; IsCompleted is flipped out-of-band by
// the operator tooling, never by this service.
type Consultation struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Submitter information
	Name    string `gorm:"not null" json:"name"`
	Contact string `gorm:"not null" json:"contact"` // canonical XXX-XXXX-XXXX display form

	// Operator workflow
	IsCompleted bool `gorm:"not null;default:false" json:"is_completed"`

	// Marketing attribution
	ClickSource string `gorm:"default:unknown" json:"click_source"`
}

// BeforeCreate hook to generate UUID
func (c *Consultation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Consultation model
func (Consultation) TableName() string {
	return "consultations"
}
