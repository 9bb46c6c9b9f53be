package entity

import (
	"time"

	"ai-calling-agent/internal/domain/apperr"
)

const (
	MaxRating       = 5
	DefaultCategory = "general"
)

// Feedback is a rating left for a tenant. Rating 0 means the caller gave none.
type Feedback struct {
	ID         FeedbackID `gorm:"type:varchar(64);primaryKey" bson:"_id" json:"id"`
	EntityID   CompanyID  `gorm:"type:varchar(64);index" bson:"entity_id" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" bson:"entity_name" json:"entity_name,omitempty"`
	Rating     int        `gorm:"not null" bson:"rating" json:"rating"`
	Comment    string     `gorm:"type:text" bson:"comment" json:"comment"`
	Category   string     `gorm:"type:varchar(50)" bson:"category" json:"category"`
	UserEmail  string     `gorm:"type:varchar(255);index" bson:"user_email" json:"user_email,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" bson:"created_at" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) ApplyDefaults() {
	if f.Category == "" {
		f.Category = DefaultCategory
	}
}

func (f *Feedback) Validate() error {
	if err := ValidateRef("entity_id", string(f.EntityID)); err != nil {
		return err
	}
	if f.Rating < 0 || f.Rating > MaxRating {
		return apperr.Invalid("rating", "must be between 1 and 5")
	}
	return nil
}
