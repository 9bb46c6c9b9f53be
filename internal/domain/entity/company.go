package entity

import (
	"strings"
	"time"

	"ai-calling-agent/internal/domain/apperr"

	"gorm.io/datatypes"
)

// Company is a tenant: one customer business whose AI persona is operated.
type Company struct {
	ID             CompanyID         `gorm:"type:varchar(64);primaryKey" bson:"_id" json:"id"`
	Name           string            `gorm:"type:varchar(255);not null;index" bson:"name" json:"name"`
	Industry       string            `gorm:"type:varchar(100);index" bson:"industry" json:"industry"`
	Logo           string            `gorm:"type:varchar(255)" bson:"logo" json:"logo,omitempty"`
	ContextSummary string            `gorm:"type:text" bson:"context_summary" json:"context_summary,omitempty"`
	NLPContext     string            `gorm:"column:nlp_context;type:text" bson:"nlp_context" json:"nlp_context,omitempty"`
	Email          string            `gorm:"type:varchar(255)" bson:"email" json:"email,omitempty"`
	Phone          string            `gorm:"type:varchar(50)" bson:"phone" json:"phone,omitempty"`
	Website        string            `gorm:"type:varchar(255)" bson:"website" json:"website,omitempty"`
	Address        string            `gorm:"type:text" bson:"address" json:"address,omitempty"`
	SocialMedia    datatypes.JSONMap `bson:"social_media" json:"social_media,omitempty"`
	Gender         string            `gorm:"type:varchar(10)" bson:"gender" json:"gender,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" bson:"updated_at" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// Voice persona flags
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.MissingField("name")
	}
	return ValidateOptionalRef("id", string(c.ID))
}

// GroundingText is the company context handed verbatim to the language model.
func (c *Company) GroundingText() string {
	var b strings.Builder
	b.WriteString("Company: " + c.Name)
	if c.Industry != "" {
		b.WriteString("\nIndustry: " + c.Industry)
	}
	if c.ContextSummary != "" {
		b.WriteString("\nSummary: " + c.ContextSummary)
	}
	if c.NLPContext != "" {
		b.WriteString("\nContext: " + c.NLPContext)
	}
	return b.String()
}
