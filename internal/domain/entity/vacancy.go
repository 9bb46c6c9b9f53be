package entity

import (
	"strings"
	"time"

	"ai-calling-agent/internal/domain/apperr"
)

type VacancyStatus string

const (
	VacancyStatusOpen   VacancyStatus = "open"
	VacancyStatusClosed VacancyStatus = "closed"
)

// Vacancy is a job opening published by a tenant.
type Vacancy struct {
	ID          VacancyID     `gorm:"type:varchar(64);primaryKey" bson:"_id" json:"id"`
	CompanyID   CompanyID     `gorm:"type:varchar(64);index" bson:"company_id" json:"company_id"`
	Position    string        `gorm:"type:varchar(255);not null" bson:"position" json:"position"`
	Department  string        `gorm:"type:varchar(100)" bson:"department" json:"department,omitempty"`
	Status      VacancyStatus `gorm:"type:varchar(20);not null;index" bson:"status" json:"status"`
	Description string        `gorm:"type:text" bson:"description" json:"description,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
}

func (Vacancy) TableName() string {
	return "vacancies"
}

func (v *Vacancy) ApplyDefaults() {
	if v.Status == "" {
		v.Status = VacancyStatusOpen
	}
}

func (v *Vacancy) Validate() error {
	if err := ValidateRef("company_id", string(v.CompanyID)); err != nil {
		return err
	}
	if strings.TrimSpace(v.Position) == "" {
		return apperr.MissingField("position")
	}
	return nil
}
