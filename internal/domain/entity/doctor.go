package entity

import (
	"strings"
	"time"

	"ai-calling-agent/internal/domain/apperr"
)

// Doctor belongs to a hospital tenant.
type Doctor struct {
	ID              DoctorID  `gorm:"type:varchar(64);primaryKey" bson:"_id" json:"id"`
	HospitalID      CompanyID `gorm:"type:varchar(64);index" bson:"hospital_id" json:"hospital_id"`
	Name            string    `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Specialization  string    `gorm:"type:varchar(100);not null;index" bson:"specialization" json:"specialization"`
	ExperienceYears int       `gorm:"not null" bson:"experience_years" json:"experience_years"`
	IsAvailable     bool      `gorm:"not null;index" bson:"is_available" json:"is_available"`
	CreatedAt       time.Time `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) Validate() error {
	if err := ValidateRef("hospital_id", string(d.HospitalID)); err != nil {
		return err
	}
	if strings.TrimSpace(d.Name) == "" {
		return apperr.MissingField("name")
	}
	if strings.TrimSpace(d.Specialization) == "" {
		return apperr.MissingField("specialization")
	}
	if d.ExperienceYears < 0 {
		return apperr.Invalid("experience_years", "must not be negative")
	}
	return nil
}
