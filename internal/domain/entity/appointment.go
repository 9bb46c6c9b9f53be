package entity

import (
	"strings"
	"time"

	"ai-calling-agent/internal/domain/apperr"

	"gorm.io/datatypes"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment kinds by tenant type: hospital, restaurant/hotel, employer.
const (
	AppointmentTypeDoctor    = "doctor"
	AppointmentTypeTable     = "table"
	AppointmentTypeInterview = "interview"
	AppointmentTypeCEO       = "ceo"
	AppointmentTypeGeneral   = "general"
)

// Appointment references its tenant polymorphically through EntityID.
// Date and Time are kept as the strings the caller supplied.
type Appointment struct {
	ID         AppointmentID     `gorm:"type:varchar(64);primaryKey" bson:"_id" json:"id"`
	EntityID   CompanyID         `gorm:"type:varchar(64);index" bson:"entity_id" json:"entity_id"`
	EntityName string            `gorm:"type:varchar(255)" bson:"entity_name" json:"entity_name,omitempty"`
	Type       string            `gorm:"type:varchar(50);not null" bson:"type" json:"type"`
	PersonName string            `gorm:"type:varchar(255)" bson:"person_name" json:"person_name,omitempty"`
	Date       string            `gorm:"type:varchar(32);not null;index" bson:"date" json:"date"`
	Time       string            `gorm:"type:varchar(16);not null" bson:"time" json:"time"`
	UserEmail  string            `gorm:"type:varchar(255);index" bson:"user_email" json:"user_email,omitempty"`
	UserInfo   datatypes.JSONMap `bson:"user_info" json:"user_info,omitempty"`
	Status     AppointmentStatus `gorm:"type:varchar(20);not null;index" bson:"status" json:"status"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) ApplyDefaults() {
	if a.Status == "" {
		a.Status = AppointmentStatusScheduled
	}
}

func (a *Appointment) Validate() error {
	if err := ValidateRef("entity_id", string(a.EntityID)); err != nil {
		return err
	}
	if strings.TrimSpace(a.Type) == "" {
		return apperr.MissingField("type")
	}
	if strings.TrimSpace(a.Date) == "" {
		return apperr.MissingField("date")
	}
	if strings.TrimSpace(a.Time) == "" {
		return apperr.MissingField("time")
	}
	if !a.Status.Valid() {
		return apperr.Invalid("status", "must be one of scheduled, completed, cancelled")
	}
	return nil
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsScheduled checks if the appointment still occupies its slot
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
