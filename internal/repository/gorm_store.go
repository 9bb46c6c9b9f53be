package repository

import (
	domainRepo "ai-calling-agent/internal/domain/repository"

	"gorm.io/gorm"
)

// NewGormStore builds the relational Entity Store over a single gorm handle.
func NewGormStore(db *gorm.DB) *domainRepo.Store {
	return &domainRepo.Store{
		Companies:        NewCompanyRepository(db),
		Doctors:          NewDoctorRepository(db),
		Vacancies:        NewVacancyRepository(db),
		Orders:           NewOrderRepository(db),
		Appointments:     NewAppointmentRepository(db),
		Feedback:         NewFeedbackRepository(db),
		Users:            NewUserRepository(db),
		ConversationLogs: NewConversationLogRepository(db),
	}
}
