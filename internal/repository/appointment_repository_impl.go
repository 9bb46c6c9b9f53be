package repository

import (
	"context"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) List(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := r.db.WithContext(ctx)
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.UserEmail != "" {
		query = query.Where("user_email = ?", filter.UserEmail)
	}
	if filter.Date != "" {
		query = query.Where(`"date" = ?`, filter.Date)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if err := query.Order(orderAppointments).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id entity.AppointmentID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error; err != nil {
		return nil, notFound(err, "appointment", id.String())
	}
	return &appointment, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	appointment.ApplyDefaults()
	if err := appointment.Validate(); err != nil {
		return err
	}
	if appointment.ID == "" {
		appointment.ID = entity.AppointmentID(newID())
	}
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id entity.AppointmentID, status entity.AppointmentStatus) (*entity.Appointment, error) {
	if !status.Valid() {
		return nil, apperr.Invalid("status", "must be one of scheduled, completed, cancelled")
	}
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("appointment", id.String())
	}
	return r.FindByID(ctx, id)
}

func (r *appointmentRepository) Delete(ctx context.Context, id entity.AppointmentID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected > 0, result.Error
}
