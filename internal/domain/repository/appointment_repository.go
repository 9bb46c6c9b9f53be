package repository

import (
	"context"

	"ai-calling-agent/internal/domain/entity"
)

type AppointmentRepository interface {
	// List orders by date then time ascending.
	List(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByID(ctx context.Context, id entity.AppointmentID) (*entity.Appointment, error)
	Create(ctx context.Context, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, id entity.AppointmentID, status entity.AppointmentStatus) (*entity.Appointment, error)
	Delete(ctx context.Context, id entity.AppointmentID) (bool, error)
}
