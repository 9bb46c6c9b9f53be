package repository

import (
	"context"

	"ai-calling-agent/internal/domain/entity"
)

type DoctorRepository interface {
	List(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error)
	FindByID(ctx context.Context, id entity.DoctorID) (*entity.Doctor, error)
	Create(ctx context.Context, doctor *entity.Doctor) error
	Update(ctx context.Context, doctor *entity.Doctor) error
	Delete(ctx context.Context, id entity.DoctorID) (bool, error)
}
