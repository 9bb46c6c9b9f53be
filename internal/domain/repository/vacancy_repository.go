package repository

import (
	"context"

	"ai-calling-agent/internal/domain/entity"
)

type VacancyRepository interface {
	List(ctx context.Context, filter entity.VacancyFilter) ([]entity.Vacancy, error)
	FindByID(ctx context.Context, id entity.VacancyID) (*entity.Vacancy, error)
	Create(ctx context.Context, vacancy *entity.Vacancy) error
	Update(ctx context.Context, vacancy *entity.Vacancy) error
	Delete(ctx context.Context, id entity.VacancyID) (bool, error)
}
