package repository

import (
	"context"

	"ai-calling-agent/internal/domain/entity"
)

type CompanyRepository interface {
	List(ctx context.Context, filter entity.CompanyFilter) ([]entity.Company, error)
	FindByID(ctx context.Context, id entity.CompanyID) (*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id entity.CompanyID) (bool, error)
}
