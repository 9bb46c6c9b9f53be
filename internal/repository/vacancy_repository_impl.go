package repository

import (
	"context"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"gorm.io/gorm"
)

type vacancyRepository struct {
	db *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) domainRepo.VacancyRepository {
	return &vacancyRepository{db: db}
}

func (r *vacancyRepository) List(ctx context.Context, filter entity.VacancyFilter) ([]entity.Vacancy, error) {
	var vacancies []entity.Vacancy
	query := r.db.WithContext(ctx)
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if err := query.Order("created_at DESC").Find(&vacancies).Error; err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (r *vacancyRepository) FindByID(ctx context.Context, id entity.VacancyID) (*entity.Vacancy, error) {
	var vacancy entity.Vacancy
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vacancy).Error; err != nil {
		return nil, notFound(err, "vacancy", id.String())
	}
	return &vacancy, nil
}

func (r *vacancyRepository) Create(ctx context.Context, vacancy *entity.Vacancy) error {
	vacancy.ApplyDefaults()
	if err := vacancy.Validate(); err != nil {
		return err
	}
	if vacancy.ID == "" {
		vacancy.ID = entity.VacancyID(newID())
	}
	return r.db.WithContext(ctx).Create(vacancy).Error
}

func (r *vacancyRepository) Update(ctx context.Context, vacancy *entity.Vacancy) error {
	if err := entity.ValidateRef("id", vacancy.ID.String()); err != nil {
		return err
	}
	vacancy.ApplyDefaults()
	if err := vacancy.Validate(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&entity.Vacancy{}).
		Where("id = ?", vacancy.ID).
		Select("*").Omit("id", "created_at").
		Updates(vacancy)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("vacancy", vacancy.ID.String())
	}
	return nil
}

func (r *vacancyRepository) Delete(ctx context.Context, id entity.VacancyID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Vacancy{})
	return result.RowsAffected > 0, result.Error
}
