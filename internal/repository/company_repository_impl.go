package repository

import (
	"context"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) List(ctx context.Context, filter entity.CompanyFilter) ([]entity.Company, error) {
	var companies []entity.Company
	query := r.db.WithContext(ctx)
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if err := query.Order("name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepository) FindByID(ctx context.Context, id entity.CompanyID) (*entity.Company, error) {
	var company entity.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		return nil, notFound(err, "company", id.String())
	}
	return &company, nil
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	if err := company.Validate(); err != nil {
		return err
	}
	if company.ID == "" {
		company.ID = entity.CompanyID(newID())
	}
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperr.Duplicate("company", "id", company.ID.String())
		}
		return err
	}
	return nil
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	if err := entity.ValidateRef("id", company.ID.String()); err != nil {
		return err
	}
	if err := company.Validate(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&entity.Company{}).
		Where("id = ?", company.ID).
		Select("*").Omit("id", "created_at").
		Updates(company)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("company", company.ID.String())
	}
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id entity.CompanyID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Company{})
	return result.RowsAffected > 0, result.Error
}
