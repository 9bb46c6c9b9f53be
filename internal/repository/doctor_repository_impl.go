package repository

import (
	"context"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) List(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := r.db.WithContext(ctx)
	if filter.HospitalID != "" {
		query = query.Where("hospital_id = ?", filter.HospitalID)
	}
	if filter.IsAvailable != nil {
		query = query.Where("is_available = ?", *filter.IsAvailable)
	}
	if err := query.Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id entity.DoctorID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error; err != nil {
		return nil, notFound(err, "doctor", id.String())
	}
	return &doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	if err := doctor.Validate(); err != nil {
		return err
	}
	if doctor.ID == "" {
		doctor.ID = entity.DoctorID(newID())
	}
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	if err := entity.ValidateRef("id", doctor.ID.String()); err != nil {
		return err
	}
	if err := doctor.Validate(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&entity.Doctor{}).
		Where("id = ?", doctor.ID).
		Select("*").Omit("id", "created_at").
		Updates(doctor)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("doctor", doctor.ID.String())
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id entity.DoctorID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected > 0, result.Error
}
