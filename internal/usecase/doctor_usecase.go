package usecase

import (
	"context"

	"ai-calling-agent/internal/converter"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*entity.Doctor, error)
	List(ctx context.Context, query dto.DoctorQuery) ([]entity.Doctor, error)
	Get(ctx context.Context, id string) (*entity.Doctor, error)
}

type doctorUsecase struct {
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
}

func NewDoctorUsecase(log *logrus.Logger, doctorRepo repository.DoctorRepository) DoctorUsecase {
	return &doctorUsecase{
		log:        log,
		doctorRepo: doctorRepo,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*entity.Doctor, error) {
	doctor := converter.DoctorFromRequest(req)
	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}
	return doctor, nil
}

func (u *doctorUsecase) List(ctx context.Context, query dto.DoctorQuery) ([]entity.Doctor, error) {
	doctors, err := u.doctorRepo.List(ctx, entity.DoctorFilter{
		HospitalID:  entity.CompanyID(query.HospitalID),
		IsAvailable: query.IsAvailable,
	})
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return doctors, nil
}

func (u *doctorUsecase) Get(ctx context.Context, id string) (*entity.Doctor, error) {
	return u.doctorRepo.FindByID(ctx, entity.DoctorID(id))
}
