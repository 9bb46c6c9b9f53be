package usecase

import (
	"context"

	"ai-calling-agent/internal/converter"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type VacancyUsecase interface {
	Create(ctx context.Context, req *dto.CreateVacancyRequest) (*entity.Vacancy, error)
	List(ctx context.Context, query dto.VacancyQuery) ([]entity.Vacancy, error)
	Get(ctx context.Context, id string) (*entity.Vacancy, error)
}

type vacancyUsecase struct {
	log         *logrus.Logger
	vacancyRepo repository.VacancyRepository
}

func NewVacancyUsecase(log *logrus.Logger, vacancyRepo repository.VacancyRepository) VacancyUsecase {
	return &vacancyUsecase{
		log:         log,
		vacancyRepo: vacancyRepo,
	}
}

func (u *vacancyUsecase) Create(ctx context.Context, req *dto.CreateVacancyRequest) (*entity.Vacancy, error) {
	vacancy := converter.VacancyFromRequest(req)
	if err := u.vacancyRepo.Create(ctx, vacancy); err != nil {
		u.log.Warnf("Failed to create vacancy: %+v", err)
		return nil, err
	}
	return vacancy, nil
}

func (u *vacancyUsecase) List(ctx context.Context, query dto.VacancyQuery) ([]entity.Vacancy, error) {
	vacancies, err := u.vacancyRepo.List(ctx, entity.VacancyFilter{
		CompanyID: entity.CompanyID(query.CompanyID),
		Status:    entity.VacancyStatus(query.Status),
	})
	if err != nil {
		u.log.Warnf("Failed to list vacancies: %+v", err)
		return nil, err
	}
	return vacancies, nil
}

func (u *vacancyUsecase) Get(ctx context.Context, id string) (*entity.Vacancy, error) {
	return u.vacancyRepo.FindByID(ctx, entity.VacancyID(id))
}
