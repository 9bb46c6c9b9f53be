package usecase

import (
	"context"

	"ai-calling-agent/internal/converter"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type CompanyUsecase interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest) (*entity.Company, error)
	List(ctx context.Context, query dto.CompanyQuery) ([]entity.Company, error)
	Get(ctx context.Context, id string) (*entity.Company, error)
}

type companyUsecase struct {
	log         *logrus.Logger
	companyRepo repository.CompanyRepository
}

func NewCompanyUsecase(log *logrus.Logger, companyRepo repository.CompanyRepository) CompanyUsecase {
	return &companyUsecase{
		log:         log,
		companyRepo: companyRepo,
	}
}

func (u *companyUsecase) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*entity.Company, error) {
	company := converter.CompanyFromRequest(req)
	if err := u.companyRepo.Create(ctx, company); err != nil {
		u.log.Warnf("Failed to create company: %+v", err)
		return nil, err
	}
	return company, nil
}

func (u *companyUsecase) List(ctx context.Context, query dto.CompanyQuery) ([]entity.Company, error) {
	companies, err := u.companyRepo.List(ctx, entity.CompanyFilter{Industry: query.Industry})
	if err != nil {
		u.log.Warnf("Failed to list companies: %+v", err)
		return nil, err
	}
	return companies, nil
}

func (u *companyUsecase) Get(ctx context.Context, id string) (*entity.Company, error) {
	return u.companyRepo.FindByID(ctx, entity.CompanyID(id))
}
