package converter

import (
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"

	"gorm.io/datatypes"
)

func CompanyFromRequest(req *dto.CreateCompanyRequest) *entity.Company {
	return &entity.Company{
		ID:             entity.CompanyID(req.ID),
		Name:           req.Name,
		Industry:       req.Industry,
		Logo:           req.Logo,
		ContextSummary: req.ContextSummary,
		NLPContext:     req.NLPContext,
		Email:          req.Email,
		Phone:          req.Phone,
		Website:        req.Website,
		Address:        req.Address,
		SocialMedia:    datatypes.JSONMap(req.SocialMedia),
		Gender:         req.Gender,
	}
}

// DoctorFromRequest defaults IsAvailable to true when omitted.
func DoctorFromRequest(req *dto.CreateDoctorRequest) *entity.Doctor {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return &entity.Doctor{
		HospitalID:      entity.CompanyID(req.HospitalID),
		Name:            req.Name,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		IsAvailable:     available,
	}
}

func VacancyFromRequest(req *dto.CreateVacancyRequest) *entity.Vacancy {
	return &entity.Vacancy{
		CompanyID:   entity.CompanyID(req.CompanyID),
		Position:    req.Position,
		Department:  req.Department,
		Status:      entity.VacancyStatus(req.Status),
		Description: req.Description,
	}
}
