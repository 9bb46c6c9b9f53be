package dto

type CreateVacancyRequest struct {
	CompanyID   string `json:"company_id" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Department  string `json:"department"`
	Status      string `json:"status" validate:"omitempty,oneof=open closed"`
	Description string `json:"description"`
}

type VacancyQuery struct {
	CompanyID string
	Status    string
}
