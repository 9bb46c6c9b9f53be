package handler

import (
	"encoding/json"
	"net/http"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/usecase"
	"ai-calling-agent/pkg/response"
	"ai-calling-agent/pkg/validator"

	"github.com/gorilla/mux"
)

type CompanyHandler struct {
	companyUsecase usecase.CompanyUsecase
	validator      *validator.CustomValidator
}

func NewCompanyHandler(companyUsecase usecase.CompanyUsecase, validator *validator.CustomValidator) *CompanyHandler {
	return &CompanyHandler{
		companyUsecase: companyUsecase,
		validator:      validator,
	}
}

func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	company, err := h.companyUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create company")
		return
	}

	response.Success(w, http.StatusCreated, "Company created successfully", company)
}

func (h *CompanyHandler) GetAllCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyUsecase.List(r.Context(), dto.CompanyQuery{
		Industry: r.URL.Query().Get("industry"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get companies")
		return
	}

	response.List(w, "Companies retrieved successfully", companies, len(companies))
}

func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.companyUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get company")
		return
	}

	response.Success(w, http.StatusOK, "Company retrieved successfully", company)
}
