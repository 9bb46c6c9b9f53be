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

type VacancyHandler struct {
	vacancyUsecase usecase.VacancyUsecase
	validator      *validator.CustomValidator
}

func NewVacancyHandler(vacancyUsecase usecase.VacancyUsecase, validator *validator.CustomValidator) *VacancyHandler {
	return &VacancyHandler{
		vacancyUsecase: vacancyUsecase,
		validator:      validator,
	}
}

func (h *VacancyHandler) CreateVacancy(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	vacancy, err := h.vacancyUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create vacancy")
		return
	}

	response.Success(w, http.StatusCreated, "Vacancy created successfully", vacancy)
}

func (h *VacancyHandler) GetAllVacancies(w http.ResponseWriter, r *http.Request) {
	vacancies, err := h.vacancyUsecase.List(r.Context(), dto.VacancyQuery{
		CompanyID: r.URL.Query().Get("company_id"),
		Status:    r.URL.Query().Get("status"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get vacancies")
		return
	}

	response.List(w, "Vacancies retrieved successfully", vacancies, len(vacancies))
}

func (h *VacancyHandler) GetVacancy(w http.ResponseWriter, r *http.Request) {
	vacancy, err := h.vacancyUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get vacancy")
		return
	}

	response.Success(w, http.StatusOK, "Vacancy retrieved successfully", vacancy)
}
