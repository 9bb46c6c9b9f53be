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

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	available, ok := queryBool(r, "is_available")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid is_available filter", nil)
		return
	}

	doctors, err := h.doctorUsecase.List(r.Context(), dto.DoctorQuery{
		HospitalID:  r.URL.Query().Get("hospital_id"),
		IsAvailable: available,
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.List(w, "Doctors retrieved successfully", doctors, len(doctors))
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}
