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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	appointments, err := h.appointmentUsecase.List(r.Context(), dto.AppointmentQuery{
		EntityID:  q.Get("entity_id"),
		UserEmail: q.Get("user_email"),
		Date:      q.Get("date"),
		Status:    q.Get("status"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.List(w, "Appointments retrieved successfully", appointments, len(appointments))
}

// GetSlots handles slot availability
// @Summary Available slots
// @Description Free and booked slots of an entity for a day (default today)
// @Tags Appointments
// @Produce json
// @Param entity_id query string true "Entity ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /appointments/slots [get]
func (h *AppointmentHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.appointmentUsecase.Slots(r.Context(), r.URL.Query().Get("entity_id"), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *AppointmentHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.appointmentUsecase.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
