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

type FeedbackHandler struct {
	feedbackUsecase usecase.FeedbackUsecase
	validator       *validator.CustomValidator
}

func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase, validator *validator.CustomValidator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUsecase: feedbackUsecase,
		validator:       validator,
	}
}

func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.feedbackUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create feedback")
		return
	}

	response.Success(w, http.StatusCreated, "Feedback recorded successfully", feedback)
}

func (h *FeedbackHandler) GetAllFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedbackUsecase.List(r.Context(), dto.FeedbackQuery{
		EntityID:  r.URL.Query().Get("entity_id"),
		UserEmail: r.URL.Query().Get("user_email"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get feedback")
		return
	}

	response.List(w, "Feedback retrieved successfully", feedback, len(feedback))
}

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	if err := h.feedbackUsecase.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to delete feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback deleted successfully", nil)
}
