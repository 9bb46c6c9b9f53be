package handler

import (
	"encoding/json"
	"net/http"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/delivery/http/middleware"
	"ai-calling-agent/internal/usecase"
	"ai-calling-agent/pkg/response"
	"ai-calling-agent/pkg/validator"
)

type ConversationHandler struct {
	conversationUsecase usecase.ConversationUsecase
	validator           *validator.CustomValidator
}

func NewConversationHandler(conversationUsecase usecase.ConversationUsecase, validator *validator.CustomValidator) *ConversationHandler {
	return &ConversationHandler{
		conversationUsecase: conversationUsecase,
		validator:           validator,
	}
}

// Chat handles one conversation turn
// @Summary Chat with the agent
// @Description Answer a user utterance for a company, invoking a tool when the reply calls for one
// @Tags Conversation
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /chat [post]
func (h *ConversationHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	// Anonymous callers are allowed; the turn is then logged without a user.
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if req.UserEmail == "" {
		req.UserEmail, _ = middleware.GetUserEmailFromContext(r.Context())
	}

	reply, err := h.conversationUsecase.Chat(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to process message")
		return
	}

	response.Success(w, http.StatusOK, "Message processed successfully", reply)
}
