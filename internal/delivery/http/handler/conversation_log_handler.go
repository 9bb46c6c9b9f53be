package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/usecase"
	"ai-calling-agent/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ConversationLogHandler struct {
	logUsecase usecase.ConversationLogUsecase
	now        func() time.Time
}

func NewConversationLogHandler(logUsecase usecase.ConversationLogUsecase) *ConversationLogHandler {
	return &ConversationLogHandler{
		logUsecase: logUsecase,
		now:        time.Now,
	}
}

func (h *ConversationLogHandler) GetAllLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.logUsecase.List(r.Context(), logQuery(r))
	if err != nil {
		response.InternalServerError(w, "Failed to get conversation logs")
		return
	}

	response.List(w, "Conversation logs retrieved successfully", logs, len(logs))
}

// ExportLogs handles the log export
// @Summary Export conversation logs
// @Description Download the filtered conversation logs as an xlsx workbook
// @Tags Logs
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param company_id query string false "Company ID"
// @Param session_id query string false "Session ID"
// @Success 200 {file} file
// @Failure 403 {object} response.Response
// @Router /logs/export [get]
func (h *ConversationLogHandler) ExportLogs(w http.ResponseWriter, r *http.Request) {
	data, err := h.logUsecase.Export(r.Context(), logQuery(r))
	if err != nil {
		response.InternalServerError(w, "Failed to export conversation logs")
		return
	}

	filename := fmt.Sprintf("conversation_logs_%s.xlsx", h.now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func logQuery(r *http.Request) dto.ConversationLogQuery {
	return dto.ConversationLogQuery{
		CompanyID: r.URL.Query().Get("company_id"),
		SessionID: r.URL.Query().Get("session_id"),
	}
}
