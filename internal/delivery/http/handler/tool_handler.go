package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"

	"ai-calling-agent/internal/agent/tools"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/pkg/response"

	"github.com/gorilla/mux"
)

// ToolRunner is the tool registry as seen by the API.
type ToolRunner interface {
	Names() []string
	Invoke(ctx context.Context, name string, params tools.Params) tools.Result
}

type ToolHandler struct {
	tools ToolRunner
}

func NewToolHandler(tools ToolRunner) *ToolHandler {
	return &ToolHandler{tools: tools}
}

func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	names := h.tools.Names()
	response.List(w, "Tools retrieved successfully", names, len(names))
}

// InvokeTool handles direct tool calls
// @Summary Invoke a tool
// @Description Run a registry tool with explicit parameters
// @Tags Tools
// @Accept json
// @Produce json
// @Param name path string true "Tool name"
// @Param request body dto.ToolRequest true "Tool Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /tools/{name} [post]
func (h *ToolHandler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if !slices.Contains(h.tools.Names(), name) {
		response.NotFound(w, "Unknown tool: "+name)
		return
	}

	// An empty body means no parameters.
	var req dto.ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result := h.tools.Invoke(r.Context(), name, tools.Params(req.Params))
	if msg, failed := result.Error(); failed {
		response.Error(w, http.StatusUnprocessableEntity, msg, nil)
		return
	}

	response.Success(w, http.StatusOK, "Tool executed successfully", result)
}
