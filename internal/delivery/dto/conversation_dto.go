package dto

// ChatMessage is one prior turn of the conversation.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

type ChatRequest struct {
	CompanyID string        `json:"company_id"`
	SessionID string        `json:"session_id" validate:"omitempty,max=64"`
	Message   string        `json:"message" validate:"required"`
	Language  string        `json:"language" validate:"omitempty,max=16"`
	UserEmail string        `json:"user_email" validate:"omitempty,email"`
	History   []ChatMessage `json:"history" validate:"omitempty,dive"`
}

type ChatResponse struct {
	Reply          string         `json:"reply"`
	Intent         string         `json:"intent,omitempty"`
	FunctionCalled string         `json:"function_called,omitempty"`
	FunctionResult map[string]any `json:"function_result,omitempty"`
	Engine         string         `json:"engine"`
	LogID          string         `json:"log_id,omitempty"`
}

type ConversationLogQuery struct {
	CompanyID string
	SessionID string
}

// ToolRequest invokes a registry tool directly.
type ToolRequest struct {
	Params map[string]any `json:"params"`
}
