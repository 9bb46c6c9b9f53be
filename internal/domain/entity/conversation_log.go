package entity

import (
	"strings"
	"time"

	"ai-calling-agent/internal/domain/apperr"

	"gorm.io/datatypes"
)

// ConversationLog records one conversation turn and the tool it triggered, if any.
type ConversationLog struct {
	ID             LogID             `gorm:"type:varchar(64);primaryKey" bson:"_id" json:"id"`
	CompanyID      CompanyID         `gorm:"type:varchar(64);index" bson:"company_id" json:"company_id,omitempty"`
	UserID         UserID            `gorm:"type:varchar(64);index" bson:"user_id" json:"user_id,omitempty"`
	SessionID      string            `gorm:"type:varchar(64);index" bson:"session_id" json:"session_id,omitempty"`
	UserMessage    string            `gorm:"type:text;not null" bson:"user_message" json:"user_message"`
	AgentResponse  string            `gorm:"type:text" bson:"agent_response" json:"agent_response"`
	Language       string            `gorm:"type:varchar(16)" bson:"language" json:"language,omitempty"`
	DetectedIntent string            `gorm:"type:varchar(50);index" bson:"detected_intent" json:"detected_intent,omitempty"`
	FunctionCalled string            `gorm:"type:varchar(50)" bson:"function_called" json:"function_called,omitempty"`
	FunctionResult datatypes.JSONMap `bson:"function_result" json:"function_result,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime;index" bson:"created_at" json:"created_at"`
}

func (ConversationLog) TableName() string {
	return "conversation_logs"
}

func (l *ConversationLog) Validate() error {
	if strings.TrimSpace(l.UserMessage) == "" {
		return apperr.MissingField("user_message")
	}
	if err := ValidateOptionalRef("company_id", string(l.CompanyID)); err != nil {
		return err
	}
	return ValidateOptionalRef("user_id", string(l.UserID))
}
