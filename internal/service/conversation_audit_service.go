package service

import (
	"context"
	"encoding/json"

	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// TurnRecord is one answered utterance and the tool it triggered, if any.
type TurnRecord struct {
	CompanyID      entity.CompanyID
	UserID         entity.UserID
	SessionID      string
	UserMessage    string
	AgentResponse  string
	Language       string
	DetectedIntent string
	FunctionCalled string
	FunctionResult map[string]any
}

type ConversationAuditService interface {
	// RecordTurn writes a ConversationLog row. A failed write is logged and
	// never fails the conversation.
	RecordTurn(ctx context.Context, turn TurnRecord) *entity.ConversationLog
}

type conversationAuditService struct {
	log     *logrus.Logger
	logRepo repository.ConversationLogRepository
}

func NewConversationAuditService(log *logrus.Logger, logRepo repository.ConversationLogRepository) ConversationAuditService {
	return &conversationAuditService{
		log:     log,
		logRepo: logRepo,
	}
}

func (s *conversationAuditService) RecordTurn(ctx context.Context, turn TurnRecord) *entity.ConversationLog {
	record := &entity.ConversationLog{
		CompanyID:      turn.CompanyID,
		UserID:         turn.UserID,
		SessionID:      turn.SessionID,
		UserMessage:    turn.UserMessage,
		AgentResponse:  turn.AgentResponse,
		Language:       turn.Language,
		DetectedIntent: turn.DetectedIntent,
		FunctionCalled: turn.FunctionCalled,
		FunctionResult: toJSONMap(turn.FunctionResult),
	}

	if err := s.logRepo.Create(ctx, record); err != nil {
		s.log.Warnf("Failed to create conversation log: %+v", err)
		return nil
	}

	return record
}

// toJSONMap round-trips through JSON so typed values (decimals, structs,
// times) are stored the way the API renders them.
func toJSONMap(m map[string]any) datatypes.JSONMap {
	if len(m) == 0 {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSONMap{"error": err.Error()}
	}
	var out datatypes.JSONMap
	if err := json.Unmarshal(raw, &out); err != nil {
		return datatypes.JSONMap{"error": err.Error()}
	}
	return out
}
