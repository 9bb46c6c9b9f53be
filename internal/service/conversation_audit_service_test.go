package service

import (
	"context"
	"errors"
	"testing"

	"ai-calling-agent/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogRepo struct {
	created []*entity.ConversationLog
	err     error
}

func (f *fakeLogRepo) List(ctx context.Context, filter entity.ConversationLogFilter) ([]entity.ConversationLog, error) {
	return nil, nil
}

func (f *fakeLogRepo) Create(ctx context.Context, log *entity.ConversationLog) error {
	if f.err != nil {
		return f.err
	}
	if err := log.Validate(); err != nil {
		return err
	}
	log.ID = "log-1"
	f.created = append(f.created, log)
	return nil
}

func TestConversationAuditService_RecordTurn(t *testing.T) {
	repo := &fakeLogRepo{}
	svc := NewConversationAuditService(quietLogger(), repo)

	record := svc.RecordTurn(context.Background(), TurnRecord{
		CompanyID:      "c1",
		SessionID:      "s1",
		UserMessage:    "where is ORD-ABC123",
		AgentResponse:  "It is on its way.",
		DetectedIntent: "trace_order",
		FunctionCalled: "trace_order",
		FunctionResult: map[string]any{"total_price": decimal.RequireFromString("12.50"), "success": true},
	})

	require.NotNil(t, record)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "12.5", repo.created[0].FunctionResult["total_price"])
	assert.Equal(t, true, repo.created[0].FunctionResult["success"])
}

func TestConversationAuditService_FailureIsSwallowed(t *testing.T) {
	repo := &fakeLogRepo{err: errors.New("connection refused")}
	svc := NewConversationAuditService(quietLogger(), repo)

	record := svc.RecordTurn(context.Background(), TurnRecord{UserMessage: "hello"})

	assert.Nil(t, record)
}

func TestConversationAuditService_EmptyResultStoredAsNull(t *testing.T) {
	repo := &fakeLogRepo{}
	svc := NewConversationAuditService(quietLogger(), repo)

	svc.RecordTurn(context.Background(), TurnRecord{UserMessage: "hi", AgentResponse: "Hello!"})

	require.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].FunctionResult)
}
