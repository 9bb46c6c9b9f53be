package usecase

import (
	"bytes"
	"context"
	"testing"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

func TestConversationLogUsecase_ExportWorkbook(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.ConversationLogs.Create(ctx, &entity.ConversationLog{
		CompanyID:      "spice-route",
		SessionID:      "s-1",
		UserMessage:    "where is ORD-00002A?",
		AgentResponse:  "It is on its way.",
		DetectedIntent: "trace_order",
		FunctionCalled: "trace_order",
		FunctionResult: datatypes.JSONMap{"status": "pending"},
	}))
	require.NoError(t, store.ConversationLogs.Create(ctx, &entity.ConversationLog{
		CompanyID:     "other",
		SessionID:     "s-2",
		UserMessage:   "hello",
		AgentResponse: "Hi!",
	}))

	uc := NewConversationLogUsecase(quietLogger(), store.ConversationLogs)
	data, err := uc.Export(ctx, dto.ConversationLogQuery{CompanyID: "spice-route"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{logSheet}, f.GetSheetList())

	rows, err := f.GetRows(logSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, LogExportHeader, rows[0])
	assert.Equal(t, "spice-route", rows[1][2])
	assert.Equal(t, "where is ORD-00002A?", rows[1][6])
	assert.Equal(t, "trace_order", rows[1][9])
	assert.JSONEq(t, `{"status":"pending"}`, rows[1][10])
}

func TestConversationLogUsecase_ListFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	for _, session := range []string{"s-1", "s-1", "s-2"} {
		require.NoError(t, store.ConversationLogs.Create(ctx, &entity.ConversationLog{SessionID: session, UserMessage: "hi"}))
	}

	uc := NewConversationLogUsecase(quietLogger(), store.ConversationLogs)

	logs, err := uc.List(ctx, dto.ConversationLogQuery{SessionID: "s-1"})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	all, err := uc.List(ctx, dto.ConversationLogQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestConversationLogUsecase_ExportEmpty(t *testing.T) {
	uc := NewConversationLogUsecase(quietLogger(), newTestStore(t).ConversationLogs)

	data, err := uc.Export(context.Background(), dto.ConversationLogQuery{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(logSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
