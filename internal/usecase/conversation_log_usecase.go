package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const logSheet = "Conversation Logs"

// LogExportHeader is the first row of the xlsx export.
var LogExportHeader = []string{
	"ID", "Created At", "Company ID", "User ID", "Session ID", "Language",
	"User Message", "Agent Response", "Detected Intent", "Function Called", "Function Result",
}

type ConversationLogUsecase interface {
	List(ctx context.Context, query dto.ConversationLogQuery) ([]entity.ConversationLog, error)
	// Export renders the filtered logs as an xlsx workbook.
	Export(ctx context.Context, query dto.ConversationLogQuery) ([]byte, error)
}

type conversationLogUsecase struct {
	log     *logrus.Logger
	logRepo repository.ConversationLogRepository
}

func NewConversationLogUsecase(log *logrus.Logger, logRepo repository.ConversationLogRepository) ConversationLogUsecase {
	return &conversationLogUsecase{
		log:     log,
		logRepo: logRepo,
	}
}

func (u *conversationLogUsecase) List(ctx context.Context, query dto.ConversationLogQuery) ([]entity.ConversationLog, error) {
	logs, err := u.logRepo.List(ctx, entity.ConversationLogFilter{
		CompanyID: entity.CompanyID(query.CompanyID),
		SessionID: query.SessionID,
	})
	if err != nil {
		u.log.Warnf("Failed to list conversation logs: %+v", err)
		return nil, err
	}
	return logs, nil
}

func (u *conversationLogUsecase) Export(ctx context.Context, query dto.ConversationLogQuery) ([]byte, error) {
	logs, err := u.List(ctx, query)
	if err != nil {
		return nil, err
	}

	data, err := renderLogWorkbook(logs)
	if err != nil {
		u.log.Warnf("Failed to render conversation log export: %+v", err)
		return nil, err
	}
	return data, nil
}

func renderLogWorkbook(logs []entity.ConversationLog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(logSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(logSheet, "A1", &LogExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(LogExportHeader), 1)
	if err := f.SetCellStyle(logSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, l := range logs {
		result := ""
		if len(l.FunctionResult) > 0 {
			raw, err := json.Marshal(l.FunctionResult)
			if err != nil {
				return nil, fmt.Errorf("failed to encode function result of %s: %w", l.ID, err)
			}
			result = string(raw)
		}

		row := []any{
			l.ID.String(), l.CreatedAt.UTC().Format(time.RFC3339), l.CompanyID.String(), l.UserID.String(),
			l.SessionID, l.Language, l.UserMessage, l.AgentResponse, l.DetectedIntent, l.FunctionCalled, result,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(logSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(logSheet, "G", "H", 60); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
