package usecase

import (
	"context"
	"strings"

	"ai-calling-agent/internal/agent/dispatcher"
	"ai-calling-agent/internal/agent/localai"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"
	"ai-calling-agent/internal/service"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	EngineRemote = "remote"
	EngineLocal  = "local"
)

// Responder answers a turn with a completion model.
type Responder interface {
	Respond(ctx context.Context, turn dispatcher.Turn) (*dispatcher.Reply, error)
}

// LocalResponder answers a turn without one.
type LocalResponder interface {
	Respond(message string, company *entity.Company) *localai.Reply
}

type ConversationUsecase interface {
	Chat(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type conversationUsecase struct {
	log          *logrus.Logger
	companyRepo  repository.CompanyRepository
	remote       Responder
	local        LocalResponder
	auditService service.ConversationAuditService
}

// NewConversationUsecase routes turns to remote when it is non-nil and to
// local otherwise.
func NewConversationUsecase(
	log *logrus.Logger,
	companyRepo repository.CompanyRepository,
	remote Responder,
	local LocalResponder,
	auditService service.ConversationAuditService,
) ConversationUsecase {
	return &conversationUsecase{
		log:          log,
		companyRepo:  companyRepo,
		remote:       remote,
		local:        local,
		auditService: auditService,
	}
}

func (u *conversationUsecase) Chat(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperr.MissingField("message")
	}

	var company *entity.Company
	if req.CompanyID != "" {
		c, err := u.companyRepo.FindByID(ctx, entity.CompanyID(req.CompanyID))
		if err != nil {
			return nil, err
		}
		company = c
	}

	resp := &dto.ChatResponse{}
	if u.remote != nil {
		reply, err := u.remote.Respond(ctx, dispatcher.Turn{
			Company:   company,
			History:   toChatHistory(req.History),
			Message:   req.Message,
			UserEmail: entity.NormalizeEmail(req.UserEmail),
		})
		if err != nil {
			u.log.Warnf("Failed to complete conversation turn: %+v", err)
			return nil, err
		}
		resp.Reply = reply.Text
		resp.Intent = reply.Intent.String()
		resp.FunctionCalled = reply.FunctionCalled
		resp.FunctionResult = reply.FunctionResult
		resp.Engine = EngineRemote
	} else {
		reply := u.local.Respond(req.Message, company)
		resp.Reply = reply.Text
		resp.Intent = reply.Intent.String()
		resp.Engine = EngineLocal
	}

	turn := service.TurnRecord{
		UserID:         entity.UserID(userID),
		SessionID:      req.SessionID,
		UserMessage:    req.Message,
		AgentResponse:  resp.Reply,
		Language:       req.Language,
		DetectedIntent: resp.Intent,
		FunctionCalled: resp.FunctionCalled,
		FunctionResult: resp.FunctionResult,
	}
	if company != nil {
		turn.CompanyID = company.ID
	}
	if record := u.auditService.RecordTurn(ctx, turn); record != nil {
		resp.LogID = record.ID.String()
	}

	return resp, nil
}

func toChatHistory(history []dto.ChatMessage) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return messages
}
