// Package dispatcher runs one conversation turn against a completion model:
// compose, complete, sniff the reply for an action, invoke the tool and
// complete again with its result.
package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-calling-agent/internal/agent/extract"
	"ai-calling-agent/internal/agent/intent"
	"ai-calling-agent/internal/agent/tools"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const DefaultPersona = "You are a friendly AI calling agent answering the phone for a business. " +
	"Keep answers short and conversational. Help callers book appointments, place and trace orders, " +
	"find available slots, learn about vacancies and leave feedback."

const defaultHistoryLimit = 20

// Config is the per-credential dispatcher setup. Each tenant credential gets
// its own Dispatcher built from its own Config.
type Config struct {
	Persona      string
	Model        string
	Temperature  float32
	MaxTokens    int
	HistoryLimit int
}

// Completer is the remote chat completion endpoint.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ToolInvoker runs a named tool and never fails.
type ToolInvoker interface {
	Invoke(ctx context.Context, name string, params tools.Params) tools.Result
}

// Turn is one user utterance with its conversation context.
type Turn struct {
	Company   *entity.Company
	History   []openai.ChatCompletionMessage
	Message   string
	UserEmail string
}

// Reply is the outcome of a turn. FunctionCalled is empty when the model's
// first answer triggered no action.
type Reply struct {
	Text           string
	Intent         intent.Intent
	Rule           string
	FunctionCalled string
	FunctionResult tools.Result
}

type Dispatcher struct {
	cfg       Config
	completer Completer
	tools     ToolInvoker
	log       *logrus.Logger
	now       func() time.Time
}

type Option func(*Dispatcher)

// WithClock replaces time.Now, used to resolve relative dates.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

func New(cfg Config, completer Completer, invoker ToolInvoker, log *logrus.Logger, opts ...Option) *Dispatcher {
	if cfg.Persona == "" {
		cfg.Persona = DefaultPersona
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	d := &Dispatcher{
		cfg:       cfg,
		completer: completer,
		tools:     invoker,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Respond(ctx context.Context, turn Turn) (*Reply, error) {
	if strings.TrimSpace(turn.Message) == "" {
		return nil, apperr.MissingField("message")
	}

	messages := d.compose(turn)

	first, err := d.complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	detected, rule := intent.DispatcherRules.Explain(first)
	if detected == intent.None {
		return &Reply{Text: first}, nil
	}

	name := detected.String()
	d.log.Infof("Dispatching %s (matched rule %q)", name, rule)
	result := d.tools.Invoke(ctx, name, d.params(detected, turn))
	if msg, failed := result.Error(); failed {
		d.log.Warnf("Tool %s returned error: %s", name, msg)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", name, err)
	}

	messages = append(messages,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: first},
		openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("Result of %s: %s\nAnswer the caller using this result.", name, payload),
		},
	)

	final, err := d.complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	return &Reply{
		Text:           final,
		Intent:         detected,
		Rule:           rule,
		FunctionCalled: name,
		FunctionResult: result,
	}, nil
}

// compose builds the system message, the trimmed history and the utterance.
func (d *Dispatcher) compose(turn Turn) []openai.ChatCompletionMessage {
	system := d.cfg.Persona
	if turn.Company != nil {
		system += "\n\n" + turn.Company.GroundingText()
	}

	history := trimHistory(turn.History, d.cfg.HistoryLimit)
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	messages = append(messages, history...)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: turn.Message})
	return messages
}

// trimHistory keeps the last limit messages. Caller supplied system messages
// are dropped; compose always provides its own.
func trimHistory(history []openai.ChatCompletionMessage, limit int) []openai.ChatCompletionMessage {
	kept := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		if m.Role == openai.ChatMessageRoleSystem || strings.TrimSpace(m.Content) == "" {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) > limit {
		kept = kept[len(kept)-limit:]
	}
	return kept
}

func (d *Dispatcher) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := d.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       d.cfg.Model,
		Messages:    messages,
		Temperature: d.cfg.Temperature,
		MaxTokens:   d.cfg.MaxTokens,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrRemoteService) {
			return "", err
		}
		return "", apperr.Remote("completion", 0, err)
	}
	if len(resp.Choices) == 0 {
		return "", apperr.Remote("completion", 0, errors.New("no choices returned"))
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// params derives tool arguments from the tenant and the user's utterance.
func (d *Dispatcher) params(detected intent.Intent, turn Turn) tools.Params {
	p := tools.Params{}
	if turn.UserEmail != "" {
		p["user_email"] = turn.UserEmail
	}
	if email, ok := extract.Email(turn.Message); ok {
		p["user_email"] = email
	}
	if turn.Company != nil {
		p["company_id"] = turn.Company.ID.String()
		p["entity_id"] = turn.Company.ID.String()
		p["entity_name"] = turn.Company.Name
	}

	switch detected {
	case intent.BookAppointment:
		p["type"] = appointmentType(turn.Company)
		if date, ok := extract.Date(turn.Message, d.now()); ok {
			p["date"] = date
		}
		if clock, ok := extract.Time(turn.Message); ok {
			p["time"] = clock
		}
	case intent.GetAvailableSlots:
		if date, ok := extract.Date(turn.Message, d.now()); ok {
			p["date"] = date
		}
	case intent.CollectFeedback:
		if rating, found := extract.Rating(turn.Message); found {
			p["rating"] = rating
		}
		p["comment"] = turn.Message
	case intent.TraceOrder:
		if id, ok := extract.OrderID(turn.Message); ok {
			p["order_id"] = id
		}
	}
	return p
}

func appointmentType(company *entity.Company) string {
	if company != nil && strings.EqualFold(company.Industry, "healthcare") {
		return "doctor"
	}
	return "general"
}
