package dispatcher

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"ai-calling-agent/internal/agent/intent"
	"ai-calling-agent/internal/agent/tools"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	replies  []string
	errAt    int
	err      error
	requests []openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	call := len(f.requests)
	if f.err != nil && call == f.errAt {
		return openai.ChatCompletionResponse{}, f.err
	}
	reply := ""
	if call <= len(f.replies) {
		reply = f.replies[call-1]
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply}}},
	}, nil
}

type invocation struct {
	name   string
	params tools.Params
}

type fakeTools struct {
	result tools.Result
	calls  []invocation
}

func (f *fakeTools) Invoke(ctx context.Context, name string, params tools.Params) tools.Result {
	f.calls = append(f.calls, invocation{name: name, params: params})
	if f.result != nil {
		return f.result
	}
	return tools.Result{"success": true}
}

var fixedNow = time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

func newTestDispatcher(completer Completer, invoker ToolInvoker) *Dispatcher {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(Config{Model: "llama-3.1-8b-instant", Temperature: 0.7, MaxTokens: 256, HistoryLimit: 4},
		completer, invoker, log, WithClock(func() time.Time { return fixedNow }))
}

var hospital = &entity.Company{
	ID:             "aarogya",
	Name:           "Aarogya Multispeciality Hospital",
	Industry:       "Healthcare",
	ContextSummary: "Cardiology and pediatrics under one roof",
}

func TestRespond_NoActionEndsAfterFirstPass(t *testing.T) {
	completer := &fakeCompleter{replies: []string{"We are open from 9 to 5."}}
	invoker := &fakeTools{}
	d := newTestDispatcher(completer, invoker)

	reply, err := d.Respond(context.Background(), Turn{Company: hospital, Message: "When are you open?"})
	require.NoError(t, err)

	assert.Equal(t, "We are open from 9 to 5.", reply.Text)
	assert.Equal(t, intent.None, reply.Intent)
	assert.Empty(t, reply.FunctionCalled)
	assert.Len(t, completer.requests, 1)
	assert.Empty(t, invoker.calls)
}

func TestRespond_DoctorMentionIsNotAnAction(t *testing.T) {
	completer := &fakeCompleter{replies: []string{"Our doctors are very experienced. How else can I help?", "second"}}
	invoker := &fakeTools{}
	d := newTestDispatcher(completer, invoker)

	reply, err := d.Respond(context.Background(), Turn{Company: hospital, Message: "Are your specialists good?"})
	require.NoError(t, err)

	assert.Equal(t, "Our doctors are very experienced. How else can I help?", reply.Text)
	assert.Empty(t, reply.FunctionCalled)
	assert.Len(t, completer.requests, 1)
	assert.Empty(t, invoker.calls)
}

func TestRespond_ComposesPersonaAndCompanyContext(t *testing.T) {
	completer := &fakeCompleter{replies: []string{"Hello!"}}
	d := newTestDispatcher(completer, &fakeTools{})

	_, err := d.Respond(context.Background(), Turn{Company: hospital, Message: "Hi"})
	require.NoError(t, err)

	req := completer.requests[0]
	assert.Equal(t, "llama-3.1-8b-instant", req.Model)
	assert.Equal(t, 256, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.True(t, strings.HasPrefix(req.Messages[0].Content, DefaultPersona))
	assert.Contains(t, req.Messages[0].Content, "Company: Aarogya Multispeciality Hospital")
	assert.Contains(t, req.Messages[0].Content, "Summary: Cardiology and pediatrics under one roof")
	assert.Equal(t, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: "Hi"}, req.Messages[1])
}

func TestRespond_BookingRunsToolAndSecondPass(t *testing.T) {
	completer := &fakeCompleter{replies: []string{
		"Sure, I will book an appointment for you.",
		"Your appointment is confirmed for tomorrow at 3 PM.",
	}}
	invoker := &fakeTools{result: tools.Result{"success": true, "appointment_id": "a-1"}}
	d := newTestDispatcher(completer, invoker)

	reply, err := d.Respond(context.Background(), Turn{
		Company:   hospital,
		Message:   "Please book me for tomorrow at 3pm",
		UserEmail: "asha@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Your appointment is confirmed for tomorrow at 3 PM.", reply.Text)
	assert.Equal(t, intent.BookAppointment, reply.Intent)
	assert.Equal(t, tools.BookAppointment, reply.FunctionCalled)
	assert.Equal(t, "a-1", reply.FunctionResult["appointment_id"])

	require.Len(t, invoker.calls, 1)
	params := invoker.calls[0].params
	assert.Equal(t, "aarogya", params["entity_id"])
	assert.Equal(t, "doctor", params["type"])
	assert.Equal(t, "2025-03-02", params["date"])
	assert.Equal(t, "15:00", params["time"])
	assert.Equal(t, "asha@example.com", params["user_email"])

	require.Len(t, completer.requests, 2)
	second := completer.requests[1].Messages
	last := second[len(second)-1]
	assert.Equal(t, openai.ChatMessageRoleSystem, last.Role)
	assert.Contains(t, last.Content, `"appointment_id":"a-1"`)
	assert.Equal(t, openai.ChatMessageRoleAssistant, second[len(second)-2].Role)
}

func TestRespond_ToolErrorFoldedIntoSecondPass(t *testing.T) {
	completer := &fakeCompleter{replies: []string{
		"Let me check your order status.",
		"I could not find that order.",
	}}
	invoker := &fakeTools{result: tools.Result{"error": `order "ORD-00000A" not found`}}
	d := newTestDispatcher(completer, invoker)

	reply, err := d.Respond(context.Background(), Turn{Company: hospital, Message: "where is ord-00000a?"})
	require.NoError(t, err)

	assert.Equal(t, "I could not find that order.", reply.Text)
	assert.Equal(t, tools.TraceOrder, reply.FunctionCalled)
	assert.Equal(t, "ORD-00000A", invoker.calls[0].params["order_id"])
	assert.Contains(t, completer.requests[1].Messages[len(completer.requests[1].Messages)-1].Content, "not found")
}

func TestRespond_FirstMatchingRuleWins(t *testing.T) {
	completer := &fakeCompleter{replies: []string{
		"We have a job opening, and I can also book an appointment.",
		"Here are the openings.",
	}}
	invoker := &fakeTools{}
	d := newTestDispatcher(completer, invoker)

	reply, err := d.Respond(context.Background(), Turn{Company: hospital, Message: "any jobs?"})
	require.NoError(t, err)

	assert.Equal(t, tools.CheckVacancies, reply.FunctionCalled)
	require.Len(t, invoker.calls, 1)
}

func TestRespond_FeedbackParams(t *testing.T) {
	completer := &fakeCompleter{replies: []string{"Thanks, I will record your feedback.", "Recorded."}}
	invoker := &fakeTools{}
	d := newTestDispatcher(completer, invoker)

	_, err := d.Respond(context.Background(), Turn{Company: hospital, Message: "4 stars, great service"})
	require.NoError(t, err)

	params := invoker.calls[0].params
	assert.Equal(t, 4, params["rating"])
	assert.Equal(t, "4 stars, great service", params["comment"])
}

func TestRespond_CompletionFailurePropagates(t *testing.T) {
	tests := []struct {
		name  string
		errAt int
	}{
		{"first pass", 1},
		{"second pass", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{
				replies: []string{"Let me check the available slots."},
				errAt:   tt.errAt,
				err:     errors.New("dial tcp: i/o timeout"),
			}
			d := newTestDispatcher(completer, &fakeTools{})

			reply, err := d.Respond(context.Background(), Turn{Company: hospital, Message: "free slots?"})

			assert.Nil(t, reply)
			assert.ErrorIs(t, err, apperr.ErrRemoteService)
		})
	}
}

func TestRespond_EmptyMessage(t *testing.T) {
	d := newTestDispatcher(&fakeCompleter{}, &fakeTools{})

	_, err := d.Respond(context.Background(), Turn{Message: "  "})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTrimHistory(t *testing.T) {
	history := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "old persona"},
		{Role: openai.ChatMessageRoleUser, Content: "1"},
		{Role: openai.ChatMessageRoleAssistant, Content: "2"},
		{Role: openai.ChatMessageRoleUser, Content: "3"},
		{Role: openai.ChatMessageRoleAssistant, Content: ""},
		{Role: openai.ChatMessageRoleAssistant, Content: "4"},
		{Role: openai.ChatMessageRoleUser, Content: "5"},
	}

	got := trimHistory(history, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].Content)
	assert.Equal(t, "5", got[2].Content)
}

func TestRespond_HistoryLimitKeepsSystemMessage(t *testing.T) {
	completer := &fakeCompleter{replies: []string{"ok"}}
	d := newTestDispatcher(completer, &fakeTools{})

	var history []openai.ChatCompletionMessage
	for i := 0; i < 10; i++ {
		history = append(history, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: "hello"})
	}

	_, err := d.Respond(context.Background(), Turn{History: history, Message: "and now?"})
	require.NoError(t, err)

	msgs := completer.requests[0].Messages
	assert.Len(t, msgs, 1+4+1)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Equal(t, DefaultPersona, msgs[0].Content)
}
