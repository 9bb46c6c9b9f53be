package localai

import (
	"io"
	"testing"
	"time"

	"ai-calling-agent/internal/agent/intent"
	"ai-calling-agent/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Saturday
var fixedNow = time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log, WithClock(func() time.Time { return fixedNow }))
}

func TestRespond_BookingExtractsDateAndTime(t *testing.T) {
	e := newTestEngine()

	reply := e.Respond("book for tomorrow at 3pm", nil)

	assert.Equal(t, intent.Booking, reply.Intent)
	assert.Equal(t, "2025-03-02", reply.Date)
	assert.Equal(t, "15:00", reply.Time)
	assert.Contains(t, reply.Text, "I need an API key")
	assert.Contains(t, reply.Text, "2025-03-02 at 15:00")
}

func TestRespond_BookingAsksForMissingParts(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		message  string
		contains string
	}{
		{"schedule an appointment on monday", "What time"},
		{"can I book at 10:30", "Which day"},
		{"I want to book an appointment", "What date and time"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			reply := e.Respond(tt.message, nil)
			assert.Equal(t, intent.Booking, reply.Intent)
			assert.Contains(t, reply.Text, tt.contains)
			assert.NotContains(t, reply.Text, "API key")
		})
	}
}

func TestRespond_FeedbackReferencesRating(t *testing.T) {
	e := newTestEngine()

	reply := e.Respond("I'd like to give feedback, 4 stars, great service", nil)

	assert.Equal(t, intent.Feedback, reply.Intent)
	assert.Equal(t, 4, reply.Rating)
	assert.Contains(t, reply.Text, "rating of 4 out of 5")
}

func TestRespond_FeedbackDefaultsToFive(t *testing.T) {
	e := newTestEngine()

	reply := e.Respond("I want to leave a review", nil)

	assert.Equal(t, intent.Feedback, reply.Intent)
	assert.Equal(t, 5, reply.Rating)
}

func TestRespond_Vacancy(t *testing.T) {
	reply := newTestEngine().Respond("Do you have any job openings?", nil)

	assert.Equal(t, intent.Vacancy, reply.Intent)
	assert.Contains(t, reply.Text, "careers page")
}

func TestRespond_KnowledgeBase(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		message  string
		contains string
	}{
		{"What is machine learning?", "Machine learning is"},
		{"Explain blockchain to me", "shared ledger"},
		{"how does quantum computing work", "qubits"},
		{"what is AI", "Artificial intelligence is"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			reply := e.Respond(tt.message, nil)
			assert.Equal(t, intent.Question, reply.Intent)
			assert.Contains(t, reply.Text, tt.contains)
		})
	}
}

func TestRespond_CannedReplies(t *testing.T) {
	e := newTestEngine()
	company := &entity.Company{Name: "Spice Route"}

	assert.Equal(t, "Hello! Thank you for calling Spice Route. How can I help you today?", e.Respond("Hi there", company).Text)
	assert.Equal(t, "Hello! How can I help you today?", e.Respond("good morning", nil).Text)
	assert.Equal(t, thanksReply, e.Respond("thank you so much", nil).Text)
	assert.Equal(t, helpReply, e.Respond("can you help me", nil).Text)
	assert.Equal(t, rephraseReply, e.Respond("purple elephants", nil).Text)
}

func TestRespond_GreetingNeedsWordBoundary(t *testing.T) {
	reply := newTestEngine().Respond("this is something", nil)

	assert.Equal(t, rephraseReply, reply.Text)
}
