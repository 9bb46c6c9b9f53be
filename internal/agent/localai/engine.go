// Package localai answers turns without a completion model. It reads nothing
// from the Entity Store and writes nothing to it.
package localai

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"ai-calling-agent/internal/agent/extract"
	"ai-calling-agent/internal/agent/intent"
	"ai-calling-agent/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

type Reply struct {
	Text   string
	Intent intent.Intent
	// Date and Time are set for booking turns when extracted.
	Date string
	Time string
	// Rating is set for feedback turns.
	Rating int
}

type topic struct {
	keywords []*regexp.Regexp
	answer   string
}

var questionPrefixes = []string{"what is", "what's", "what are", "how does", "how do", "explain", "tell me about"}

// Order matters: "machine learning" is checked before the broader "ai".
var knowledge = []topic{
	{
		keywords: words("machine learning", "ml"),
		answer: "Machine learning is a branch of AI where systems learn patterns from data instead of " +
			"following hand-written rules, and improve as they see more examples.",
	},
	{
		keywords: words("quantum computing", "quantum computer", "qubit"),
		answer: "Quantum computing uses qubits, which can hold a superposition of states, to solve certain " +
			"problems such as factoring or molecular simulation far faster than classical computers.",
	},
	{
		keywords: words("blockchain"),
		answer: "A blockchain is a shared ledger where records are grouped into blocks linked by " +
			"cryptographic hashes, so past entries cannot be changed without everyone noticing.",
	},
	{
		keywords: words("artificial intelligence", "ai"),
		answer: "Artificial intelligence is the field of building systems that perform tasks needing " +
			"human-like intelligence, such as understanding speech, answering questions and making decisions.",
	},
}

var (
	greetingPattern = regexp.MustCompile(`(?i)\b(hi|hello|hey|namaste|good (morning|afternoon|evening))\b`)
	helpPattern     = regexp.MustCompile(`(?i)\b(help|what can you do|assist)\b`)
	thanksPattern   = regexp.MustCompile(`(?i)\b(thanks|thank you|thx)\b`)
)

const (
	rephraseReply = "I'm sorry, I didn't quite catch that. Could you rephrase your question?"
	helpReply     = "I can help you book appointments, check vacancies, trace orders and record feedback. " +
		"What would you like to do?"
	thanksReply  = "You're welcome! Is there anything else I can help you with?"
	vacancyReply = "For current openings, please see our careers page. I can note your interest if you " +
		"share your name and the role you are looking for."
)

type Engine struct {
	log *logrus.Logger
	now func() time.Time
}

type Option func(*Engine)

// WithClock replaces time.Now, used to resolve relative dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(log *logrus.Logger, opts ...Option) *Engine {
	e := &Engine{log: log, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Respond classifies message with the fallback rules and answers from
// templates. company only personalises greetings.
func (e *Engine) Respond(message string, company *entity.Company) *Reply {
	detected, rule := intent.FallbackRules.Explain(message)
	e.log.Debugf("Local engine matched %q as %s", rule, detected)

	switch detected {
	case intent.Booking:
		return e.booking(message)
	case intent.Vacancy:
		return &Reply{Text: vacancyReply, Intent: detected}
	case intent.Feedback:
		rating, _ := extract.Rating(message)
		return &Reply{
			Text:   fmt.Sprintf("Thank you for your feedback! I've noted your rating of %d out of 5. We appreciate you taking the time to share it.", rating),
			Intent: detected,
			Rating: rating,
		}
	}
	return &Reply{Text: answer(message, company), Intent: intent.Question}
}

func (e *Engine) booking(message string) *Reply {
	date, hasDate := extract.Date(message, e.now())
	clock, hasTime := extract.Time(message)
	reply := &Reply{Intent: intent.Booking, Date: date, Time: clock}

	switch {
	case hasDate && hasTime:
		reply.Text = fmt.Sprintf("I understand you'd like to book an appointment on %s at %s. "+
			"To confirm bookings I need an API key; please add one in the settings and try again.", date, clock)
	case hasDate:
		reply.Text = fmt.Sprintf("I can book that for %s. What time would suit you?", date)
	case hasTime:
		reply.Text = fmt.Sprintf("I can book that at %s. Which day would you like?", clock)
	default:
		reply.Text = "I'd be happy to help you book an appointment. What date and time would you prefer?"
	}
	return reply
}

func answer(message string, company *entity.Company) string {
	lower := strings.ToLower(strings.TrimSpace(message))

	if isQuestion(lower) {
		for _, t := range knowledge {
			for _, k := range t.keywords {
				if k.MatchString(lower) {
					return t.answer
				}
			}
		}
	}

	switch {
	case greetingPattern.MatchString(lower):
		if company != nil && company.Name != "" {
			return fmt.Sprintf("Hello! Thank you for calling %s. How can I help you today?", company.Name)
		}
		return "Hello! How can I help you today?"
	case thanksPattern.MatchString(lower):
		return thanksReply
	case helpPattern.MatchString(lower):
		return helpReply
	}
	return rephraseReply
}

func isQuestion(lower string) bool {
	for _, p := range questionPrefixes {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func words(phrases ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(p)+`\b`))
	}
	return patterns
}
