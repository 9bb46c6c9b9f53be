// Package intent classifies text into a closed set of intents with ordered
// rule lists. The first matching rule wins.
package intent

import "strings"

type Intent string

const (
	None Intent = ""

	// Tool intents, named after the tool they trigger.
	CheckVacancies      Intent = "check_vacancies"
	BookAppointment     Intent = "book_appointment"
	CollectFeedback     Intent = "collect_feedback"
	GetAvailableSlots   Intent = "get_available_slots"
	GetCompanyDirectory Intent = "get_company_directory"
	TraceOrder          Intent = "trace_order"

	// Local fallback intents.
	Booking  Intent = "booking"
	Vacancy  Intent = "vacancy"
	Feedback Intent = "feedback"
	Question Intent = "question"
)

func (i Intent) String() string {
	return string(i)
}

// Predicate reports whether lower-cased text matches a rule.
type Predicate func(text string) bool

type Rule struct {
	Name   string
	Match  Predicate
	Intent Intent
}

// Rules is an ordered rule list with a fallback intent.
type Rules struct {
	rules    []Rule
	fallback Intent
}

func NewRules(fallback Intent, rules ...Rule) Rules {
	return Rules{rules: rules, fallback: fallback}
}

// Classify returns the intent of the first rule matching text, or the
// fallback when none does.
func (r Rules) Classify(text string) Intent {
	intent, _ := r.Explain(text)
	return intent
}

// Explain is Classify that also names the matching rule.
func (r Rules) Explain(text string) (Intent, string) {
	lower := strings.ToLower(text)
	for _, rule := range r.rules {
		if rule.Match(lower) {
			return rule.Intent, rule.Name
		}
	}
	return r.fallback, ""
}

// List returns the rules in precedence order.
func (r Rules) List() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Any matches when text contains at least one of the substrings.
func Any(substrings ...string) Predicate {
	return func(text string) bool {
		for _, s := range substrings {
			if strings.Contains(text, s) {
				return true
			}
		}
		return false
	}
}

// All matches when text contains every substring.
func All(substrings ...string) Predicate {
	return func(text string) bool {
		for _, s := range substrings {
			if !strings.Contains(text, s) {
				return false
			}
		}
		return true
	}
}

// DispatcherRules scan the model's reply, not the user's utterance.
var DispatcherRules = NewRules(None,
	Rule{Name: "vacancy", Match: Any("vacancy", "job opening"), Intent: CheckVacancies},
	Rule{Name: "book appointment", Match: All("book", "appointment"), Intent: BookAppointment},
	Rule{Name: "feedback", Match: Any("feedback"), Intent: CollectFeedback},
	Rule{Name: "available slot", Match: Any("available slot"), Intent: GetAvailableSlots},
	Rule{Name: "company directory", Match: Any("company directory", "list of companies"), Intent: GetCompanyDirectory},
	Rule{Name: "order status", Match: Any("order status", "trace order"), Intent: TraceOrder},
)

// FallbackRules classify the user's utterance when no model is configured.
var FallbackRules = NewRules(Question,
	Rule{Name: "booking", Match: Any("book", "schedule", "appointment"), Intent: Booking},
	Rule{Name: "vacancy", Match: Any("vacanc", "position", "job"), Intent: Vacancy},
	Rule{Name: "feedback", Match: Any("feedback", "rating", "review"), Intent: Feedback},
)
