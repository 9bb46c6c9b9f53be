// Package tools is the fixed menu of actions the conversation layer can run
// against the Entity Store.
package tools

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ai-calling-agent/internal/domain/repository"
	"ai-calling-agent/internal/service"

	"github.com/sirupsen/logrus"
)

// Tool names as exposed to the dispatcher and the API.
const (
	BookAppointment     = "book_appointment"
	BookOrder           = "book_order"
	CollectFeedback     = "collect_feedback"
	GetAvailableSlots   = "get_available_slots"
	TraceOrder          = "trace_order"
	GetCompanyInsights  = "get_company_insights"
	QueryEntityDatabase = "query_entity_database"
	CheckVacancies      = "check_vacancies"
	GetCompanyDirectory = "get_company_directory"
	FindDoctors         = "find_doctors"
)

// Result is the structured outcome of a tool. Failures carry an "error" key.
type Result map[string]any

// Error returns the failure message, if any.
func (r Result) Error() (string, bool) {
	msg, ok := r["error"].(string)
	return msg, ok
}

// Deduplicator is the duplicate-suppression window guarding writes.
type Deduplicator interface {
	Claim(ctx context.Context, key string) (*service.DedupClaim, error)
	Commit(ctx context.Context, claim *service.DedupClaim, id string) error
	Release(ctx context.Context, claim *service.DedupClaim) error
}

// Mirror keeps writes the store could not accept.
type Mirror interface {
	Save(entityName string, record any) (string, error)
}

type handler func(ctx context.Context, p Params) (Result, error)

type Registry struct {
	store    *repository.Store
	dedup    Deduplicator
	mirror   Mirror
	guard    *WriteGuard
	log      *logrus.Logger
	now      func() time.Time
	handlers map[string]handler
}

type Option func(*Registry)

func WithDeduplicator(d Deduplicator) Option {
	return func(r *Registry) { r.dedup = d }
}

func WithMirror(m Mirror) Option {
	return func(r *Registry) { r.mirror = m }
}

// WithWriteGuard shares a guard with other writers; it takes precedence over
// WithDeduplicator and WithMirror.
func WithWriteGuard(g *WriteGuard) Option {
	return func(r *Registry) { r.guard = g }
}

// WithClock replaces time.Now, used to default the slot date.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(store *repository.Store, log *logrus.Logger, opts ...Option) *Registry {
	r := &Registry{
		store: store,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.guard == nil {
		r.guard = NewWriteGuard(r.dedup, r.mirror, log)
	}

	r.handlers = map[string]handler{
		BookAppointment: func(ctx context.Context, p Params) (Result, error) {
			return r.BookAppointment(ctx, AppointmentInputFromParams(p))
		},
		BookOrder: func(ctx context.Context, p Params) (Result, error) {
			return r.BookOrder(ctx, OrderInputFromParams(p))
		},
		CollectFeedback: func(ctx context.Context, p Params) (Result, error) {
			return r.CollectFeedback(ctx, FeedbackInputFromParams(p))
		},
		GetAvailableSlots: func(ctx context.Context, p Params) (Result, error) {
			return r.GetAvailableSlots(ctx, p.String("entity_id"), p.String("date"))
		},
		TraceOrder: func(ctx context.Context, p Params) (Result, error) {
			return r.TraceOrder(ctx, p.String("order_id"))
		},
		GetCompanyInsights: func(ctx context.Context, p Params) (Result, error) {
			return r.GetCompanyInsights(ctx, p.String("company_id"))
		},
		QueryEntityDatabase: func(ctx context.Context, p Params) (Result, error) {
			return r.QueryEntityDatabase(ctx, p.String("entity_id"))
		},
		CheckVacancies: func(ctx context.Context, p Params) (Result, error) {
			return r.CheckVacancies(ctx, p.String("company_id"))
		},
		GetCompanyDirectory: func(ctx context.Context, p Params) (Result, error) {
			return r.GetCompanyDirectory(ctx)
		},
		FindDoctors: func(ctx context.Context, p Params) (Result, error) {
			return r.FindDoctors(ctx, p.String("entity_id"), p.String("query"))
		},
	}
	return r
}

// Names lists the registered tools alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs a tool by name. It never fails: errors, unknown names and
// panics are all reported as {"error": message}.
func (r *Registry) Invoke(ctx context.Context, name string, params Params) (result Result) {
	h, ok := r.handlers[name]
	if !ok {
		return Result{"error": fmt.Sprintf("unknown tool: %s", name)}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorf("Tool %s panicked: %v", name, rec)
			result = Result{"error": fmt.Sprintf("%s failed unexpectedly", name)}
		}
	}()

	res, err := h(ctx, params)
	if err != nil {
		r.log.Warnf("Tool %s failed: %+v", name, err)
		return Result{"error": err.Error()}
	}
	return res
}
