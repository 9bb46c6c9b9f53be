package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
)

// DailySlots is the fixed universe of bookable times per entity and day.
var DailySlots = []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"}

// VacanciesMessage is the static reply of check_vacancies.
const VacanciesMessage = "Please see our careers page for current openings."

// GetAvailableSlots splits DailySlots into times still free and times held
// by scheduled appointments. date defaults to today.
func (r *Registry) GetAvailableSlots(ctx context.Context, entityID, date string) (Result, error) {
	if err := entity.ValidateRef("entity_id", entityID); err != nil {
		return nil, err
	}
	if date == "" {
		date = r.now().Format("2006-01-02")
	}

	appointments, err := r.store.Appointments.List(ctx, entity.AppointmentFilter{
		EntityID: entity.CompanyID(entityID),
		Date:     date,
		Status:   entity.AppointmentStatusScheduled,
	})
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		taken[a.Time] = true
	}

	available := []string{}
	booked := []string{}
	for _, slot := range DailySlots {
		if taken[slot] {
			booked = append(booked, slot)
		} else {
			available = append(available, slot)
		}
	}

	return Result{
		"success":         true,
		"entity_id":       entityID,
		"date":            date,
		"available_slots": available,
		"booked_slots":    booked,
	}, nil
}

// TraceOrder looks an order up by id, ignoring case, and names its company.
func (r *Registry) TraceOrder(ctx context.Context, orderID string) (Result, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperr.MissingField("order_id")
	}
	order, err := r.store.Orders.FindByIDFold(ctx, orderID)
	if err != nil {
		return nil, err
	}

	companyName := ""
	if order.CompanyID != "" {
		company, err := r.store.Companies.FindByID(ctx, order.CompanyID)
		switch {
		case err == nil:
			companyName = company.Name
		case !apperr.IsDomain(err):
			r.log.Warnf("Failed to resolve company of order %s: %+v", order.ID, err)
		}
	}

	return Result{
		"success":       true,
		"order_id":      order.ID.String(),
		"status":        string(order.Status),
		"item":          order.Item,
		"quantity":      order.Quantity,
		"total_price":   order.TotalPrice.StringFixed(2),
		"currency":      order.Currency,
		"customer_name": order.CustomerName,
		"company_id":    order.CompanyID.String(),
		"company_name":  companyName,
		"created_at":    order.CreatedAt,
		"message":       fmt.Sprintf("Order %s is %s", order.ID, order.Status),
	}, nil
}

// GetCompanyInsights projects a company's grounding fields.
func (r *Registry) GetCompanyInsights(ctx context.Context, companyID string) (Result, error) {
	company, err := r.findCompany(ctx, "company_id", companyID)
	if err != nil {
		return nil, err
	}
	return Result{"success": true, "company": companyProjection(company)}, nil
}

// QueryEntityDatabase is GetCompanyInsights keyed by entity id.
func (r *Registry) QueryEntityDatabase(ctx context.Context, entityID string) (Result, error) {
	company, err := r.findCompany(ctx, "entity_id", entityID)
	if err != nil {
		return nil, err
	}
	return Result{"success": true, "entity": companyProjection(company)}, nil
}

// CheckVacancies always answers with the careers page message.
func (r *Registry) CheckVacancies(ctx context.Context, companyID string) (Result, error) {
	return Result{
		"success":   true,
		"vacancies": []any{},
		"message":   VacanciesMessage,
	}, nil
}

// GetCompanyDirectory lists every tenant by id, name and industry.
func (r *Registry) GetCompanyDirectory(ctx context.Context) (Result, error) {
	companies, err := r.store.Companies.List(ctx, entity.CompanyFilter{})
	if err != nil {
		return nil, err
	}

	directory := make([]map[string]any, 0, len(companies))
	for _, c := range companies {
		directory = append(directory, map[string]any{
			"id":       c.ID.String(),
			"name":     c.Name,
			"industry": c.Industry,
		})
	}
	return Result{"success": true, "companies": directory, "count": len(directory)}, nil
}

// doctorStopwords are dropped from a doctor query before matching.
var doctorStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "i": true, "me": true, "my": true, "for": true, "to": true,
	"need": true, "want": true, "find": true, "see": true, "show": true, "any": true, "is": true,
	"doctor": true, "doctors": true, "dr": true, "specialist": true, "specialists": true, "available": true,
}

// FindDoctors matches query keywords against a hospital's doctors by
// specialization or name. A query without keywords lists available doctors.
func (r *Registry) FindDoctors(ctx context.Context, entityID, query string) (Result, error) {
	if err := entity.ValidateRef("entity_id", entityID); err != nil {
		return nil, err
	}
	doctors, err := r.store.Doctors.List(ctx, entity.DoctorFilter{HospitalID: entity.CompanyID(entityID)})
	if err != nil {
		return nil, err
	}

	keywords := queryKeywords(query)
	matched := []map[string]any{}
	for _, d := range doctors {
		if len(keywords) == 0 && !d.IsAvailable {
			continue
		}
		if len(keywords) > 0 && !doctorMatches(d, keywords) {
			continue
		}
		matched = append(matched, map[string]any{
			"id":               d.ID.String(),
			"name":             d.Name,
			"specialization":   d.Specialization,
			"experience_years": d.ExperienceYears,
			"is_available":     d.IsAvailable,
		})
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i]["name"].(string) < matched[j]["name"].(string)
	})

	return Result{"success": true, "doctors": matched, "count": len(matched)}, nil
}

func queryKeywords(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	keywords := fields[:0]
	for _, f := range fields {
		if len(f) < 3 || doctorStopwords[f] {
			continue
		}
		keywords = append(keywords, f)
	}
	return keywords
}

// doctorMatches compares keywords against words of the specialization and
// name. Words sharing a 6-letter stem match, so "cardiologist" finds
// "Cardiology".
func doctorMatches(d entity.Doctor, keywords []string) bool {
	words := strings.Fields(strings.ToLower(d.Specialization + " " + d.Name))
	for _, k := range keywords {
		for _, w := range words {
			w = strings.Trim(w, ".,()")
			if w == k || sharesStem(w, k, 6) {
				return true
			}
		}
	}
	return false
}

func sharesStem(a, b string, n int) bool {
	if len(a) < n || len(b) < n {
		return false
	}
	return a[:n] == b[:n]
}

func (r *Registry) findCompany(ctx context.Context, field, id string) (*entity.Company, error) {
	if err := entity.ValidateRef(field, id); err != nil {
		return nil, err
	}
	return r.store.Companies.FindByID(ctx, entity.CompanyID(id))
}

func companyProjection(c *entity.Company) map[string]any {
	return map[string]any{
		"id":              c.ID.String(),
		"name":            c.Name,
		"industry":        c.Industry,
		"context_summary": c.ContextSummary,
		"nlp_context":     c.NLPContext,
		"website":         c.Website,
		"phone":           c.Phone,
		"email":           c.Email,
		"address":         c.Address,
	}
}
