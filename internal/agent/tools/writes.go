package tools

import (
	"context"
	"fmt"

	"ai-calling-agent/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type AppointmentInput struct {
	EntityID   string
	EntityName string
	Type       string
	PersonName string
	Date       string
	Time       string
	UserEmail  string
	UserInfo   map[string]any
}

func AppointmentInputFromParams(p Params) AppointmentInput {
	return AppointmentInput{
		EntityID:   p.String("entity_id"),
		EntityName: p.String("entity_name"),
		Type:       p.String("type"),
		PersonName: p.String("person_name"),
		Date:       p.String("date"),
		Time:       p.String("time"),
		UserEmail:  p.String("user_email"),
		UserInfo:   p.Map("user_info"),
	}
}

type OrderInput struct {
	CompanyID    string
	Item         string
	Quantity     int
	UnitPrice    decimal.Decimal
	CustomerName string
	UserEmail    string
}

func OrderInputFromParams(p Params) OrderInput {
	in := OrderInput{
		CompanyID:    p.String("company_id"),
		Item:         p.String("item"),
		CustomerName: p.String("customer_name"),
		UserEmail:    p.String("user_email"),
	}
	if q, ok := p.Int("quantity"); ok {
		in.Quantity = q
	}
	if price := p.String("unit_price"); price != "" {
		if d, err := decimal.NewFromString(price); err == nil {
			in.UnitPrice = d
		}
	}
	return in
}

type FeedbackInput struct {
	EntityID   string
	EntityName string
	Rating     int
	Comment    string
	Category   string
	UserEmail  string
}

func FeedbackInputFromParams(p Params) FeedbackInput {
	in := FeedbackInput{
		EntityID:   p.String("entity_id"),
		EntityName: p.String("entity_name"),
		Comment:    p.String("comment"),
		Category:   p.String("category"),
		UserEmail:  p.String("user_email"),
	}
	if r, ok := p.Int("rating"); ok {
		in.Rating = r
	}
	return in
}

// BookAppointment creates a scheduled appointment.
func (r *Registry) BookAppointment(ctx context.Context, in AppointmentInput) (Result, error) {
	appointment := &entity.Appointment{
		EntityID:   entity.CompanyID(in.EntityID),
		EntityName: in.EntityName,
		Type:       in.Type,
		PersonName: in.PersonName,
		Date:       in.Date,
		Time:       in.Time,
		UserEmail:  entity.NormalizeEmail(in.UserEmail),
		UserInfo:   datatypes.JSONMap(in.UserInfo),
		Status:     entity.AppointmentStatusScheduled,
	}
	if err := appointment.Validate(); err != nil {
		return nil, err
	}

	id, res, err := r.guard.Create(ctx, AppointmentKey(appointment), "appointments", appointment, func() (string, error) {
		if err := r.store.Appointments.Create(ctx, appointment); err != nil {
			return "", err
		}
		return appointment.ID.String(), nil
	}, func(id string) { appointment.ID = entity.AppointmentID(id) })
	if err != nil {
		return nil, err
	}

	with := appointment.PersonName
	if with == "" {
		with = appointment.EntityName
	}
	message := fmt.Sprintf("Appointment booked for %s at %s", appointment.Date, appointment.Time)
	if with != "" {
		message = fmt.Sprintf("Appointment booked with %s for %s at %s", with, appointment.Date, appointment.Time)
	}

	res["appointment_id"] = id
	res["status"] = string(entity.AppointmentStatusScheduled)
	res["date"] = appointment.Date
	res["time"] = appointment.Time
	if res["duplicate"] == true {
		res["message"] = "This appointment was already booked a moment ago"
	} else {
		res["message"] = message
	}
	return res, nil
}

// BookOrder creates a completed order with the item and quantity defaults.
func (r *Registry) BookOrder(ctx context.Context, in OrderInput) (Result, error) {
	order := &entity.Order{
		CompanyID:    entity.CompanyID(in.CompanyID),
		Item:         in.Item,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		CustomerName: in.CustomerName,
		UserEmail:    entity.NormalizeEmail(in.UserEmail),
		Status:       entity.OrderStatusCompleted,
	}
	order.ApplyDefaults()
	if err := order.Validate(); err != nil {
		return nil, err
	}

	id, res, err := r.guard.Create(ctx, OrderKey(order), "orders", order, func() (string, error) {
		if err := r.store.Orders.Create(ctx, order); err != nil {
			return "", err
		}
		return order.ID.String(), nil
	}, func(id string) { order.ID = entity.OrderID(id) })
	if err != nil {
		return nil, err
	}

	res["order_id"] = id
	res["status"] = string(order.Status)
	res["item"] = order.Item
	res["quantity"] = order.Quantity
	if res["duplicate"] == true {
		res["message"] = fmt.Sprintf("Order %s was already placed a moment ago", id)
	} else {
		res["message"] = fmt.Sprintf("Order %s placed: %d x %s", id, order.Quantity, order.Item)
	}
	return res, nil
}

// CollectFeedback stores a rating (0 when not given) and comment.
func (r *Registry) CollectFeedback(ctx context.Context, in FeedbackInput) (Result, error) {
	feedback := &entity.Feedback{
		EntityID:   entity.CompanyID(in.EntityID),
		EntityName: in.EntityName,
		Rating:     in.Rating,
		Comment:    in.Comment,
		Category:   in.Category,
		UserEmail:  entity.NormalizeEmail(in.UserEmail),
	}
	feedback.ApplyDefaults()
	if err := feedback.Validate(); err != nil {
		return nil, err
	}

	id, res, err := r.guard.Create(ctx, FeedbackKey(feedback), "feedback", feedback, func() (string, error) {
		if err := r.store.Feedback.Create(ctx, feedback); err != nil {
			return "", err
		}
		return feedback.ID.String(), nil
	}, func(id string) { feedback.ID = entity.FeedbackID(id) })
	if err != nil {
		return nil, err
	}

	res["feedback_id"] = id
	res["rating"] = feedback.Rating
	if res["duplicate"] == true {
		res["message"] = "Your feedback was already recorded, thank you"
	} else {
		res["message"] = "Thank you for your feedback"
	}
	return res, nil
}
