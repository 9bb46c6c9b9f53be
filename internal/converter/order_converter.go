package converter

import (
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"

	"gorm.io/datatypes"
)

func OrderFromRequest(req *dto.CreateOrderRequest) *entity.Order {
	return &entity.Order{
		CompanyID:    entity.CompanyID(req.CompanyID),
		Item:         req.Item,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Currency:     req.Currency,
		CustomerName: req.CustomerName,
		UserEmail:    entity.NormalizeEmail(req.UserEmail),
		Status:       entity.OrderStatus(req.Status),
	}
}

func OrderToResponse(order *entity.Order) *dto.OrderResponse {
	if order == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:           order.ID.String(),
		CompanyID:    order.CompanyID.String(),
		Item:         order.Item,
		Quantity:     order.Quantity,
		UnitPrice:    order.UnitPrice.StringFixed(2),
		TotalPrice:   order.TotalPrice.StringFixed(2),
		Currency:     order.Currency,
		CustomerName: order.CustomerName,
		UserEmail:    order.UserEmail,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
	}
}

func OrdersToResponse(orders []entity.Order) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *OrderToResponse(&orders[i]))
	}
	return responses
}

func AppointmentFromRequest(req *dto.CreateAppointmentRequest) *entity.Appointment {
	return &entity.Appointment{
		EntityID:   entity.CompanyID(req.EntityID),
		EntityName: req.EntityName,
		Type:       req.Type,
		PersonName: req.PersonName,
		Date:       req.Date,
		Time:       req.Time,
		UserEmail:  entity.NormalizeEmail(req.UserEmail),
		UserInfo:   datatypes.JSONMap(req.UserInfo),
	}
}

func FeedbackFromRequest(req *dto.CreateFeedbackRequest) *entity.Feedback {
	return &entity.Feedback{
		EntityID:   entity.CompanyID(req.EntityID),
		EntityName: req.EntityName,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Category:   req.Category,
		UserEmail:  entity.NormalizeEmail(req.UserEmail),
	}
}
