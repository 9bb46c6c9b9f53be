package handler

import (
	"encoding/json"
	"net/http"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/usecase"
	"ai-calling-agent/pkg/response"
	"ai-calling-agent/pkg/validator"

	"github.com/gorilla/mux"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
	validator    *validator.CustomValidator
}

func NewOrderHandler(orderUsecase usecase.OrderUsecase, validator *validator.CustomValidator) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
		validator:    validator,
	}
}

// CreateOrder handles order placement
// @Summary Create order
// @Description Place an order; id, item, quantity, currency and total are defaulted
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Create Order Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.orderUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create order")
		return
	}

	response.Success(w, http.StatusCreated, "Order created successfully", order)
}

func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.List(r.Context(), dto.OrderQuery{
		CompanyID: r.URL.Query().Get("company_id"),
		UserEmail: r.URL.Query().Get("user_email"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get orders")
		return
	}

	response.List(w, "Orders retrieved successfully", orders, len(orders))
}

// TraceOrder handles order lookup
// @Summary Trace order
// @Description Look an order up by id, ignoring case
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) TraceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderUsecase.Trace(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to trace order")
		return
	}

	response.Success(w, http.StatusOK, "Order retrieved successfully", order)
}

func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.orderUsecase.UpdateStatus(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to update order status")
		return
	}

	response.Success(w, http.StatusOK, "Order status updated successfully", order)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orderUsecase.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to delete order")
		return
	}

	response.Success(w, http.StatusOK, "Order deleted successfully", nil)
}
