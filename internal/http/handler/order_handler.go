package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// List godoc
// @Summary List orders
// @Description Get paginated list of orders with optional filters
// @Tags Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param clientId query string false "Filter by client" format(uuid)
// @Param status query string false "Filter by status" Enums(pending, in_progress, completed, delivered, cancelled)
// @Param paymentStatus query string false "Filter by payment status" Enums(unpaid, partially_paid, paid)
// @Param from query string false "Orders on or after this date (YYYY-MM-DD)"
// @Param to query string false "Orders on or before this date (YYYY-MM-DD)"
// @Param search query string false "Search in order notes"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.OrderDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	filter := repository.OrderFilter{
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid clientId format")
			return
		}
		filter.ClientID = &id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.OrderStatus(raw)
		filter.Status = &s
	}
	if raw := r.URL.Query().Get("paymentStatus"); raw != "" {
		s := domain.PaymentStatus(raw)
		filter.PaymentStatus = &s
	}
	from, ok := queryDate(w, r, "from")
	if !ok {
		return
	}
	filter.From = from
	to, ok := queryDate(w, r, "to")
	if !ok {
		return
	}
	filter.To = to

	result, err := h.orderService.List(r.Context(), page, pageSize, filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "list orders")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get order by ID
// @Description Get an order with its items, payments, and artwork files
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Create godoc
// @Summary Create order
// @Description Create an order, optionally with initial line items
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body domain.CreateOrderRequest true "Order data"
// @Success 201 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create order")
		return
	}

	w.Header().Set("Location", "/api/v1/orders/"+order.ID.String())
	respondJSON(w, http.StatusCreated, order)
}

// Update godoc
// @Summary Update order
// @Description Update the order date, status, or notes
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param request body domain.UpdateOrderRequest true "Order data"
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orderService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Delete godoc
// @Summary Delete order
// @Description Delete an order and its items and payments
// @Tags Orders
// @Param id path string true "Order ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Recalculate godoc
// @Summary Recalculate order totals
// @Description Rebuild the stored totals and payment status from the order's items and payments
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/recalculate [post]
func (h *OrderHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Recalculate(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "recalculate order totals")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// AddItem godoc
// @Summary Add line item
// @Description Add a line item to an order and recompute the totals
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param request body domain.CreateOrderItemRequest true "Item data"
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/items [post]
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateOrderItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orderService.AddItem(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add item")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// UpdateItem godoc
// @Summary Update line item
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param itemId path string true "Item ID" format(uuid)
// @Param request body domain.CreateOrderItemRequest true "Item data"
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/items/{itemId} [put]
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	var req domain.CreateOrderItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orderService.UpdateItem(r.Context(), id, itemID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update item")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// DeleteItem godoc
// @Summary Delete line item
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param itemId path string true "Item ID" format(uuid)
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/items/{itemId} [delete]
func (h *OrderHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "itemId")
	if !ok {
		return
	}

	order, err := h.orderService.DeleteItem(r.Context(), id, itemID)
	if err != nil {
		respondServiceError(w, h.logger, err, "delete item")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// AddPayment godoc
// @Summary Record payment
// @Description Record a payment against an order and recompute the totals
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param request body domain.CreatePaymentRequest true "Payment data"
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/payments [post]
func (h *OrderHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreatePaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orderService.AddPayment(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add payment")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// DeletePayment godoc
// @Summary Delete payment
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param paymentId path string true "Payment ID" format(uuid)
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/payments/{paymentId} [delete]
func (h *OrderHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	paymentID, ok := uuidParam(w, r, "paymentId")
	if !ok {
		return
	}

	order, err := h.orderService.DeletePayment(r.Context(), id, paymentID)
	if err != nil {
		respondServiceError(w, h.logger, err, "delete payment")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// queryDate parses an optional YYYY-MM-DD query parameter; a false return
// means the response has already been written
func queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name+" date, expected YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}
