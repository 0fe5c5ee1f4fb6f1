package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// List godoc
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param category query string false "Filter by category"
// @Param paymentStatus query string false "Filter by payment status" Enums(unpaid, partially_paid, paid)
// @Param isRecurring query bool false "Filter recurring templates"
// @Param from query string false "Expenses on or after this date (YYYY-MM-DD)"
// @Param to query string false "Expenses on or before this date (YYYY-MM-DD)"
// @Param search query string false "Search by item name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ExpenseDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	filter := repository.ExpenseFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("paymentStatus"); raw != "" {
		s := domain.PaymentStatus(raw)
		filter.PaymentStatus = &s
	}
	if raw := r.URL.Query().Get("isRecurring"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid isRecurring value")
			return
		}
		filter.IsRecurring = &b
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

	result, err := h.expenseService.List(r.Context(), page, pageSize, filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "list expenses")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get expense by ID
// @Tags Expenses
// @Produce json
// @Param id path string true "Expense ID" format(uuid)
// @Success 200 {object} domain.ExpenseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	expense, err := h.expenseService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get expense")
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

// Create godoc
// @Summary Create expense
// @Description Create a one-off expense or a recurring template
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body domain.CreateExpenseRequest true "Expense data"
// @Success 201 {object} domain.ExpenseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateExpenseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	expense, err := h.expenseService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create expense")
		return
	}

	w.Header().Set("Location", "/api/v1/expenses/"+expense.ID.String())
	respondJSON(w, http.StatusCreated, expense)
}

// Update godoc
// @Summary Update expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID" format(uuid)
// @Param request body domain.UpdateExpenseRequest true "Expense data"
// @Success 200 {object} domain.ExpenseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateExpenseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	expense, err := h.expenseService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update expense")
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

// Delete godoc
// @Summary Delete expense
// @Tags Expenses
// @Param id path string true "Expense ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete expense")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOccurrences godoc
// @Summary List recurring expense occurrences
// @Tags Expenses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param parentExpenseId query string false "Filter by template" format(uuid)
// @Param status query string false "Filter by status" Enums(pending, completed, skipped)
// @Param from query string false "Occurrences on or after this date (YYYY-MM-DD)"
// @Param to query string false "Occurrences on or before this date (YYYY-MM-DD)"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.OccurrenceDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /expenses/occurrences [get]
func (h *ExpenseHandler) ListOccurrences(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	var filter repository.OccurrenceFilter
	if raw := r.URL.Query().Get("parentExpenseId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid parentExpenseId format")
			return
		}
		filter.ParentExpenseID = &id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.OccurrenceStatus(raw)
		filter.Status = &s
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

	result, err := h.expenseService.ListOccurrences(r.Context(), page, pageSize, filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "list occurrences")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CompleteOccurrence godoc
// @Summary Complete occurrence
// @Description Turn a pending occurrence into a concrete paid expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path string true "Occurrence ID" format(uuid)
// @Param request body domain.CompleteOccurrenceRequest true "Completion data"
// @Success 200 {object} domain.OccurrenceDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Occurrence already completed or skipped"
// @Security BearerAuth
// @Router /expenses/occurrences/{id}/complete [post]
func (h *ExpenseHandler) CompleteOccurrence(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CompleteOccurrenceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	occ, err := h.expenseService.CompleteOccurrence(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "complete occurrence")
		return
	}

	respondJSON(w, http.StatusOK, occ)
}

// SkipOccurrence godoc
// @Summary Skip occurrence
// @Description Mark a pending occurrence skipped without creating an expense
// @Tags Expenses
// @Produce json
// @Param id path string true "Occurrence ID" format(uuid)
// @Success 200 {object} domain.OccurrenceDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Occurrence already completed or skipped"
// @Security BearerAuth
// @Router /expenses/occurrences/{id}/skip [post]
func (h *ExpenseHandler) SkipOccurrence(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	occ, err := h.expenseService.SkipOccurrence(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "skip occurrence")
		return
	}

	respondJSON(w, http.StatusOK, occ)
}
