package handler

import (
	"net/http"

	"github.com/inkhaus/backoffice-api/internal/auth"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type MaterialHandler struct {
	materialService *service.MaterialService
	logger          *zap.Logger
}

func NewMaterialHandler(materialService *service.MaterialService, logger *zap.Logger) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
		logger:          logger,
	}
}

// List godoc
// @Summary List material purchases
// @Tags Materials
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param paymentStatus query string false "Filter by payment status" Enums(unpaid, partially_paid, paid)
// @Param search query string false "Search by supplier or material name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.MaterialPurchaseDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials [get]
func (h *MaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	filter := repository.MaterialFilter{
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("paymentStatus"); raw != "" {
		s := domain.PaymentStatus(raw)
		filter.PaymentStatus = &s
	}

	result, err := h.materialService.List(r.Context(), page, pageSize, filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "list material purchases")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get material purchase by ID
// @Description Get a purchase with its payments, installment plan, and notes
// @Tags Materials
// @Produce json
// @Param id path string true "Purchase ID" format(uuid)
// @Success 200 {object} domain.MaterialPurchaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [get]
func (h *MaterialHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	purchase, err := h.materialService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get material purchase")
		return
	}

	respondJSON(w, http.StatusOK, purchase)
}

// Create godoc
// @Summary Create material purchase
// @Tags Materials
// @Accept json
// @Produce json
// @Param request body domain.CreateMaterialPurchaseRequest true "Purchase data"
// @Success 201 {object} domain.MaterialPurchaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials [post]
func (h *MaterialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMaterialPurchaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	purchase, err := h.materialService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create material purchase")
		return
	}

	w.Header().Set("Location", "/api/v1/materials/"+purchase.ID.String())
	respondJSON(w, http.StatusCreated, purchase)
}

// Update godoc
// @Summary Update material purchase
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID" format(uuid)
// @Param request body domain.UpdateMaterialPurchaseRequest true "Purchase data"
// @Success 200 {object} domain.MaterialPurchaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [put]
func (h *MaterialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateMaterialPurchaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	purchase, err := h.materialService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update material purchase")
		return
	}

	respondJSON(w, http.StatusOK, purchase)
}

// Delete godoc
// @Summary Delete material purchase
// @Description Delete a purchase and its payments, installments, and notes
// @Tags Materials
// @Param id path string true "Purchase ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [delete]
func (h *MaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.materialService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete material purchase")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddPayment godoc
// @Summary Record payment
// @Description Record a payment towards a purchase and recompute the derived payment state
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID" format(uuid)
// @Param request body domain.CreatePaymentRequest true "Payment data"
// @Success 200 {object} domain.MaterialPurchaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id}/payments [post]
func (h *MaterialHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreatePaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	purchase, err := h.materialService.AddPayment(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add payment")
		return
	}

	respondJSON(w, http.StatusOK, purchase)
}

// DeletePayment godoc
// @Summary Delete payment
// @Tags Materials
// @Produce json
// @Param id path string true "Purchase ID" format(uuid)
// @Param paymentId path string true "Payment ID" format(uuid)
// @Success 200 {object} domain.MaterialPurchaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id}/payments/{paymentId} [delete]
func (h *MaterialHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	paymentID, ok := uuidParam(w, r, "paymentId")
	if !ok {
		return
	}

	purchase, err := h.materialService.DeletePayment(r.Context(), id, paymentID)
	if err != nil {
		respondServiceError(w, h.logger, err, "delete payment")
		return
	}

	respondJSON(w, http.StatusOK, purchase)
}

// GenerateInstallments godoc
// @Summary Generate installment plan
// @Description Replace the pending installment plan with a new one covering the outstanding balance
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID" format(uuid)
// @Param request body domain.GenerateInstallmentsRequest true "Plan parameters"
// @Success 200 {object} domain.MaterialPurchaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id}/installments [post]
func (h *MaterialHandler) GenerateInstallments(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.GenerateInstallmentsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	purchase, err := h.materialService.GenerateInstallments(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "generate installments")
		return
	}

	respondJSON(w, http.StatusOK, purchase)
}

// UpdateInstallmentStatus godoc
// @Summary Update installment status
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID" format(uuid)
// @Param installmentId path string true "Installment ID" format(uuid)
// @Param request body domain.UpdateInstallmentStatusRequest true "New status"
// @Success 200 {object} domain.MaterialPurchaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id}/installments/{installmentId} [put]
func (h *MaterialHandler) UpdateInstallmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	installmentID, ok := uuidParam(w, r, "installmentId")
	if !ok {
		return
	}

	var req domain.UpdateInstallmentStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	purchase, err := h.materialService.UpdateInstallmentStatus(r.Context(), id, installmentID, req.Status)
	if err != nil {
		respondServiceError(w, h.logger, err, "update installment")
		return
	}

	respondJSON(w, http.StatusOK, purchase)
}

// AddNote godoc
// @Summary Add note
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID" format(uuid)
// @Param request body domain.CreateMaterialNoteRequest true "Note body"
// @Success 200 {object} domain.MaterialPurchaseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id}/notes [post]
func (h *MaterialHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateMaterialNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	authorName := ""
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		authorName = userCtx.DisplayName
	}

	purchase, err := h.materialService.AddNote(r.Context(), id, &req, authorName)
	if err != nil {
		respondServiceError(w, h.logger, err, "add note")
		return
	}

	respondJSON(w, http.StatusOK, purchase)
}

// DeleteNote godoc
// @Summary Delete note
// @Tags Materials
// @Param id path string true "Purchase ID" format(uuid)
// @Param noteId path string true "Note ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id}/notes/{noteId} [delete]
func (h *MaterialHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	noteID, ok := uuidParam(w, r, "noteId")
	if !ok {
		return
	}

	if err := h.materialService.DeleteNote(r.Context(), id, noteID); err != nil {
		respondServiceError(w, h.logger, err, "delete note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
