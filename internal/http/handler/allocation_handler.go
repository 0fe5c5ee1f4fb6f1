package handler

import (
	"net/http"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type AllocationHandler struct {
	allocationService *service.AllocationService
	logger            *zap.Logger
}

func NewAllocationHandler(allocationService *service.AllocationService, logger *zap.Logger) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
		logger:            logger,
	}
}

// ListRules godoc
// @Summary List allocation rules
// @Tags Allocations
// @Produce json
// @Success 200 {array} domain.AllocationRuleDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /allocation-rules [get]
func (h *AllocationHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.allocationService.ListRules(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "list allocation rules")
		return
	}

	respondJSON(w, http.StatusOK, rules)
}

// GetRule godoc
// @Summary Get allocation rule by ID
// @Tags Allocations
// @Produce json
// @Param id path string true "Rule ID" format(uuid)
// @Success 200 {object} domain.AllocationRuleDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /allocation-rules/{id} [get]
func (h *AllocationHandler) GetRule(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	rule, err := h.allocationService.GetRule(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get allocation rule")
		return
	}

	respondJSON(w, http.StatusOK, rule)
}

// CreateRule godoc
// @Summary Create allocation rule
// @Description Create a rule. Active rules for one source type may not total more than 100%.
// @Tags Allocations
// @Accept json
// @Produce json
// @Param request body domain.CreateAllocationRuleRequest true "Rule data"
// @Success 201 {object} domain.AllocationRuleDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Percentage ceiling exceeded"
// @Security BearerAuth
// @Router /allocation-rules [post]
func (h *AllocationHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAllocationRuleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rule, err := h.allocationService.CreateRule(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create allocation rule")
		return
	}

	w.Header().Set("Location", "/api/v1/allocation-rules/"+rule.ID.String())
	respondJSON(w, http.StatusCreated, rule)
}

// UpdateRule godoc
// @Summary Update allocation rule
// @Tags Allocations
// @Accept json
// @Produce json
// @Param id path string true "Rule ID" format(uuid)
// @Param request body domain.UpdateAllocationRuleRequest true "Rule data"
// @Success 200 {object} domain.AllocationRuleDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Percentage ceiling exceeded"
// @Security BearerAuth
// @Router /allocation-rules/{id} [put]
func (h *AllocationHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateAllocationRuleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rule, err := h.allocationService.UpdateRule(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update allocation rule")
		return
	}

	respondJSON(w, http.StatusOK, rule)
}

// DeleteRule godoc
// @Summary Delete allocation rule
// @Tags Allocations
// @Param id path string true "Rule ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /allocation-rules/{id} [delete]
func (h *AllocationHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.allocationService.DeleteRule(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete allocation rule")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Allocate godoc
// @Summary Allocate an amount across accounts
// @Description Split an amount across accounts per the active rules for the source type and record the resulting transactions
// @Tags Allocations
// @Accept json
// @Produce json
// @Param request body domain.AllocateRequest true "Amount and source type"
// @Success 201 {array} domain.TransactionDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /allocations [post]
func (h *AllocationHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req domain.AllocateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	transactions, err := h.allocationService.Allocate(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "allocate amount")
		return
	}

	respondJSON(w, http.StatusCreated, transactions)
}

// Preview godoc
// @Summary Preview an allocation
// @Description Compute the per-account split for an amount without recording anything
// @Tags Allocations
// @Accept json
// @Produce json
// @Param request body domain.AllocateRequest true "Amount and source type"
// @Success 200 {array} domain.AllocationPreviewDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /allocations/preview [post]
func (h *AllocationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req domain.AllocateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	preview, err := h.allocationService.Preview(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "preview allocation")
		return
	}

	respondJSON(w, http.StatusOK, preview)
}
