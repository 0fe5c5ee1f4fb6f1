package handler

import (
	"net/http"
	"time"

	"github.com/inkhaus/backoffice-api/internal/service"
	"go.uber.org/zap"
)

// AdminHandler exposes manual triggers for the background jobs and the
// one-off legacy POS imports.
type AdminHandler struct {
	recurringService *service.RecurringExpenseService
	importService    *service.LegacyImportService
	logger           *zap.Logger
}

func NewAdminHandler(recurringService *service.RecurringExpenseService, importService *service.LegacyImportService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		recurringService: recurringService,
		importService:    importService,
		logger:           logger,
	}
}

// RunRecurringExpenses godoc
// @Summary Run the recurring expense job now
// @Description Materialize due expense occurrences and send reminders, without waiting for the scheduled run
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.BatchReport
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /admin/jobs/recurring-expenses/run [post]
func (h *AdminHandler) RunRecurringExpenses(w http.ResponseWriter, r *http.Request) {
	report, err := h.recurringService.Run(r.Context(), time.Now())
	if err != nil {
		respondServiceError(w, h.logger, err, "run recurring expense job")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// ImportLegacyClients godoc
// @Summary Import clients from the legacy POS
// @Tags Admin
// @Produce json
// @Param since query string false "Only rows modified on or after this date (YYYY-MM-DD)"
// @Success 200 {object} domain.BatchReport
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 503 {object} domain.ErrorResponse "Legacy import not configured"
// @Security BearerAuth
// @Router /admin/legacy/import/clients [post]
func (h *AdminHandler) ImportLegacyClients(w http.ResponseWriter, r *http.Request) {
	since, ok := h.importWindow(w, r)
	if !ok {
		return
	}

	report, err := h.importService.ImportClients(r.Context(), since)
	if err != nil {
		respondServiceError(w, h.logger, err, "import legacy clients")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// ImportLegacyOrders godoc
// @Summary Import orders from the legacy POS
// @Tags Admin
// @Produce json
// @Param since query string false "Only rows modified on or after this date (YYYY-MM-DD)"
// @Success 200 {object} domain.BatchReport
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 503 {object} domain.ErrorResponse "Legacy import not configured"
// @Security BearerAuth
// @Router /admin/legacy/import/orders [post]
func (h *AdminHandler) ImportLegacyOrders(w http.ResponseWriter, r *http.Request) {
	since, ok := h.importWindow(w, r)
	if !ok {
		return
	}

	report, err := h.importService.ImportOrders(r.Context(), since)
	if err != nil {
		respondServiceError(w, h.logger, err, "import legacy orders")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// importWindow checks the import is configured and parses the optional
// since date. A zero time means import everything.
func (h *AdminHandler) importWindow(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	if h.importService == nil || !h.importService.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "Legacy POS import is not configured")
		return time.Time{}, false
	}

	raw := r.URL.Query().Get("since")
	if raw == "" {
		return time.Time{}, true
	}
	since, err := time.Parse("2006-01-02", raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid since date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return since, true
}
