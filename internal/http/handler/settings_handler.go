package handler

import (
	"net/http"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Get godoc
// @Summary Get profit settings
// @Description Get the shop-wide profit and labor percentages with their overrides
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.ProfitSettingsDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /settings/profit [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "get profit settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Update godoc
// @Summary Update profit settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body domain.UpdateProfitSettingsRequest true "Settings data"
// @Success 200 {object} domain.ProfitSettingsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /settings/profit [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfitSettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	settings, err := h.settingsService.Update(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update profit settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// AddOverride godoc
// @Summary Add profit override
// @Description Add a per-item or per-category override of the shop percentages
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body domain.CreateProfitOverrideRequest true "Override data"
// @Success 201 {object} domain.ProfitOverrideDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /settings/profit/overrides [post]
func (h *SettingsHandler) AddOverride(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProfitOverrideRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	override, err := h.settingsService.AddOverride(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add profit override")
		return
	}

	respondJSON(w, http.StatusCreated, override)
}

// UpdateOverride godoc
// @Summary Update profit override
// @Tags Settings
// @Accept json
// @Produce json
// @Param id path string true "Override ID" format(uuid)
// @Param request body domain.CreateProfitOverrideRequest true "Override data"
// @Success 200 {object} domain.ProfitOverrideDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /settings/profit/overrides/{id} [put]
func (h *SettingsHandler) UpdateOverride(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.CreateProfitOverrideRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	override, err := h.settingsService.UpdateOverride(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update profit override")
		return
	}

	respondJSON(w, http.StatusOK, override)
}

// DeleteOverride godoc
// @Summary Delete profit override
// @Tags Settings
// @Param id path string true "Override ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /settings/profit/overrides/{id} [delete]
func (h *SettingsHandler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.settingsService.DeleteOverride(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete profit override")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
