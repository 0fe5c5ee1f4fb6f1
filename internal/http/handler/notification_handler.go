package handler

import (
	"net/http"
	"strconv"

	"github.com/inkhaus/backoffice-api/internal/auth"
	"github.com/inkhaus/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List godoc
// @Summary List notifications
// @Description Get the authenticated user's notifications, newest first
// @Tags Notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param unreadOnly query bool false "Only unread notifications"
// @Param type query string false "Filter by notification type"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.NotificationDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())
	page, pageSize := pageParams(r)
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unreadOnly"))
	notificationType := r.URL.Query().Get("type")

	result, err := h.notificationService.List(r.Context(), userCtx.UserID, page, pageSize, unreadOnly, notificationType)
	if err != nil {
		respondServiceError(w, h.logger, err, "list notifications")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CountUnread godoc
// @Summary Count unread notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) CountUnread(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	count, err := h.notificationService.CountUnread(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "count unread notifications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

// MarkAsRead godoc
// @Summary Mark notification as read
// @Tags Notifications
// @Param id path string true "Notification ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), userCtx.UserID, id); err != nil {
		respondServiceError(w, h.logger, err, "mark notification as read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Tags Notifications
// @Success 204 "No Content"
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	if err := h.notificationService.MarkAllAsRead(r.Context(), userCtx.UserID); err != nil {
		respondServiceError(w, h.logger, err, "mark notifications as read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
