package http

import (
	"net/http"
	"strconv"

	"golang-market-insight/internal/market/dto"
	"golang-market-insight/internal/market/service"
	"golang-market-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests for notifications and
// preferences.
type NotificationHandler struct {
	notifSvc service.NotificationService
	logger   *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifSvc service.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc, logger: log}
}

// RegisterRoutes registers the notification routes to the Echo group.
func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetNotifications)
	g.POST("", h.PostNotification)
}

// GetNotifications returns a user's preferences and recent history.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID := c.QueryParam("user_id")
	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid limit"})
		}
		limit = parsed
	}

	resp, err := h.notifSvc.GetNotifications(c.Request().Context(), userID, limit)
	if err != nil {
		h.logger.Error("Failed to get notifications", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// PostNotification dispatches an action-typed notification request.
func (h *NotificationHandler) PostNotification(c echo.Context) error {
	var req dto.NotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	status, err := h.notifSvc.HandleAction(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": status})
}
