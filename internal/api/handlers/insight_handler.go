package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/service"
)

type InsightHandler struct {
	insights InsightService
	clock    service.Clock
}

func NewInsightHandler(insights InsightService, clock service.Clock) *InsightHandler {
	if clock == nil {
		clock = service.SystemClock
	}
	return &InsightHandler{insights: insights, clock: clock}
}

func (h *InsightHandler) Dashboard(c *gin.Context) {
	now, ok := requestTime(c, h.clock)
	if !ok {
		return
	}

	dashboard, err := h.insights.Dashboard(c.Request.Context(), now)
	if err != nil {
		respondError(c, "failed to fetch dashboard", err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *InsightHandler) Overdue(c *gin.Context) {
	now, ok := requestTime(c, h.clock)
	if !ok {
		return
	}

	products, err := h.insights.OverdueProducts(c.Request.Context(), now)
	if err != nil {
		respondError(c, "failed to fetch overdue products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *InsightHandler) Upcoming(c *gin.Context) {
	now, ok := requestTime(c, h.clock)
	if !ok {
		return
	}

	products, err := h.insights.UpcomingProducts(c.Request.Context(), now)
	if err != nil {
		respondError(c, "failed to fetch upcoming products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *InsightHandler) Inactive(c *gin.Context) {
	now, ok := requestTime(c, h.clock)
	if !ok {
		return
	}

	clients, err := h.insights.InactiveClients(c.Request.Context(), now)
	if err != nil {
		respondError(c, "failed to fetch inactive clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// Notifications supports ?type=overdue|upcoming|inactive, ?unread=true and
// ?priority=high.
func (h *InsightHandler) Notifications(c *gin.Context) {
	now, ok := requestTime(c, h.clock)
	if !ok {
		return
	}

	var filter service.NotificationFilter
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		t, valid := domain.ParseNotificationType(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification type", "details": raw})
			return
		}
		filter.Type = t
	}
	filter.UnreadOnly = c.Query("unread") == "true"
	filter.HighPriority = strings.EqualFold(c.Query("priority"), string(domain.PriorityHigh))

	feed, err := h.insights.Notifications(c.Request.Context(), now, filter)
	if err != nil {
		respondError(c, "failed to fetch notifications", err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *InsightHandler) MarkAllRead(c *gin.Context) {
	now, ok := requestTime(c, h.clock)
	if !ok {
		return
	}

	if err := h.insights.MarkAllAsRead(c.Request.Context(), now); err != nil {
		respondError(c, "failed to mark notifications as read", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InsightHandler) MarkRead(c *gin.Context) {
	h.insights.MarkAsRead(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *InsightHandler) DeleteNotification(c *gin.Context) {
	h.insights.DeleteNotification(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *InsightHandler) ClearNotifications(c *gin.Context) {
	now, ok := requestTime(c, h.clock)
	if !ok {
		return
	}

	if err := h.insights.ClearNotifications(c.Request.Context(), now); err != nil {
		respondError(c, "failed to clear notifications", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Catalog)
}
