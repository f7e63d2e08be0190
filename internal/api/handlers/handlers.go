package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/service"
	"github.com/rs/zerolog/log"
)

type ClientService interface {
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, input domain.Client) (*domain.Client, error)
	Update(ctx context.Context, id string, input domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}

type OrderService interface {
	List(ctx context.Context, clientID string) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, input domain.Order) (*domain.Order, error)
	Update(ctx context.Context, id string, input domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type InsightService interface {
	ClientInsight(ctx context.Context, clientID string, now time.Time) (*domain.ClientInsight, error)
	Dashboard(ctx context.Context, now time.Time) (*domain.Dashboard, error)
	OverdueProducts(ctx context.Context, now time.Time) ([]domain.ClientProducts, error)
	UpcomingProducts(ctx context.Context, now time.Time) ([]domain.ClientProducts, error)
	InactiveClients(ctx context.Context, now time.Time) ([]domain.InactiveClient, error)
	Notifications(ctx context.Context, now time.Time, filter service.NotificationFilter) (*domain.NotificationFeed, error)
	MarkAsRead(id string)
	DeleteNotification(id string)
	MarkAllAsRead(ctx context.Context, now time.Time) error
	ClearNotifications(ctx context.Context, now time.Time) error
}

const dateLayout = "2006-01-02"

// requestTime returns the clock time, or the day given by ?now=YYYY-MM-DD.
func requestTime(c *gin.Context, clock service.Clock) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("now"))
	if raw == "" {
		return clock(), true
	}

	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid now parameter", "details": "expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// respondError maps domain errors to status codes.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	}

	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}
