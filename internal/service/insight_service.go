package service

import (
	"context"
	"time"

	"github.com/packdash/backend-go/internal/alerts"
	"github.com/packdash/backend-go/internal/cache"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/prediction"
	"github.com/packdash/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultInsightWorkers = 8

// NotificationFilter narrows the notification feed.
type NotificationFilter struct {
	Type         domain.NotificationType
	UnreadOnly   bool
	HighPriority bool
}

// InsightService computes predictions, watch lists and notifications from
// the stored clients and orders.
type InsightService struct {
	clients   repository.ClientRepository
	orders    repository.OrderRepository
	calc      *prediction.Calculator
	generator *alerts.Generator
	inbox     *alerts.Inbox
	cache     cache.InsightCache
	workers   int
}

func NewInsightService(
	clients repository.ClientRepository,
	orders repository.OrderRepository,
	calc *prediction.Calculator,
	thresholds alerts.Thresholds,
	inbox *alerts.Inbox,
	cacheImpl cache.InsightCache,
	workers int,
) *InsightService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopInsightCache()
	}
	if inbox == nil {
		inbox = alerts.NewInbox()
	}
	if workers <= 0 {
		workers = defaultInsightWorkers
	}
	return &InsightService{
		clients:   clients,
		orders:    orders,
		calc:      calc,
		generator: alerts.NewGenerator(calc, thresholds),
		inbox:     inbox,
		cache:     cacheImpl,
		workers:   workers,
	}
}

// ClientInsight returns every prediction of a single client.
func (s *InsightService) ClientInsight(ctx context.Context, clientID string, now time.Time) (*domain.ClientInsight, error) {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	insight := s.insightOf(*client, orders, now)
	return &insight, nil
}

// AllInsights returns the insight of every client, in client list order.
func (s *InsightService) AllInsights(ctx context.Context, now time.Time) ([]domain.ClientInsight, error) {
	grouped, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	insights := make([]domain.ClientInsight, len(grouped))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, co := range grouped {
		g.Go(func() error {
			insights[i] = s.insightOf(co.Client, co.Orders, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return insights, nil
}

// Dashboard assembles the landing page: client outlook, product watch
// lists, recent orders and the unread notification count.
func (s *InsightService) Dashboard(ctx context.Context, now time.Time) (*domain.Dashboard, error) {
	key := cache.InsightKey("dashboard", dayKey(now))

	var dashboard domain.Dashboard
	if ok, err := s.cache.Get(ctx, key, &dashboard); err == nil && ok {
		return s.withUnread(ctx, &dashboard, now)
	} else if err != nil {
		log.Warn().Err(err).Msg("insights: cache get dashboard failed")
	}

	snapshots, orders, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}

	overdueClients, upcomingClients := s.generator.Outlook(snapshots, now)
	dashboard = domain.Dashboard{
		CurrentWeek:      prediction.CurrentWeek(now),
		TotalClients:     len(snapshots),
		TotalOrders:      len(orders),
		OverdueClients:   overdueClients,
		UpcomingClients:  upcomingClients,
		OverdueProducts:  s.generator.OverdueProducts(snapshots, now),
		UpcomingProducts: s.generator.UpcomingProducts(snapshots, now),
		RecentOrders:     s.generator.RecentOrders(orders, now),
	}

	if err := s.cache.Set(ctx, key, dashboard); err != nil {
		log.Warn().Err(err).Msg("insights: cache set dashboard failed")
	}

	return s.withUnread(ctx, &dashboard, now)
}

func (s *InsightService) OverdueProducts(ctx context.Context, now time.Time) ([]domain.ClientProducts, error) {
	snapshots, _, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}
	return s.generator.OverdueProducts(snapshots, now), nil
}

func (s *InsightService) UpcomingProducts(ctx context.Context, now time.Time) ([]domain.ClientProducts, error) {
	snapshots, _, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}
	return s.generator.UpcomingProducts(snapshots, now), nil
}

func (s *InsightService) InactiveClients(ctx context.Context, now time.Time) ([]domain.InactiveClient, error) {
	snapshots, _, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}
	return s.generator.InactiveClients(snapshots, now), nil
}

// Notifications returns the current feed with read and dismissed state
// applied. UnreadCount covers the whole feed, before filtering.
func (s *InsightService) Notifications(ctx context.Context, now time.Time, filter NotificationFilter) (*domain.NotificationFeed, error) {
	generated, err := s.generate(ctx, now)
	if err != nil {
		return nil, err
	}

	feed := s.inbox.Apply(generated)
	unread := alerts.UnreadCount(feed)

	if filter.Type != "" {
		feed = alerts.ByType(feed, filter.Type)
	}
	if filter.HighPriority {
		feed = alerts.HighPriorityUnread(feed)
	}
	if filter.UnreadOnly {
		unreadOnly := make([]domain.Notification, 0, len(feed))
		for _, n := range feed {
			if !n.Read {
				unreadOnly = append(unreadOnly, n)
			}
		}
		feed = unreadOnly
	}

	return &domain.NotificationFeed{Notifications: feed, UnreadCount: unread}, nil
}

func (s *InsightService) MarkAsRead(id string) {
	s.inbox.MarkAsRead(id)
}

func (s *InsightService) DeleteNotification(id string) {
	s.inbox.Delete(id)
}

// MarkAllAsRead flags every notification currently raised.
func (s *InsightService) MarkAllAsRead(ctx context.Context, now time.Time) error {
	generated, err := s.generate(ctx, now)
	if err != nil {
		return err
	}
	s.inbox.MarkAllAsRead(notificationIDs(generated))
	return nil
}

// ClearNotifications dismisses every notification currently raised.
func (s *InsightService) ClearNotifications(ctx context.Context, now time.Time) error {
	generated, err := s.generate(ctx, now)
	if err != nil {
		return err
	}
	s.inbox.Clear(notificationIDs(generated))
	return nil
}

func (s *InsightService) withUnread(ctx context.Context, d *domain.Dashboard, now time.Time) (*domain.Dashboard, error) {
	generated, err := s.generate(ctx, now)
	if err != nil {
		return nil, err
	}
	d.UnreadAlerts = alerts.UnreadCount(s.inbox.Apply(generated))
	return d, nil
}

func (s *InsightService) generate(ctx context.Context, now time.Time) ([]domain.Notification, error) {
	key := cache.InsightKey("notifications", dayKey(now))

	var generated []domain.Notification
	if ok, err := s.cache.Get(ctx, key, &generated); err == nil && ok {
		return generated, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("insights: cache get notifications failed")
	}

	snapshots, _, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}
	generated = s.generator.Notifications(snapshots, now)

	if err := s.cache.Set(ctx, key, generated); err != nil {
		log.Warn().Err(err).Msg("insights: cache set notifications failed")
	}
	return generated, nil
}

// load fetches clients and orders concurrently and groups them.
func (s *InsightService) load(ctx context.Context) ([]alerts.ClientOrders, []domain.Order, error) {
	var (
		clients []domain.Client
		orders  []domain.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = s.clients.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.orders.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return alerts.GroupOrders(clients, orders), orders, nil
}

// snapshots computes the per-client figures on a bounded worker pool.
func (s *InsightService) snapshots(ctx context.Context) ([]alerts.Snapshot, []domain.Order, error) {
	grouped, orders, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	snapshots := make([]alerts.Snapshot, len(grouped))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, co := range grouped {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snapshots[i] = s.generator.Snapshot(co)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	log.Debug().Int("clients", len(snapshots)).Int("orders", len(orders)).Msg("insights: snapshots computed")
	return snapshots, orders, nil
}

func (s *InsightService) insightOf(client domain.Client, orders []domain.Order, now time.Time) domain.ClientInsight {
	stats := s.calc.ClientStats(orders)

	insight := domain.ClientInsight{
		Client:      client,
		Stats:       stats,
		Products:    s.calc.ProductPredictions(orders),
		NextProduct: s.calc.NextProductPrediction(orders, now),
	}
	if stats.NextOrderPrediction != nil {
		status := s.calc.Classify(*stats.NextOrderPrediction, now)
		insight.Status = &status
	}
	return insight
}

func notificationIDs(notifications []domain.Notification) []string {
	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	return ids
}

func dayKey(now time.Time) string {
	return now.Format("2006-01-02")
}
