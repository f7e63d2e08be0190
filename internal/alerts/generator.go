package alerts

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/prediction"
)

// ClientOrders pairs a client with its order history.
type ClientOrders struct {
	Client domain.Client
	Orders []domain.Order
}

// Snapshot holds what the engine derived for one client.
type Snapshot struct {
	Client      domain.Client
	Orders      []domain.Order
	Stats       domain.ClientStats
	Predictions []domain.ProductPrediction
}

// Generator turns client snapshots into notifications and watch lists.
// Every method is a pure function of its arguments.
type Generator struct {
	calc       *prediction.Calculator
	thresholds Thresholds
}

func NewGenerator(calc *prediction.Calculator, thresholds Thresholds) *Generator {
	return &Generator{calc: calc, thresholds: thresholds}
}

func (g *Generator) Thresholds() Thresholds {
	return g.thresholds
}

// GroupOrders assigns orders to their clients, keeping the client order.
// Orders of unknown clients are dropped.
func GroupOrders(clients []domain.Client, orders []domain.Order) []ClientOrders {
	byClient := make(map[string][]domain.Order, len(clients))
	for _, o := range orders {
		byClient[o.ClientID] = append(byClient[o.ClientID], o)
	}

	grouped := make([]ClientOrders, 0, len(clients))
	for _, c := range clients {
		grouped = append(grouped, ClientOrders{Client: c, Orders: byClient[c.ID]})
	}
	return grouped
}

// Snapshot runs the aggregate and per-product calculations for a client.
func (g *Generator) Snapshot(co ClientOrders) Snapshot {
	return Snapshot{
		Client:      co.Client,
		Orders:      co.Orders,
		Stats:       g.calc.ClientStats(co.Orders),
		Predictions: g.calc.ProductPredictions(co.Orders),
	}
}

// Notifications raises, per client, overdue products, products expected
// within the upcoming window and client inactivity.
func (g *Generator) Notifications(snapshots []Snapshot, now time.Time) []domain.Notification {
	current := prediction.CurrentWeek(now)
	currentEra := prediction.WeekOfEra(current.Week, current.Year)

	notifications := make([]domain.Notification, 0)
	for _, s := range snapshots {
		// Notifications address the contact, not the company.
		name := s.Client.Nom
		actionURL := "/clients/" + s.Client.ID

		// 1. Overdue products
		for _, p := range s.Predictions {
			weeksOverdue := currentEra - prediction.WeekOfEra(p.NextOrderPrediction.Week, p.NextOrderPrediction.Year)
			if weeksOverdue <= 0 {
				continue
			}
			notifications = append(notifications, domain.Notification{
				ID:          fmt.Sprintf("overdue-%s-%s", s.Client.ID, p.ProductName),
				Type:        domain.NotificationOverdue,
				Title:       domain.NotificationOverdue.Title(),
				Message:     fmt.Sprintf("%s - %s is overdue by %s", name, p.ProductName, weeksText(weeksOverdue)),
				ClientID:    s.Client.ID,
				ClientName:  name,
				ProductName: p.ProductName,
				Priority:    g.thresholds.overduePriority(weeksOverdue),
				CreatedAt:   now,
				ActionURL:   actionURL,
			})
		}

		// 2. Products expected within the upcoming window
		for _, p := range s.Predictions {
			weeksUntil := prediction.WeekOfEra(p.NextOrderPrediction.Week, p.NextOrderPrediction.Year) - currentEra
			if weeksUntil <= 0 || weeksUntil > g.thresholds.UpcomingWindowWeeks {
				continue
			}
			notifications = append(notifications, domain.Notification{
				ID:          fmt.Sprintf("upcoming-%s-%s", s.Client.ID, p.ProductName),
				Type:        domain.NotificationUpcoming,
				Title:       domain.NotificationUpcoming.Title(),
				Message:     fmt.Sprintf("%s - %s expected in %s", name, p.ProductName, weeksText(weeksUntil)),
				ClientID:    s.Client.ID,
				ClientName:  name,
				ProductName: p.ProductName,
				Priority:    g.thresholds.upcomingPriority(weeksUntil),
				CreatedAt:   now,
				ActionURL:   actionURL,
			})
		}

		// 3. Inactive client
		if s.Stats.LastOrder != nil {
			weeksSince := currentEra - prediction.WeekOfEra(s.Stats.LastOrder.Week, s.Stats.LastOrder.Year)
			if weeksSince >= g.thresholds.InactiveWeeks {
				notifications = append(notifications, domain.Notification{
					ID:         "inactive-" + s.Client.ID,
					Type:       domain.NotificationInactive,
					Title:      domain.NotificationInactive.Title(),
					Message:    fmt.Sprintf("%s has not ordered for %d weeks", name, weeksSince),
					ClientID:   s.Client.ID,
					ClientName: name,
					Priority:   g.thresholds.inactivePriority(weeksSince),
					CreatedAt:  now,
					ActionURL:  actionURL,
				})
			}
		}
	}

	return notifications
}

// OverdueProducts lists, per client, the products whose predicted order
// week has passed, most overdue first. Clients are sorted by name.
func (g *Generator) OverdueProducts(snapshots []Snapshot, now time.Time) []domain.ClientProducts {
	current := prediction.CurrentWeek(now)
	currentEra := prediction.WeekOfEra(current.Week, current.Year)

	result := make([]domain.ClientProducts, 0)
	for _, s := range snapshots {
		var products []domain.ProductAlert
		for _, p := range s.Predictions {
			weeksOverdue := currentEra - prediction.WeekOfEra(p.NextOrderPrediction.Week, p.NextOrderPrediction.Year)
			if weeksOverdue <= 0 {
				continue
			}
			products = append(products, domain.ProductAlert{
				ProductName:         p.ProductName,
				ProductCategory:     p.ProductCategory,
				NextOrderPrediction: p.NextOrderPrediction,
				Weeks:               weeksOverdue,
				Priority:            g.thresholds.overduePriority(weeksOverdue),
			})
		}
		if len(products) == 0 {
			continue
		}
		sort.SliceStable(products, func(i, j int) bool { return products[i].Weeks > products[j].Weeks })
		result = append(result, domain.ClientProducts{Client: s.Client, Products: products})
	}

	sortByClientName(result)
	return result
}

// UpcomingProducts lists, per client, the products expected this week or
// later, soonest first. Clients are sorted by name.
func (g *Generator) UpcomingProducts(snapshots []Snapshot, now time.Time) []domain.ClientProducts {
	current := prediction.CurrentWeek(now)
	currentEra := prediction.WeekOfEra(current.Week, current.Year)
	dueSoon := g.calc.Params().DueSoonWeeks

	result := make([]domain.ClientProducts, 0)
	for _, s := range snapshots {
		var products []domain.ProductAlert
		for _, p := range s.Predictions {
			weeksUntil := prediction.WeekOfEra(p.NextOrderPrediction.Week, p.NextOrderPrediction.Year) - currentEra
			if weeksUntil < 0 {
				continue
			}
			priority := domain.PriorityLow
			switch {
			case weeksUntil == 0:
				priority = domain.PriorityHigh
			case weeksUntil <= dueSoon:
				priority = domain.PriorityMedium
			}
			products = append(products, domain.ProductAlert{
				ProductName:         p.ProductName,
				ProductCategory:     p.ProductCategory,
				NextOrderPrediction: p.NextOrderPrediction,
				Weeks:               weeksUntil,
				Priority:            priority,
			})
		}
		if len(products) == 0 {
			continue
		}
		sort.SliceStable(products, func(i, j int) bool { return products[i].Weeks < products[j].Weeks })
		result = append(result, domain.ClientProducts{Client: s.Client, Products: products})
	}

	sortByClientName(result)
	return result
}

// InactiveClients lists clients whose last order is at least the
// inactivity threshold old, longest silence first.
func (g *Generator) InactiveClients(snapshots []Snapshot, now time.Time) []domain.InactiveClient {
	current := prediction.CurrentWeek(now)
	currentEra := prediction.WeekOfEra(current.Week, current.Year)

	result := make([]domain.InactiveClient, 0)
	for _, s := range snapshots {
		if s.Stats.LastOrder == nil {
			continue
		}
		weeksSince := currentEra - prediction.WeekOfEra(s.Stats.LastOrder.Week, s.Stats.LastOrder.Year)
		if weeksSince < g.thresholds.InactiveWeeks {
			continue
		}
		result = append(result, domain.InactiveClient{
			Client:              s.Client,
			LastOrder:           s.Stats.LastOrder,
			WeeksSinceLastOrder: weeksSince,
			Priority:            g.thresholds.inactivePriority(weeksSince),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].WeeksSinceLastOrder > result[j].WeeksSinceLastOrder
	})
	return result
}

// Outlook classifies every client with an aggregate prediction and splits
// them into overdue and upcoming, both sorted by weeks until the order.
func (g *Generator) Outlook(snapshots []Snapshot, now time.Time) (overdue, upcoming []domain.ClientOutlook) {
	overdue = make([]domain.ClientOutlook, 0)
	upcoming = make([]domain.ClientOutlook, 0)

	for _, s := range snapshots {
		if s.Stats.NextOrderPrediction == nil {
			continue
		}
		outlook := domain.ClientOutlook{
			Client:              s.Client,
			NextOrderPrediction: *s.Stats.NextOrderPrediction,
			Status:              g.calc.Classify(*s.Stats.NextOrderPrediction, now),
			LastOrder:           s.Stats.LastOrder,
			WeeklyConsumption:   s.Stats.WeeklyConsumption,
		}
		if outlook.Status.WeeksUntil < 0 {
			overdue = append(overdue, outlook)
		} else {
			upcoming = append(upcoming, outlook)
		}
	}

	byWeeksUntil := func(list []domain.ClientOutlook) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Status.WeeksUntil < list[j].Status.WeeksUntil
		})
	}
	byWeeksUntil(overdue)
	byWeeksUntil(upcoming)

	return overdue, upcoming
}

// RecentOrders returns the orders placed within the recent window.
func (g *Generator) RecentOrders(orders []domain.Order, now time.Time) []domain.Order {
	current := prediction.CurrentWeek(now)
	currentEra := prediction.WeekOfEra(current.Week, current.Year)

	recent := make([]domain.Order, 0)
	for _, o := range orders {
		if currentEra-prediction.WeekOfEra(o.WeekNumber, o.Year) <= g.thresholds.RecentOrderWeeks {
			recent = append(recent, o)
		}
	}
	return recent
}

func sortByClientName(list []domain.ClientProducts) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Client.DisplayName()) < strings.ToLower(list[j].Client.DisplayName())
	})
}

func weeksText(n int) string {
	if n == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", n)
}
