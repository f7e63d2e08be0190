package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/packdash/backend-go/internal/config"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/prediction"
	"github.com/packdash/backend-go/internal/service"
	"github.com/urfave/cli/v2"
)

func runPredict(c *cli.Context, cfg *config.Config) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	insight, err := newServices(db, cfg).insights.ClientInsight(c.Context, c.String("client"), now)
	if err != nil {
		return err
	}

	printInsight(c.App.Writer, insight)
	return nil
}

func printInsight(w io.Writer, insight *domain.ClientInsight) {
	s := insight.Stats
	fmt.Fprintf(w, "%s (%s)\n", insight.Client.DisplayName(), insight.Client.ID)
	fmt.Fprintf(w, "  orders:              %d\n", s.TotalOrders)
	fmt.Fprintf(w, "  weekly consumption:  %s\n", prediction.FormatQuantity(s.WeeklyConsumption))
	fmt.Fprintf(w, "  monthly consumption: %s\n", prediction.FormatQuantity(s.MonthlyConsumption))
	fmt.Fprintf(w, "  weeks between:       %.1f\n", s.AverageWeeksBetweenOrders)
	if s.LastOrder != nil {
		fmt.Fprintf(w, "  last order:          %s\n", prediction.FormatWeek(s.LastOrder.Week, s.LastOrder.Year))
	}
	if s.NextOrderPrediction != nil {
		label := ""
		if insight.Status != nil {
			label = " (" + insight.Status.Label + ")"
		}
		fmt.Fprintf(w, "  next order:          %s%s\n",
			prediction.FormatWeek(s.NextOrderPrediction.Week, s.NextOrderPrediction.Year), label)
	}

	if len(insight.Products) == 0 {
		return
	}
	fmt.Fprintln(w, "  products:")
	for _, p := range insight.Products {
		fmt.Fprintf(w, "    %-22s %-18s %s/week, next %s\n",
			p.ProductName, p.ProductCategory,
			prediction.FormatQuantity(p.WeeklyConsumption),
			prediction.FormatWeek(p.NextOrderPrediction.Week, p.NextOrderPrediction.Year))
	}
	if np := insight.NextProduct; np != nil {
		fmt.Fprintf(w, "  next product: %s in %d week(s)\n", np.ProductName, np.WeeksUntilNextOrder)
	}
}

func runNotifications(c *cli.Context, cfg *config.Config) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}

	var filter service.NotificationFilter
	if raw := strings.TrimSpace(c.String("type")); raw != "" {
		t, ok := domain.ParseNotificationType(raw)
		if !ok {
			return fmt.Errorf("unknown notification type %q", raw)
		}
		filter.Type = t
	}

	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	feed, err := newServices(db, cfg).insights.Notifications(c.Context, now, filter)
	if err != nil {
		return err
	}

	printNotifications(c.App.Writer, feed.Notifications)
	return nil
}

func printNotifications(w io.Writer, notifications []domain.Notification) {
	if len(notifications) == 0 {
		fmt.Fprintln(w, "no notifications")
		return
	}
	for _, n := range notifications {
		fmt.Fprintf(w, "[%-6s] %-20s %s\n", n.Priority, n.Title, n.Message)
	}
}
