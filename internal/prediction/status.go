package prediction

import (
	"fmt"
	"time"

	"github.com/packdash/backend-go/internal/domain"
)

// Classify buckets target relative to the current week of now into
// overdue, due soon or upcoming.
func (c *Calculator) Classify(target domain.WeekYear, now time.Time) domain.WeekStatus {
	return classifyWeeksUntil(WeeksUntil(target, now), c.params.DueSoonWeeks)
}

func classifyWeeksUntil(weeksUntil, dueSoonWeeks int) domain.WeekStatus {
	switch {
	case weeksUntil < 0:
		return domain.WeekStatus{
			Kind:       domain.StatusOverdue,
			Label:      fmt.Sprintf("overdue by %s", pluralWeeks(-weeksUntil)),
			WeeksUntil: weeksUntil,
		}
	case weeksUntil <= dueSoonWeeks:
		label := "this week"
		if weeksUntil > 0 {
			label = "in " + pluralWeeks(weeksUntil)
		}
		return domain.WeekStatus{Kind: domain.StatusDueSoon, Label: label, WeeksUntil: weeksUntil}
	default:
		return domain.WeekStatus{
			Kind:       domain.StatusUpcoming,
			Label:      "in " + pluralWeeks(weeksUntil),
			WeeksUntil: weeksUntil,
		}
	}
}

func pluralWeeks(n int) string {
	if n == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", n)
}
