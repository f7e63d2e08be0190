package alerts

import (
	"github.com/packdash/backend-go/internal/config"
	"github.com/packdash/backend-go/internal/domain"
)

// Thresholds control when notifications are raised and how urgent they are.
type Thresholds struct {
	UpcomingWindowWeeks int
	InactiveWeeks       int
	InactiveHighWeeks   int
	OverdueHighWeeks    int
	OverdueMediumWeeks  int
	RecentOrderWeeks    int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		UpcomingWindowWeeks: 3,
		InactiveWeeks:       8,
		InactiveHighWeeks:   12,
		OverdueHighWeeks:    4,
		OverdueMediumWeeks:  2,
		RecentOrderWeeks:    4,
	}
}

// ThresholdsFromConfig applies configured overrides on top of the defaults.
func ThresholdsFromConfig(cfg config.AlertsConfig) Thresholds {
	t := DefaultThresholds()
	if cfg.UpcomingWindowWeeks > 0 {
		t.UpcomingWindowWeeks = cfg.UpcomingWindowWeeks
	}
	if cfg.InactiveWeeks > 0 {
		t.InactiveWeeks = cfg.InactiveWeeks
	}
	if cfg.InactiveHighWeeks > 0 {
		t.InactiveHighWeeks = cfg.InactiveHighWeeks
	}
	if cfg.OverdueHighWeeks > 0 {
		t.OverdueHighWeeks = cfg.OverdueHighWeeks
	}
	if cfg.OverdueMediumWeeks > 0 {
		t.OverdueMediumWeeks = cfg.OverdueMediumWeeks
	}
	if cfg.RecentOrderWeeks > 0 {
		t.RecentOrderWeeks = cfg.RecentOrderWeeks
	}
	return t
}

func (t Thresholds) overduePriority(weeksOverdue int) domain.Priority {
	switch {
	case weeksOverdue >= t.OverdueHighWeeks:
		return domain.PriorityHigh
	case weeksOverdue >= t.OverdueMediumWeeks:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func (t Thresholds) upcomingPriority(weeksUntil int) domain.Priority {
	if weeksUntil == 1 {
		return domain.PriorityHigh
	}
	return domain.PriorityMedium
}

func (t Thresholds) inactivePriority(weeksSinceLastOrder int) domain.Priority {
	if weeksSinceLastOrder >= t.InactiveHighWeeks {
		return domain.PriorityHigh
	}
	return domain.PriorityMedium
}
