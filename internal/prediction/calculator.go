package prediction

import (
	"github.com/packdash/backend-go/internal/domain"
)

// Calculator derives consumption rates and reorder predictions from a
// client's order history. It holds no state besides its parameters and is
// safe for concurrent use.
type Calculator struct {
	params Params
}

// NewCalculator creates a new prediction calculator
func NewCalculator(params Params) *Calculator {
	return &Calculator{params: params}
}

func (c *Calculator) Params() Params {
	return c.params
}

// ClientStats computes the aggregate statistics of one client. The input
// slice is never reordered.
func (c *Calculator) ClientStats(orders []domain.Order) domain.ClientStats {
	if len(orders) == 0 {
		return domain.ClientStats{}
	}

	cycle := float64(c.params.DefaultCycleWeeks)
	buffer := float64(c.params.SafetyBufferWeeks)

	// 1. Most recent order first
	newestFirst := sortedNewestFirst(orders)
	lastOrder := newestFirst[0]

	var (
		weeklyConsumption         float64
		monthlyConsumption        float64
		averageWeeksBetweenOrders float64
		nextOrderPrediction       *domain.WeekYear
	)

	if len(orders) == 1 {
		// 2. A single order cannot give a rate: assume the default cycle
		next := NormalizeWeek(lastOrder.WeekNumber+c.params.DefaultCycleWeeks, lastOrder.Year)
		nextOrderPrediction = &next

		weeklyConsumption = lastOrder.Total / cycle
		monthlyConsumption = weeklyConsumption * c.params.WeeksPerMonth
		averageWeeksBetweenOrders = cycle
	} else {
		// 3. Rate = quantity of every order but the latest / span first..latest
		chronological := reversed(newestFirst)
		history := chronological[:len(chronological)-1]

		var historyTotal float64
		for _, o := range history {
			historyTotal += o.Total
		}

		span := weekSpan(chronological)
		if span > 0 {
			weeklyConsumption = historyTotal / float64(span)
			monthlyConsumption = weeklyConsumption * c.params.WeeksPerMonth
			averageWeeksBetweenOrders = float64(span) / float64(len(orders)-1)

			// 4. Reorder point: weeks covered by the latest order minus the buffer
			if weeklyConsumption > 0 {
				weeksUntil := lastOrder.Total/weeklyConsumption - buffer
				next := NormalizeWeek(lastOrder.WeekNumber+roundWeeks(weeksUntil), lastOrder.Year)
				nextOrderPrediction = &next
			}
		}
	}

	var weeksUntilNextOrder, lastOrderDuration float64
	if weeklyConsumption > 0 {
		weeksUntilNextOrder = lastOrder.Total/weeklyConsumption - buffer
		lastOrderDuration = lastOrder.Total/weeklyConsumption - buffer
	}

	return domain.ClientStats{
		TotalOrders:               len(orders),
		AverageWeeksBetweenOrders: roundFloat(averageWeeksBetweenOrders, 1),
		WeeklyConsumption:         roundFloat(weeklyConsumption, 2),
		MonthlyConsumption:        roundFloat(monthlyConsumption, 2),
		LastOrderDuration:         roundFloat(lastOrderDuration, 1),
		NextOrderPrediction:       nextOrderPrediction,
		LastOrder:                 &domain.WeekYear{Week: lastOrder.WeekNumber, Year: lastOrder.Year},
		WeeksUntilNextOrder:       roundFloat(weeksUntilNextOrder, 2),
	}
}
