package prediction

import (
	"sort"
	"time"

	"github.com/packdash/backend-go/internal/domain"
)

// productLine is the most recent positive-quantity line of a product.
type productLine struct {
	WeekNumber int
	Year       int
	Quantity   float64
}

// ProductPredictions forecasts the next order of every product the client
// has ordered with a positive quantity. Each product runs its own reorder
// cycle. Predictions come out in first-seen order of the product names.
func (c *Calculator) ProductPredictions(orders []domain.Order) []domain.ProductPrediction {
	predictions := make([]domain.ProductPrediction, 0)
	if len(orders) == 0 {
		return predictions
	}

	names, categories := collectProducts(orders)
	newestFirst := sortedNewestFirst(orders)
	oldestFirst := sortedOldestFirst(orders)

	cycle := float64(c.params.DefaultCycleWeeks)
	buffer := float64(c.params.SafetyBufferWeeks)

	for _, name := range names {
		line, ok := lastLineFor(newestFirst, name)
		if !ok {
			continue
		}

		weeklyConsumption := 0.0
		weeksUntilNextOrder := cycle

		if len(orders) == 1 {
			weeklyConsumption = line.Quantity / cycle
		} else {
			weeklyConsumption = productWeeklyConsumption(oldestFirst, name)
			if weeklyConsumption > 0 {
				weeksUntilNextOrder = line.Quantity/weeklyConsumption - buffer
			}
		}

		predictions = append(predictions, domain.ProductPrediction{
			ProductName:         name,
			ProductCategory:     categories[name],
			NextOrderPrediction: NormalizeWeek(line.WeekNumber+roundWeeks(weeksUntilNextOrder), line.Year),
			WeeklyConsumption:   roundFloat(weeklyConsumption, 2),
			WeeksUntilNextOrder: roundFloat(weeksUntilNextOrder, 2),
		})
	}

	return predictions
}

// NextProductPrediction returns the product whose predicted order is the
// closest to now, or nil when no product can be predicted.
func (c *Calculator) NextProductPrediction(orders []domain.Order, now time.Time) *domain.NextProductPrediction {
	predictions := c.ProductPredictions(orders)
	if len(predictions) == 0 {
		return nil
	}

	current := eraOf(CurrentWeek(now))
	sort.SliceStable(predictions, func(i, j int) bool {
		return eraOf(predictions[i].NextOrderPrediction) < eraOf(predictions[j].NextOrderPrediction)
	})

	closest := predictions[0]
	return &domain.NextProductPrediction{
		ProductName:         closest.ProductName,
		ProductCategory:     closest.ProductCategory,
		NextOrderPrediction: closest.NextOrderPrediction,
		WeeksUntilNextOrder: eraOf(closest.NextOrderPrediction) - current,
	}
}

// collectProducts lists the distinct product names with a positive quantity
// in first-seen order. A name's category is taken from its last occurrence.
func collectProducts(orders []domain.Order) ([]string, map[string]string) {
	var names []string
	categories := make(map[string]string)

	for _, o := range orders {
		for _, p := range o.Products {
			if p.Quantity <= 0 {
				continue
			}
			if _, seen := categories[p.Name]; !seen {
				names = append(names, p.Name)
			}
			categories[p.Name] = p.Category
		}
	}

	return names, categories
}

// lastLineFor scans newest first and returns the first order whose line
// for name has a positive quantity. Only the first line carrying the name
// in each order is considered.
func lastLineFor(newestFirst []domain.Order, name string) (productLine, bool) {
	for _, o := range newestFirst {
		p, ok := o.Product(name)
		if ok && p.Quantity > 0 {
			return productLine{WeekNumber: o.WeekNumber, Year: o.Year, Quantity: p.Quantity}, true
		}
	}
	return productLine{}, false
}

// productWeeklyConsumption applies the aggregate rate rule to a single
// product: its quantity over every order but the latest, divided by the
// span of the whole history. The rate is rounded to 2 decimals.
func productWeeklyConsumption(oldestFirst []domain.Order, name string) float64 {
	if len(oldestFirst) < 2 {
		return 0
	}

	history := oldestFirst[:len(oldestFirst)-1]

	var total float64
	for _, o := range history {
		if p, ok := o.Product(name); ok {
			total += p.Quantity
		}
	}

	span := weekSpan(oldestFirst)
	if span > 0 && total > 0 {
		return roundFloat(total/float64(span), 2)
	}
	return 0
}
