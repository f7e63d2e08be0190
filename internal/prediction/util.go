package prediction

import (
	"math"
	"sort"
	"strings"

	"github.com/packdash/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// roundHalfUp rounds to the nearest integer with ties going towards
// positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return r
}

// roundFloat rounds v to the given number of decimal places.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return roundHalfUp(v)
	}

	factor := math.Pow(10, float64(decimals))
	return roundHalfUp(v*factor) / factor
}

func roundWeeks(v float64) int {
	return int(roundHalfUp(v))
}

// FormatQuantity formats a quantity using French locale conventions:
// narrow no-break space as thousands separator and comma as decimal
// separator, at most two decimals with trailing zeros dropped.
// Example: 1234.5 => "1 234,5".
func FormatQuantity(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)

	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	s := d.String()
	intPart, fracPart, _ := strings.Cut(s, ".")

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteString("\u202f")
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart
	if fracPart != "" {
		out += "," + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// sortedNewestFirst returns a copy of orders sorted by (year, week)
// descending. Orders in the same week keep their input order.
func sortedNewestFirst(orders []domain.Order) []domain.Order {
	sorted := append([]domain.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year > sorted[j].Year
		}
		return sorted[i].WeekNumber > sorted[j].WeekNumber
	})
	return sorted
}

// sortedOldestFirst returns a copy of orders sorted by (year, week)
// ascending. Orders in the same week keep their input order.
func sortedOldestFirst(orders []domain.Order) []domain.Order {
	sorted := append([]domain.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].WeekNumber < sorted[j].WeekNumber
	})
	return sorted
}

func reversed(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	for i, o := range orders {
		out[len(orders)-1-i] = o
	}
	return out
}

// weekSpan is the distance between the first and last order of a
// chronological list.
func weekSpan(chronological []domain.Order) int {
	first := chronological[0]
	last := chronological[len(chronological)-1]
	return WeekOfEra(last.WeekNumber, last.Year) - WeekOfEra(first.WeekNumber, first.Year)
}
