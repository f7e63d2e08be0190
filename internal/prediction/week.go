package prediction

import (
	"fmt"
	"math"
	"time"

	"github.com/packdash/backend-go/internal/domain"
)

// WeeksPerYear is the width of a year on the week-of-era axis. Real years
// with 53 ISO weeks are deliberately not modelled.
const WeeksPerYear = 52

// WeekOfEra maps a (week, year) pair onto a linear week axis.
func WeekOfEra(week, year int) int {
	return year*WeeksPerYear + week
}

func eraOf(w domain.WeekYear) int {
	return WeekOfEra(w.Week, w.Year)
}

// NormalizeWeek rolls a week past 52 into the following year(s). Weeks at
// or below 52, including non-positive ones, are returned as is.
func NormalizeWeek(rawWeek, year int) domain.WeekYear {
	if rawWeek > WeeksPerYear {
		year += (rawWeek - 1) / WeeksPerYear
		rawWeek = ((rawWeek-1)%WeeksPerYear + 1)
	}

	return domain.WeekYear{Week: rawWeek, Year: year}
}

// CurrentWeek derives the dashboard week of now:
// ceil((days since Jan 1 + weekday of Jan 1 + 1) / 7), capped at 52.
// This is not ISO-8601 numbering and must stay that way.
func CurrentWeek(now time.Time) domain.WeekYear {
	year := now.Year()
	startOfYear := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())

	days := int(math.Floor(now.Sub(startOfYear).Hours() / 24))
	week := int(math.Ceil(float64(days+int(startOfYear.Weekday())+1) / 7))
	if week > WeeksPerYear {
		week = WeeksPerYear
	}

	return domain.WeekYear{Week: week, Year: year}
}

// WeeksUntil returns the signed distance from the current week to target.
func WeeksUntil(target domain.WeekYear, now time.Time) int {
	return eraOf(target) - eraOf(CurrentWeek(now))
}

// FormatWeek renders a week the way the dashboard prints it.
func FormatWeek(week, year int) string {
	return fmt.Sprintf("Semaine %d, %d", week, year)
}
