package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/budget/internal/model"
)

// MonthLayout is the textual form of a selected period.
const MonthLayout = "2006-01"

// MonthStart returns midnight on the first day of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// NextMonthStart returns the exclusive upper bound of t's month.
func NextMonthStart(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// ShiftMonth moves the selected period by delta months.
// The result is always the first of a month, so day overflow never skips one.
func ShiftMonth(selected time.Time, delta int) time.Time {
	return MonthStart(selected).AddDate(0, delta, 0)
}

// ParseMonth reads a YYYY-MM period in loc. An empty string selects the
// month containing now.
func ParseMonth(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MonthStart(now.In(loc)), nil
	}
	t, err := time.ParseInLocation(MonthLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return t, nil
}

// InPeriod reports whether date falls in the same calendar month and year as
// selected, judged in selected's location.
func InPeriod(date, selected time.Time) bool {
	d := date.In(selected.Location())
	return d.Year() == selected.Year() && d.Month() == selected.Month()
}

// FilterByPeriod returns the transactions dated in selected's month,
// preserving input order.
func FilterByPeriod(txns []model.Transaction, selected time.Time) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if InPeriod(t.Date, selected) {
			out = append(out, t)
		}
	}
	return out
}
