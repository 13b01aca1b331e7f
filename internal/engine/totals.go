package engine

import (
	"time"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// Balance is the cumulative signed sum of every transaction dated on or
// before the last day of selected's month. Later transactions are excluded.
func Balance(txns []model.Transaction, selected time.Time) decimal.Decimal {
	end := NextMonthStart(selected)
	total := decimal.Zero
	for _, t := range txns {
		if t.Date.Before(end) {
			total = total.Add(t.Signed())
		}
	}
	return total
}

// TotalIncome sums income within selected's month only.
func TotalIncome(txns []model.Transaction, selected time.Time) decimal.Decimal {
	return periodSum(txns, selected, model.TypeIncome)
}

// TotalExpenses sums expenses within selected's month only.
func TotalExpenses(txns []model.Transaction, selected time.Time) decimal.Decimal {
	return periodSum(txns, selected, model.TypeExpense)
}

func periodSum(txns []model.Transaction, selected time.Time, typ model.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Type == typ && InPeriod(t.Date, selected) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// MonthTotals is one bar of the yearly income/expense chart.
type MonthTotals struct {
	Month    time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net returns income minus expenses for the month.
func (m MonthTotals) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// MonthlyTotals buckets a calendar year's transactions by month in loc.
// All twelve months are present, empty ones with zero totals.
func MonthlyTotals(txns []model.Transaction, year int, loc *time.Location) []MonthTotals {
	out := make([]MonthTotals, 12)
	for i := range out {
		out[i] = MonthTotals{Month: time.Month(i + 1), Income: decimal.Zero, Expenses: decimal.Zero}
	}
	for _, t := range txns {
		d := t.Date.In(loc)
		if d.Year() != year {
			continue
		}
		b := &out[d.Month()-1]
		switch t.Type {
		case model.TypeIncome:
			b.Income = b.Income.Add(t.Amount)
		case model.TypeExpense:
			b.Expenses = b.Expenses.Add(t.Amount)
		}
	}
	return out
}
