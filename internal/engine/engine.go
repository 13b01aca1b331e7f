// Package engine derives summary views from a ledger snapshot.
//
// Every function here is pure: it reads the slices it is given and returns
// fresh values, so callers may recompute on every render without caching.
package engine

import (
	"time"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// Summary is everything the dashboard shows for one selected month.
type Summary struct {
	Selected      time.Time
	Balance       decimal.Decimal
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Breakdown     CategoryBreakdown
	Budgets       []CategoryProgress
	Overview      BudgetOverview
	Period        []model.Transaction
	Recent        []model.Transaction
}

// Summarize computes the dashboard view for the month containing selected.
// Recent holds the first recentCount transactions in store order.
func Summarize(txns []model.Transaction, cats []model.Category, selected time.Time, recentCount int) Summary {
	breakdown := ExpensesByCategory(txns, selected)
	expenses := TotalExpenses(txns, selected)

	return Summary{
		Selected:      MonthStart(selected),
		Balance:       Balance(txns, selected),
		TotalIncome:   TotalIncome(txns, selected),
		TotalExpenses: expenses,
		Breakdown:     breakdown,
		Budgets:       BudgetProgress(cats, breakdown),
		Overview:      NewBudgetOverview(cats, expenses),
		Period:        FilterByPeriod(txns, selected),
		Recent:        Recent(txns, recentCount),
	}
}
