package engine

import (
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CategoryProgress is spending against one category's budget.
// Percentage is not capped; clamping for display is the caller's concern.
type CategoryProgress struct {
	Category   model.Category
	Spent      decimal.Decimal
	Percentage decimal.Decimal
}

// OverBudget reports whether spending exceeds the limit.
func (p CategoryProgress) OverBudget() bool {
	return p.Spent.GreaterThan(p.Category.BudgetLimit)
}

// Remaining is the unspent part of the limit, never negative.
func (p CategoryProgress) Remaining() decimal.Decimal {
	return decimal.Max(decimal.Zero, p.Category.BudgetLimit.Sub(p.Spent))
}

// BudgetProgress reports progress for every category with a positive limit,
// in category order. Categories without a limit are left out.
func BudgetProgress(cats []model.Category, breakdown CategoryBreakdown) []CategoryProgress {
	var out []CategoryProgress
	for _, c := range cats {
		if !c.HasBudget() {
			continue
		}
		spent, _ := breakdown.Get(c.ID)
		out = append(out, CategoryProgress{
			Category:   c,
			Spent:      spent,
			Percentage: spent.Mul(hundred).Div(c.BudgetLimit),
		})
	}
	return out
}

// BudgetOverview compares total spending with the sum of all limits.
type BudgetOverview struct {
	TotalLimit decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage decimal.Decimal
	OverBudget bool
}

// NewBudgetOverview totals every category limit and sets totalExpenses
// against it. Percentage is zero when no limits are set.
func NewBudgetOverview(cats []model.Category, totalExpenses decimal.Decimal) BudgetOverview {
	limit := decimal.Zero
	for _, c := range cats {
		limit = limit.Add(c.BudgetLimit)
	}

	o := BudgetOverview{
		TotalLimit: limit,
		Spent:      totalExpenses,
		Remaining:  decimal.Max(decimal.Zero, limit.Sub(totalExpenses)),
		Percentage: decimal.Zero,
		OverBudget: totalExpenses.GreaterThan(limit),
	}
	if limit.IsPositive() {
		o.Percentage = totalExpenses.Mul(hundred).Div(limit)
	}
	return o
}
