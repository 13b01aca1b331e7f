package engine

import (
	"time"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// CategorySpend is one entry of a breakdown.
type CategorySpend struct {
	CategoryID string
	Amount     decimal.Decimal
}

// CategoryBreakdown maps category ids to period expense totals.
// Entries iterate in order of first encounter; categories with nothing spent
// are absent rather than present with zero.
type CategoryBreakdown struct {
	entries []CategorySpend
}

// Len returns the number of categories with spending.
func (b CategoryBreakdown) Len() int { return len(b.entries) }

// Entries returns the breakdown in first-encounter order.
func (b CategoryBreakdown) Entries() []CategorySpend {
	return append([]CategorySpend(nil), b.entries...)
}

// Get returns the total spent in a category, and whether it is present.
func (b CategoryBreakdown) Get(categoryID string) (decimal.Decimal, bool) {
	for _, e := range b.entries {
		if e.CategoryID == categoryID {
			return e.Amount, true
		}
	}
	return decimal.Zero, false
}

// Map returns the breakdown as a plain map.
func (b CategoryBreakdown) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(b.entries))
	for _, e := range b.entries {
		m[e.CategoryID] = e.Amount
	}
	return m
}

// ExpensesByCategory sums selected's month expenses per category id.
func ExpensesByCategory(txns []model.Transaction, selected time.Time) CategoryBreakdown {
	var entries []CategorySpend
	index := make(map[string]int)
	for _, t := range txns {
		if !t.IsExpense() || !InPeriod(t.Date, selected) {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(entries)
			index[t.Category] = i
			entries = append(entries, CategorySpend{CategoryID: t.Category, Amount: decimal.Zero})
		}
		entries[i].Amount = entries[i].Amount.Add(t.Amount)
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Amount.IsPositive() {
			kept = append(kept, e)
		}
	}
	return CategoryBreakdown{entries: kept}
}
