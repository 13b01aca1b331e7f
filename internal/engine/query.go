package engine

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/budget/internal/model"
)

// SortField selects the key used to order a transaction list.
type SortField string

// Sort keys offered by the transaction list.
const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
)

// ParseSortField accepts the sort keys case-insensitively. Empty means date.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SortByDate, nil
	case SortByDate, SortByAmount, SortByDescription:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

// AllFilter matches every type or category.
const AllFilter = "all"

// TransactionQuery filters and orders a transaction list.
// Empty Type and Category, or AllFilter, match everything.
type TransactionQuery struct {
	Type       string
	Category   string
	SortBy     SortField
	Descending bool
}

// Query returns the matching transactions in the requested order.
// Sorting is stable, so equal keys keep their store order.
func Query(txns []model.Transaction, q TransactionQuery) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if matches(q.Type, string(t.Type)) && matches(q.Category, t.Category) {
			out = append(out, t)
		}
	}

	compare := compareBy(q.SortBy)
	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		if q.Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

func matches(filter, value string) bool {
	return filter == "" || filter == AllFilter || filter == value
}

func compareBy(field SortField) func(a, b model.Transaction) int {
	switch field {
	case SortByAmount:
		return func(a, b model.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case SortByDescription:
		return func(a, b model.Transaction) int {
			return cmp.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
		}
	default:
		return func(a, b model.Transaction) int { return a.Date.Compare(b.Date) }
	}
}

// Recent returns the first n transactions in store order, which is
// most recently added first.
func Recent(txns []model.Transaction, n int) []model.Transaction {
	if n <= 0 {
		return nil
	}
	if n > len(txns) {
		n = len(txns)
	}
	return append([]model.Transaction(nil), txns[:n]...)
}
