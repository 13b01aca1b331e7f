// Package categories provides a fluent builder for category test data.
//
// Example usage:
//
//	cats := categories.NewBuilder(t).
//		WithDefaults().
//		WithBudget("Pets", "75").
//		Build()
package categories

import (
	"context"
	"testing"

	"github.com/Veraticus/budget/internal/ledger"
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// Builder accumulates categories for a test.
type Builder struct {
	t    *testing.T
	cats []model.Category
}

// NewBuilder starts an empty builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithDefaults adds the default category set.
func (b *Builder) WithDefaults() *Builder {
	b.cats = append(b.cats, model.DefaultCategories()...)
	return b
}

// WithCategory adds an unbudgeted category whose id is derived from name.
func (b *Builder) WithCategory(name string) *Builder {
	return b.with(model.SlugFromName(name), name, decimal.Zero)
}

// WithBudget adds a category with a budget limit given as a decimal string.
func (b *Builder) WithBudget(name, limit string) *Builder {
	d, err := decimal.NewFromString(limit)
	if err != nil {
		b.t.Fatalf("invalid budget %q for %q: %v", limit, name, err)
	}
	return b.with(model.SlugFromName(name), name, d)
}

func (b *Builder) with(id, name string, limit decimal.Decimal) *Builder {
	b.cats = append(b.cats, model.Category{
		ID:          id,
		Name:        name,
		Color:       model.FallbackColor,
		BudgetLimit: limit,
	})
	return b
}

// Build returns the accumulated categories.
func (b *Builder) Build() []model.Category {
	return append([]model.Category(nil), b.cats...)
}

// Seed adds every accumulated category to store that it does not already
// contain, failing the test on persistence errors.
func (b *Builder) Seed(ctx context.Context, store *ledger.Store) []model.Category {
	b.t.Helper()
	for _, c := range b.cats {
		if _, ok := store.Category(c.ID); ok {
			continue
		}
		if _, err := store.AddCategory(ctx, model.CategoryInput{
			ID:          c.ID,
			Name:        c.Name,
			Color:       c.Color,
			BudgetLimit: c.BudgetLimit,
		}); err != nil {
			b.t.Fatalf("failed to seed category %q: %v", c.Name, err)
		}
	}
	return store.Categories()
}
