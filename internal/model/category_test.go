package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single word", in: "Food", want: "food"},
		{name: "spaces", in: "Health & Fitness", want: "health-&-fitness"},
		{name: "whitespace run", in: "Car  \tRepairs", want: "car-repairs"},
		{name: "leading space kept as hyphen", in: " Pets", want: "-pets"},
		{name: "already lower", in: "travel", want: "travel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugFromName(tt.in))
		})
	}
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	require.Len(t, cats, 8)

	ids := make(map[string]Category, len(cats))
	for _, c := range cats {
		ids[c.ID] = c
	}
	require.Len(t, ids, 8, "default ids must be unique")

	assert.True(t, ids[FoodCategoryID].BudgetLimit.Equal(decimal.NewFromInt(500)))
	assert.False(t, ids[IncomeCategoryID].HasBudget())
	assert.Equal(t, FallbackColor, ids[OtherCategoryID].Color)
	assert.Equal(t, "Bills & Utilities", ids["bills"].Name)

	// Callers get a fresh slice every time.
	cats[0].Name = "changed"
	assert.Equal(t, "Food & Dining", DefaultCategories()[0].Name)
}

func TestCategoryPatch_Apply(t *testing.T) {
	base := Category{ID: "pets", Name: "Pets", Color: "#fff", BudgetLimit: decimal.NewFromInt(50)}

	assert.Equal(t, base, CategoryPatch{}.Apply(base))

	limit := decimal.NewFromInt(-10)
	name := "Animals"
	got := CategoryPatch{Name: &name, BudgetLimit: &limit}.Apply(base)
	assert.Equal(t, "pets", got.ID)
	assert.Equal(t, "Animals", got.Name)
	assert.True(t, got.BudgetLimit.IsZero())
	assert.Equal(t, "#fff", got.Color)
}
