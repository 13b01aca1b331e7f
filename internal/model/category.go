package model

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Well-known category ids.
const (
	FoodCategoryID   = "food"
	IncomeCategoryID = "income"
	OtherCategoryID  = "other"
)

// UnknownCategoryName is shown for transactions whose category no longer exists.
const UnknownCategoryName = "Unknown"

// FallbackColor is used when a category cannot be resolved.
const FallbackColor = "#64748b"

// Category groups transactions and optionally carries a monthly budget.
// A zero BudgetLimit means the category is unconstrained.
type Category struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Color       string          `json:"color"`
	BudgetLimit decimal.Decimal `json:"budgetLimit"`
}

// HasBudget reports whether the category has a positive budget limit.
func (c Category) HasBudget() bool {
	return c.BudgetLimit.IsPositive()
}

// CategoryInput carries the fields of a new category. An empty ID is
// derived from Name.
type CategoryInput struct {
	ID          string
	Name        string
	Color       string
	BudgetLimit decimal.Decimal
}

// CategoryPatch holds the fields to merge onto an existing category.
type CategoryPatch struct {
	Name        *string
	Color       *string
	BudgetLimit *decimal.Decimal
}

// IsEmpty reports whether the patch changes nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil && p.BudgetLimit == nil
}

// Apply returns c with the patch merged on top.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.BudgetLimit != nil {
		c.BudgetLimit = NormalizeAmount(*p.BudgetLimit)
	}
	return c
}

// SlugFromName derives a category id: lowercase, whitespace runs replaced
// with a single hyphen.
func SlugFromName(name string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// DefaultCategories returns the category set seeded into an empty ledger.
func DefaultCategories() []Category {
	return []Category{
		{ID: FoodCategoryID, Name: "Food & Dining", Color: "#10b981", BudgetLimit: decimal.NewFromInt(500)},
		{ID: "transport", Name: "Transportation", Color: "#3b82f6", BudgetLimit: decimal.NewFromInt(300)},
		{ID: "entertainment", Name: "Entertainment", Color: "#8b5cf6", BudgetLimit: decimal.NewFromInt(200)},
		{ID: "shopping", Name: "Shopping", Color: "#ec4899", BudgetLimit: decimal.NewFromInt(400)},
		{ID: "bills", Name: "Bills & Utilities", Color: "#f59e0b", BudgetLimit: decimal.NewFromInt(800)},
		{ID: "health", Name: "Health & Fitness", Color: "#06b6d4", BudgetLimit: decimal.NewFromInt(150)},
		{ID: IncomeCategoryID, Name: "Income", Color: "#10b981", BudgetLimit: decimal.Zero},
		{ID: OtherCategoryID, Name: "Other", Color: FallbackColor, BudgetLimit: decimal.NewFromInt(100)},
	}
}
