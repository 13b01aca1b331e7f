package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "integer", in: "1000", want: "1000"},
		{name: "decimal", in: "12.34", want: "12.34"},
		{name: "surrounding whitespace", in: "  2.50 ", want: "2.5"},
		{name: "empty", in: "", want: "0"},
		{name: "not a number", in: "abc", want: "0"},
		{name: "negative coerced", in: "-5", want: "0"},
		{name: "zero", in: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.in)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		in     string
		want   TransactionType
		wantOK bool
	}{
		{in: "income", want: TypeIncome, wantOK: true},
		{in: "EXPENSE", want: TypeExpense, wantOK: true},
		{in: " Income ", want: TypeIncome, wantOK: true},
		{in: "transfer", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTransactionType(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransaction_Signed(t *testing.T) {
	income := Transaction{Type: TypeIncome, Amount: decimal.NewFromInt(100)}
	expense := Transaction{Type: TypeExpense, Amount: decimal.NewFromInt(40)}

	assert.True(t, income.Signed().Equal(decimal.NewFromInt(100)))
	assert.True(t, expense.Signed().Equal(decimal.NewFromInt(-40)))
}

func TestTransactionPatch_Apply(t *testing.T) {
	base := Transaction{
		ID:          "t1",
		Type:        TypeExpense,
		Category:    FoodCategoryID,
		Description: "Lunch",
		Amount:      decimal.NewFromInt(12),
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	t.Run("empty patch is identity", func(t *testing.T) {
		patch := TransactionPatch{}
		assert.True(t, patch.IsEmpty())
		assert.Equal(t, base, patch.Apply(base))
	})

	t.Run("merges set fields only", func(t *testing.T) {
		desc := "Dinner"
		amount := decimal.NewFromInt(30)
		got := TransactionPatch{Description: &desc, Amount: &amount}.Apply(base)

		assert.Equal(t, "t1", got.ID)
		assert.Equal(t, "Dinner", got.Description)
		assert.True(t, got.Amount.Equal(amount))
		assert.Equal(t, FoodCategoryID, got.Category)
		assert.Equal(t, base.Date, got.Date)
	})

	t.Run("negative amount coerced", func(t *testing.T) {
		amount := decimal.NewFromInt(-3)
		got := TransactionPatch{Amount: &amount}.Apply(base)
		assert.True(t, got.Amount.IsZero())
	})
}

func TestTransactionInput_Hash(t *testing.T) {
	in := TransactionInput{
		Date:        time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
		Type:        TypeExpense,
		Description: "Coffee",
		Amount:      decimal.RequireFromString("3.5"),
	}
	same := in
	same.Date = time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)
	same.Amount = decimal.RequireFromString("3.50")

	other := in
	other.Description = "Tea"

	assert.Equal(t, in.Hash(), same.Hash())
	assert.NotEqual(t, in.Hash(), other.Hash())
}
