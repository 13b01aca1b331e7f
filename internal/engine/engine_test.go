package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/budget/internal/engine"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func januaryLedger() []model.Transaction {
	return []model.Transaction{
		testutil.Txn("salary", model.TypeIncome, "1000", model.IncomeCategoryID, testutil.Date(2025, 1, 15)),
		testutil.Txn("dinner", model.TypeExpense, "200", "food", testutil.Date(2025, 1, 20)),
	}
}

func TestSummary_SelectedJanuary(t *testing.T) {
	txns := januaryLedger()
	selected := testutil.Date(2025, 1, 1)

	assertDecimal(t, "800", engine.Balance(txns, selected))
	assertDecimal(t, "1000", engine.TotalIncome(txns, selected))
	assertDecimal(t, "200", engine.TotalExpenses(txns, selected))

	breakdown := engine.ExpensesByCategory(txns, selected)
	require.Equal(t, 1, breakdown.Len())
	food, ok := breakdown.Get("food")
	require.True(t, ok)
	assertDecimal(t, "200", food)
}

func TestSummary_SelectedFebruaryCarriesBalance(t *testing.T) {
	txns := januaryLedger()
	selected := testutil.Date(2025, 2, 1)

	assertDecimal(t, "800", engine.Balance(txns, selected))
	assertDecimal(t, "0", engine.TotalIncome(txns, selected))
	assertDecimal(t, "0", engine.TotalExpenses(txns, selected))
	assert.Equal(t, 0, engine.ExpensesByCategory(txns, selected).Len())
	assert.Empty(t, engine.ExpensesByCategory(txns, selected).Map())
}

func TestBalanceIsCumulativeNotPeriodNet(t *testing.T) {
	txns := append(januaryLedger(),
		testutil.Txn("rent", model.TypeExpense, "300", "bills", testutil.Date(2025, 2, 3)),
		testutil.Txn("bonus", model.TypeIncome, "50", model.IncomeCategoryID, testutil.Date(2025, 2, 28)),
	)
	selected := testutil.Date(2025, 2, 10)

	net := engine.TotalIncome(txns, selected).Sub(engine.TotalExpenses(txns, selected))
	balance := engine.Balance(txns, selected)

	assertDecimal(t, "-250", net)
	assertDecimal(t, "550", balance)
	assert.False(t, net.Equal(balance), "period net and cumulative balance differ")
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name     string
		txns     []model.Transaction
		selected time.Time
		want     string
	}{
		{
			name:     "empty ledger",
			selected: testutil.Date(2025, 1, 1),
			want:     "0",
		},
		{
			name: "later months excluded",
			txns: []model.Transaction{
				testutil.Txn("a", model.TypeIncome, "100", "income", testutil.Date(2025, 1, 31)),
				testutil.Txn("b", model.TypeIncome, "999", "income", testutil.Date(2025, 2, 1)),
			},
			selected: testutil.Date(2025, 1, 15),
			want:     "100",
		},
		{
			name: "last instant of month included",
			txns: []model.Transaction{
				testutil.Txn("a", model.TypeExpense, "40", "food", time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)),
			},
			selected: testutil.Date(2025, 1, 1),
			want:     "-40",
		},
		{
			name: "earlier years included",
			txns: []model.Transaction{
				testutil.Txn("a", model.TypeIncome, "10.25", "income", testutil.Date(2023, 6, 1)),
				testutil.Txn("b", model.TypeExpense, "0.25", "food", testutil.Date(2024, 12, 31)),
			},
			selected: testutil.Date(2025, 1, 1),
			want:     "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, engine.Balance(tt.txns, tt.selected))
		})
	}
}

func TestFilterByPeriod(t *testing.T) {
	txns := []model.Transaction{
		testutil.Txn("jan-b", model.TypeExpense, "1", "food", testutil.Date(2025, 1, 20)),
		testutil.Txn("dec", model.TypeExpense, "1", "food", testutil.Date(2024, 12, 31)),
		testutil.Txn("jan-a", model.TypeExpense, "1", "food", testutil.Date(2025, 1, 2)),
		testutil.Txn("jan-last-year", model.TypeExpense, "1", "food", testutil.Date(2024, 1, 10)),
	}

	got := engine.FilterByPeriod(txns, testutil.Date(2025, 1, 31))
	require.Len(t, got, 2)
	assert.Equal(t, "jan-b", got[0].ID)
	assert.Equal(t, "jan-a", got[1].ID)
}

func TestInPeriod_UsesSelectedLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2025-01-31 20:00 UTC is already February in Tokyo.
	date := time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC)

	assert.True(t, engine.InPeriod(date, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, engine.InPeriod(date, time.Date(2025, 2, 1, 0, 0, 0, 0, tokyo)))
	assert.False(t, engine.InPeriod(date, time.Date(2025, 1, 1, 0, 0, 0, 0, tokyo)))
}

func TestExpensesByCategory(t *testing.T) {
	selected := testutil.Date(2025, 3, 1)
	txns := []model.Transaction{
		testutil.Txn("1", model.TypeExpense, "12.50", "transport", testutil.Date(2025, 3, 2)),
		testutil.Txn("2", model.TypeExpense, "30", "food", testutil.Date(2025, 3, 3)),
		testutil.Txn("3", model.TypeIncome, "500", "food", testutil.Date(2025, 3, 3)),
		testutil.Txn("4", model.TypeExpense, "7.50", "transport", testutil.Date(2025, 3, 9)),
		testutil.Txn("5", model.TypeExpense, "0", "health", testutil.Date(2025, 3, 9)),
		testutil.Txn("6", model.TypeExpense, "80", "shopping", testutil.Date(2025, 4, 1)),
		testutil.Txn("7", model.TypeExpense, "5", "deleted-category", testutil.Date(2025, 3, 30)),
	}

	b := engine.ExpensesByCategory(txns, selected)

	var order []string
	for _, e := range b.Entries() {
		order = append(order, e.CategoryID)
	}
	assert.Equal(t, []string{"transport", "food", "deleted-category"}, order, "first-encounter order")

	transport, _ := b.Get("transport")
	assertDecimal(t, "20", transport)
	food, _ := b.Get("food")
	assertDecimal(t, "30", food)

	_, ok := b.Get("health")
	assert.False(t, ok, "zero spend is absent")
	_, ok = b.Get("shopping")
	assert.False(t, ok, "other months are ignored")
	assert.NotContains(t, b.Map(), "health")
}

func TestBudgetProgress(t *testing.T) {
	cats := []model.Category{
		{ID: "food", Name: "Food", BudgetLimit: testutil.Amount("200")},
		{ID: "income", Name: "Income", BudgetLimit: decimal.Zero},
		{ID: "fun", Name: "Fun", BudgetLimit: testutil.Amount("50")},
		{ID: "rent", Name: "Rent", BudgetLimit: testutil.Amount("1000")},
	}
	selected := testutil.Date(2025, 5, 1)
	txns := []model.Transaction{
		testutil.Txn("1", model.TypeExpense, "250", "food", testutil.Date(2025, 5, 4)),
		testutil.Txn("2", model.TypeExpense, "10", "income", testutil.Date(2025, 5, 4)),
		testutil.Txn("3", model.TypeExpense, "12.5", "fun", testutil.Date(2025, 5, 5)),
	}

	progress := engine.BudgetProgress(cats, engine.ExpensesByCategory(txns, selected))
	require.Len(t, progress, 3, "zero-limit categories are excluded")

	assert.Equal(t, "food", progress[0].Category.ID)
	assertDecimal(t, "250", progress[0].Spent)
	assertDecimal(t, "125", progress[0].Percentage, "not capped at 100")
	assert.True(t, progress[0].OverBudget())
	assertDecimal(t, "0", progress[0].Remaining())

	assert.Equal(t, "fun", progress[1].Category.ID)
	assertDecimal(t, "25", progress[1].Percentage)
	assertDecimal(t, "37.5", progress[1].Remaining())

	assert.Equal(t, "rent", progress[2].Category.ID)
	assertDecimal(t, "0", progress[2].Spent)
	assertDecimal(t, "0", progress[2].Percentage)
}

func TestBudgetOverview(t *testing.T) {
	tests := []struct {
		name          string
		cats          []model.Category
		spent         string
		wantRemaining string
		wantPercent   string
		wantOver      bool
	}{
		{
			name:          "no limits",
			cats:          []model.Category{{ID: "income"}},
			spent:         "40",
			wantRemaining: "0",
			wantPercent:   "0",
			wantOver:      true,
		},
		{
			name:          "defaults under budget",
			cats:          model.DefaultCategories(),
			spent:         "1225",
			wantRemaining: "1225",
			wantPercent:   "50",
		},
		{
			name:          "over budget",
			cats:          []model.Category{{ID: "a", BudgetLimit: testutil.Amount("100")}},
			spent:         "150",
			wantRemaining: "0",
			wantPercent:   "150",
			wantOver:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := engine.NewBudgetOverview(tt.cats, testutil.Amount(tt.spent))
			assertDecimal(t, tt.wantRemaining, o.Remaining)
			assertDecimal(t, tt.wantPercent, o.Percentage)
			assert.Equal(t, tt.wantOver, o.OverBudget)
		})
	}
}

func TestMonthlyTotals(t *testing.T) {
	txns := []model.Transaction{
		testutil.Txn("1", model.TypeIncome, "1000", "income", testutil.Date(2025, 1, 15)),
		testutil.Txn("2", model.TypeExpense, "200", "food", testutil.Date(2025, 1, 20)),
		testutil.Txn("3", model.TypeExpense, "75", "food", testutil.Date(2025, 12, 31)),
		testutil.Txn("4", model.TypeIncome, "9", "income", testutil.Date(2024, 12, 31)),
	}

	months := engine.MonthlyTotals(txns, 2025, time.UTC)
	require.Len(t, months, 12)

	assert.Equal(t, time.January, months[0].Month)
	assertDecimal(t, "1000", months[0].Income)
	assertDecimal(t, "200", months[0].Expenses)
	assertDecimal(t, "800", months[0].Net())

	assertDecimal(t, "0", months[5].Income)
	assertDecimal(t, "75", months[11].Expenses)
}

func TestCategoryLookup(t *testing.T) {
	cats := model.DefaultCategories()

	c, ok := engine.ResolveCategory(cats, "bills")
	require.True(t, ok)
	assert.Equal(t, "Bills & Utilities", c.Name)

	_, ok = engine.ResolveCategory(cats, "gone")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", engine.CategoryName(cats, "gone"))
	assert.Equal(t, "#64748b", engine.CategoryColor(cats, "gone"))
	assert.Equal(t, "#ec4899", engine.CategoryColor(cats, "shopping"))

	byName, ok := engine.CategoryByName(cats, "food & DINING")
	require.True(t, ok)
	assert.Equal(t, "food", byName.ID)
}

func TestSummarize(t *testing.T) {
	l := testutil.SetupTestLedger(t)
	l.MustAdd(testutil.Income("1000", testutil.Date(2025, 1, 15)))
	l.MustAdd(testutil.Expense("200", "food", testutil.Date(2025, 1, 20)))
	l.MustAdd(testutil.Expense("60", "entertainment", testutil.Date(2025, 1, 21)))

	s := engine.Summarize(l.Store.Transactions(), l.Store.Categories(), testutil.Date(2025, 1, 18), 2)

	assert.Equal(t, testutil.Date(2025, 1, 1), s.Selected)
	assertDecimal(t, "740", s.Balance)
	assertDecimal(t, "260", s.TotalExpenses)
	assert.Len(t, s.Period, 3)
	require.Len(t, s.Recent, 2)
	assert.Equal(t, "entertainment", s.Recent[0].Category)

	// Every default category except income carries a limit.
	assert.Len(t, s.Budgets, 7)
	assertDecimal(t, "2450", s.Overview.TotalLimit)
}

func TestDeletedCategoryResolvesUnknown(t *testing.T) {
	l := testutil.SetupTestLedger(t)
	txn := l.MustAdd(testutil.Expense("15", "health", testutil.Date(2025, 1, 3)))

	require.NoError(t, l.Store.DeleteCategory(context.Background(), "health"))

	got, ok := l.Store.Transaction(txn.ID)
	require.True(t, ok)
	assert.Equal(t, "health", got.Category)
	assert.Equal(t, model.UnknownCategoryName, engine.CategoryName(l.Store.Categories(), got.Category))
}
