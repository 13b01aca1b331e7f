package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var january = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func sampleLedger() []model.Transaction {
	return []model.Transaction{
		{ID: "3", Type: model.TypeExpense, Amount: decimal.NewFromInt(40), Category: "transport", Description: "Train", Date: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Type: model.TypeExpense, Amount: decimal.NewFromInt(200), Category: "food", Description: "Dinner", Date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "1", Type: model.TypeIncome, Amount: decimal.NewFromInt(1000), Category: "income", Description: "Salary", Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
}

func readBack(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func value(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func assertAmount(t *testing.T, f *excelize.File, sheet, ref string, want int64) {
	t.Helper()
	got, err := decimal.NewFromString(value(t, f, sheet, ref))
	require.NoError(t, err, "%s!%s", sheet, ref)
	assert.True(t, got.Equal(decimal.NewFromInt(want)), "%s!%s = %s, want %d", sheet, ref, got, want)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewReport(sampleLedger(), model.DefaultCategories(), january)))

	f := readBack(t, buf.Bytes())
	assert.Equal(t, []string{TransactionsSheet, SummarySheet}, f.GetSheetList())

	t.Run("transactions sheet", func(t *testing.T) {
		rows, err := f.GetRows(TransactionsSheet)
		require.NoError(t, err)
		require.Len(t, rows, 4, "header, two January rows, net")

		assert.Equal(t, []string{"Date", "Description", "Category", "Type", "Amount"}, rows[0])
		assert.Equal(t, []string{"2025-01-15", "Salary", "Income", "income"}, rows[1][:4])
		assert.Equal(t, []string{"2025-01-20", "Dinner", "Food & Dining", "expense"}, rows[2][:4])
		assert.Equal(t, "Net", rows[3][0])

		assertAmount(t, f, TransactionsSheet, "E2", 1000)
		assertAmount(t, f, TransactionsSheet, "E3", -200)
		assertAmount(t, f, TransactionsSheet, "E4", 800)
	})

	t.Run("summary sheet", func(t *testing.T) {
		assert.Equal(t, "2025-01", value(t, f, SummarySheet, "B1"))
		assert.Equal(t, "Balance", value(t, f, SummarySheet, "A2"))
		assertAmount(t, f, SummarySheet, "B2", 800)
		assertAmount(t, f, SummarySheet, "B3", 1000)
		assertAmount(t, f, SummarySheet, "B4", 200)
		assertAmount(t, f, SummarySheet, "B5", 2450)
		assertAmount(t, f, SummarySheet, "B6", 2250)

		assert.Equal(t, "Category", value(t, f, SummarySheet, "A8"))
		assert.Equal(t, "Food & Dining", value(t, f, SummarySheet, "A9"))
		assertAmount(t, f, SummarySheet, "B9", 200)
		assertAmount(t, f, SummarySheet, "C9", 500)
		assertAmount(t, f, SummarySheet, "D9", 40)
		assert.Empty(t, value(t, f, SummarySheet, "A10"))
	})
}

func TestWrite_EmptyMonth(t *testing.T) {
	var buf bytes.Buffer
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Write(&buf, NewReport(sampleLedger(), model.DefaultCategories(), march)))

	f := readBack(t, buf.Bytes())
	rows, err := f.GetRows(TransactionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Net", rows[1][0])
	assertAmount(t, f, TransactionsSheet, "E2", 0)

	// Balance carries everything up to the end of March.
	assertAmount(t, f, SummarySheet, "B2", 760)
	assertAmount(t, f, SummarySheet, "B4", 0)
}

func TestWrite_UnbudgetedCategory(t *testing.T) {
	cats := []model.Category{{ID: "food", Name: "Food", BudgetLimit: decimal.Zero}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewReport(sampleLedger(), cats, january)))

	f := readBack(t, buf.Bytes())
	assert.Equal(t, "Food", value(t, f, SummarySheet, "A9"))
	assertAmount(t, f, SummarySheet, "B9", 200)
	assert.Empty(t, value(t, f, SummarySheet, "C9"))
	assertAmount(t, f, SummarySheet, "B5", 0)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	require.NoError(t, WriteFile(path, NewReport(sampleLedger(), model.DefaultCategories(), january)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue(TransactionsSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Dinner", v)
}

func TestWriteFile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "budget.xlsx")
	err := WriteFile(path, NewReport(nil, nil, january))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create")
}
