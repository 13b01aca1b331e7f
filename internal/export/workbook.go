// Package export writes a month of the ledger to an Excel workbook.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/budget/internal/engine"
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the generated workbook.
const (
	TransactionsSheet = "Transactions"
	SummarySheet      = "Summary"
)

const dateLayout = "2006-01-02"

var transactionHeaders = []any{"Date", "Description", "Category", "Type", "Amount"}

// Report is the data behind one exported month.
type Report struct {
	Summary    engine.Summary
	Categories []model.Category
}

// NewReport summarizes the month containing selected.
func NewReport(txns []model.Transaction, cats []model.Category, selected time.Time) Report {
	return Report{
		Summary:    engine.Summarize(txns, cats, selected, 0),
		Categories: cats,
	}
}

type styles struct {
	header int
	total  int
	money  int
}

// Workbook builds the Transactions and Summary sheets. The caller owns the
// returned file and must close it.
func Workbook(r Report) (*excelize.File, error) {
	f := excelize.NewFile()

	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeTransactions(f, r, st); err != nil {
		_ = f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummary(f, r, st); err != nil {
		_ = f.Close()
		return nil, err
	}

	return f, nil
}

// Write streams the workbook for r to w.
func Write(w io.Writer, r Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook for r at path.
func WriteFile(path string, r Report) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(out, r); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	slog.Info("exported workbook",
		"path", path,
		"month", r.Summary.Selected.Format(engine.MonthLayout),
		"transactions", len(r.Summary.Period))
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"6366F1"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create header style: %w", err)
	}

	total, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create total style: %w", err)
	}

	// 4 is the builtin "#,##0.00" format.
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create money style: %w", err)
	}

	return styles{header: header, total: total, money: money}, nil
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		// Only reachable with non-positive coordinates.
		panic(err)
	}
	return name
}

func setMoney(f *excelize.File, sheet string, col, row int, d decimal.Decimal, style int) error {
	ref := cell(col, row)
	if err := f.SetCellFloat(sheet, ref, d.InexactFloat64(), 2, 64); err != nil {
		return fmt.Errorf("failed to set %s!%s: %w", sheet, ref, err)
	}
	return f.SetCellStyle(sheet, ref, ref, style)
}

func writeHeader(f *excelize.File, sheet string, row int, headers []any, style int) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	return f.SetCellStyle(sheet, cell(1, row), cell(len(headers), row), style)
}

func writeTransactions(f *excelize.File, r Report, st styles) error {
	sheet := TransactionsSheet
	if err := writeHeader(f, sheet, 1, transactionHeaders, st.header); err != nil {
		return err
	}

	txns := engine.Query(r.Summary.Period, engine.TransactionQuery{SortBy: engine.SortByDate})
	row := 2
	for _, t := range txns {
		values := []any{
			t.Date.Format(dateLayout),
			t.Description,
			engine.CategoryName(r.Categories, t.Category),
			string(t.Type),
		}
		if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", t.ID, err)
		}
		if err := setMoney(f, sheet, 5, row, t.Signed(), st.money); err != nil {
			return err
		}
		row++
	}

	if err := f.SetCellValue(sheet, cell(1, row), "Net"); err != nil {
		return fmt.Errorf("failed to write net label: %w", err)
	}
	net := r.Summary.TotalIncome.Sub(r.Summary.TotalExpenses)
	if err := setMoney(f, sheet, 5, row, net, st.total); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(1, row), cell(4, row), st.total); err != nil {
		return fmt.Errorf("failed to style net row: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "C", 30); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return f.SetColWidth(sheet, "D", "E", 14)
}

func writeSummary(f *excelize.File, r Report, st styles) error {
	sheet := SummarySheet
	s := r.Summary

	if err := f.SetCellValue(sheet, "A1", "Month"); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", s.Selected.Format(engine.MonthLayout)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	totals := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Balance", s.Balance},
		{"Income", s.TotalIncome},
		{"Expenses", s.TotalExpenses},
		{"Budget", s.Overview.TotalLimit},
		{"Remaining", s.Overview.Remaining},
	}
	row := 2
	for _, t := range totals {
		if err := f.SetCellValue(sheet, cell(1, row), t.label); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		if err := setMoney(f, sheet, 2, row, t.amount, st.money); err != nil {
			return err
		}
		row++
	}

	row++
	if err := writeHeader(f, sheet, row, []any{"Category", "Spent", "Budget", "Percent"}, st.header); err != nil {
		return err
	}
	row++

	budgeted := make(map[string]engine.CategoryProgress, len(s.Budgets))
	for _, p := range s.Budgets {
		budgeted[p.Category.ID] = p
	}

	for _, e := range s.Breakdown.Entries() {
		if err := f.SetCellValue(sheet, cell(1, row), engine.CategoryName(r.Categories, e.CategoryID)); err != nil {
			return fmt.Errorf("failed to write breakdown: %w", err)
		}
		if err := setMoney(f, sheet, 2, row, e.Amount, st.money); err != nil {
			return err
		}
		if p, ok := budgeted[e.CategoryID]; ok {
			if err := setMoney(f, sheet, 3, row, p.Category.BudgetLimit, st.money); err != nil {
				return err
			}
			if err := f.SetCellFloat(sheet, cell(4, row), p.Percentage.InexactFloat64(), 1, 64); err != nil {
				return fmt.Errorf("failed to write breakdown: %w", err)
			}
		}
		row++
	}

	return f.SetColWidth(sheet, "A", "D", 18)
}
