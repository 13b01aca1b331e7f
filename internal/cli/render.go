package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/budget/internal/engine"
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// DateLayout is how transaction dates are printed.
const DateLayout = "2006-01-02"

const barWidth = 20

// Renderer turns engine views into terminal text.
type Renderer struct {
	Currency string
}

// NewRenderer creates a renderer that prefixes amounts with currency.
func NewRenderer(currency string) Renderer {
	return Renderer{Currency: currency}
}

// Money formats d with two decimals and thousands separators, e.g. "$1,234.50".
func (r Renderer) Money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + r.Currency + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Signed formats a transaction amount with a +/- prefix and its type color.
func (r Renderer) Signed(t model.Transaction) string {
	if t.IsIncome() {
		return IncomeStyle.Render("+" + r.Money(t.Amount))
	}
	return ExpenseStyle.Render("-" + r.Money(t.Amount))
}

// Percent formats a percentage with one decimal.
func Percent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// Bar draws a progress bar of width cells. The fill is clamped to 100% for
// display; the caller prints the real percentage next to it.
func Bar(p decimal.Decimal, width int) string {
	filled := int(p.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).IntPart())
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// progressStyle colors a budget bar by how much of it is used.
func progressStyle(p decimal.Decimal) func(...string) string {
	switch {
	case p.GreaterThan(decimal.NewFromInt(100)):
		return ExpenseStyle.Render
	case p.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return WarningStyle.Render
	default:
		return IncomeStyle.Render
	}
}

// Summary renders the monthly dashboard.
func (r Renderer) Summary(s engine.Summary, cats []model.Category) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Budget for " + s.Selected.Format("January 2006")))
	b.WriteString("\n")

	stats := fmt.Sprintf("%-10s %s\n%-10s %s\n%-10s %s",
		"Balance", BoldStyle.Render(r.Money(s.Balance)),
		"Income", IncomeStyle.Render(r.Money(s.TotalIncome)),
		"Expenses", ExpenseStyle.Render(r.Money(s.TotalExpenses)))
	b.WriteString(RenderBox("Overview", stats))
	b.WriteString("\n\n")

	b.WriteString(BoldStyle.Render("Spending by category"))
	b.WriteString("\n")
	if s.Breakdown.Len() == 0 {
		b.WriteString(SubtleStyle.Render("  No expenses this month"))
		b.WriteString("\n")
	}
	for _, e := range s.Breakdown.Entries() {
		share := decimal.Zero
		if s.TotalExpenses.IsPositive() {
			share = e.Amount.Mul(decimal.NewFromInt(100)).Div(s.TotalExpenses)
		}
		fmt.Fprintf(&b, "  %s %-20s %12s  %6s\n",
			Swatch(engine.CategoryColor(cats, e.CategoryID)),
			engine.CategoryName(cats, e.CategoryID),
			r.Money(e.Amount),
			Percent(share))
	}
	b.WriteString("\n")

	if len(s.Budgets) > 0 {
		b.WriteString(BoldStyle.Render("Budget progress"))
		b.WriteString("\n")
		for _, p := range s.Budgets {
			fmt.Fprintf(&b, "  %-20s %s %7s  %s / %s\n",
				p.Category.Name,
				progressStyle(p.Percentage)(Bar(p.Percentage, barWidth)),
				Percent(p.Percentage),
				r.Money(p.Spent),
				r.Money(p.Category.BudgetLimit))
		}
		o := s.Overview
		status := SuccessStyle.Render(r.Money(o.Remaining) + " remaining")
		if o.OverBudget {
			status = ErrorStyle.Render("over budget by " + r.Money(o.Spent.Sub(o.TotalLimit)))
		}
		fmt.Fprintf(&b, "  %-20s %s %7s  %s\n\n", "Total", Bar(o.Percentage, barWidth), Percent(o.Percentage), status)
	}

	if len(s.Recent) > 0 {
		b.WriteString(BoldStyle.Render("Recent transactions"))
		b.WriteString("\n")
		for _, t := range s.Recent {
			fmt.Fprintf(&b, "  %s  %-24s %-20s %s\n",
				t.Date.Format(DateLayout),
				t.Description,
				engine.CategoryName(cats, t.Category),
				r.Signed(t))
		}
	}

	return b.String()
}

// Transactions writes a transaction table to w.
func (r Renderer) Transactions(w io.Writer, txns []model.Transaction, cats []model.Category) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(w, InfoStyle.Render("No transactions found. Use 'budget tx add' or 'budget import csv' to add some."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Date"),
		TableHeaderStyle.Render("Description"),
		TableHeaderStyle.Render("Category"),
		TableHeaderStyle.Render("Type"),
		TableHeaderStyle.Render("Amount"))
	for _, t := range txns {
		amount := "+" + r.Money(t.Amount)
		if t.IsExpense() {
			amount = "-" + r.Money(t.Amount)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Date.Format(DateLayout),
			t.Description,
			engine.CategoryName(cats, t.Category),
			t.Type,
			amount)
	}
	return tw.Flush()
}

// Categories writes the category table to w.
func (r Renderer) Categories(w io.Writer, cats []model.Category) error {
	if len(cats) == 0 {
		_, err := fmt.Fprintln(w, InfoStyle.Render("No categories found. Use 'budget categories add' to create one."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Name"),
		TableHeaderStyle.Render("Color"),
		TableHeaderStyle.Render("Budget"))
	for _, c := range cats {
		budget := SubtleStyle.Render("none")
		if c.HasBudget() {
			budget = r.Money(c.BudgetLimit)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\n", c.ID, c.Name, Swatch(c.Color), c.Color, budget)
	}
	return tw.Flush()
}

// Monthly renders a year of income and expense bars scaled to the largest
// month.
func (r Renderer) Monthly(year int, months []engine.MonthTotals) string {
	var b strings.Builder
	b.WriteString(FormatTitle(fmt.Sprintf("%s Monthly overview %d", ChartIcon, year)))
	b.WriteString("\n")

	peak := decimal.Zero
	for _, m := range months {
		peak = decimal.Max(peak, m.Income, m.Expenses)
	}
	scale := func(d decimal.Decimal) decimal.Decimal {
		if !peak.IsPositive() {
			return decimal.Zero
		}
		return d.Mul(decimal.NewFromInt(100)).Div(peak)
	}

	for _, m := range months {
		fmt.Fprintf(&b, "%s  %s %12s\n     %s %12s\n",
			m.Month.String()[:3],
			IncomeStyle.Render(Bar(scale(m.Income), barWidth)), r.Money(m.Income),
			ExpenseStyle.Render(Bar(scale(m.Expenses), barWidth)), r.Money(m.Expenses))
	}
	return b.String()
}
