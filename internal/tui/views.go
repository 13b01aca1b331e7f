package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/engine"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const barWidth = 20

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Loading budget..."),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Reading transactions and categories"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) render() string {
	sections := []string{m.renderHeader(), ""}

	switch m.view {
	case ViewDashboard:
		sections = append(sections, m.renderDashboard())
	case ViewTransactions:
		sections = append(sections, m.renderTransactions())
	case ViewBudgets:
		sections = append(sections, m.renderBudgets())
	case ViewYear:
		sections = append(sections, m.renderYear())
	}

	sections = append(sections, "", m.renderStatus(), m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("‹ " + m.selected.Format("January 2006") + " ›")

	tabs := make([]string, 0, viewCount)
	for v := View(0); v < viewCount; v++ {
		style := m.theme.Tab
		if v == m.view {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(v.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) card(label string, value string) string {
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Subtitle.Render(label),
		value))
}

func (m Model) renderDashboard() string {
	s := m.summary
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Balance", m.theme.Bold.Render(m.renderer.Money(s.Balance))),
		m.card("Income", m.theme.Income.Render(m.renderer.Money(s.TotalIncome))),
		m.card("Expenses", m.theme.Expense.Render(m.renderer.Money(s.TotalExpenses))),
	)

	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("Spending by category"))
	b.WriteString("\n")
	if s.Breakdown.Len() == 0 {
		b.WriteString(m.theme.Subtitle.Render("No expenses this month"))
		b.WriteString("\n")
	}
	for _, e := range s.Breakdown.Entries() {
		fmt.Fprintf(&b, "%s %-20s %12s\n",
			cli.Swatch(engine.CategoryColor(m.categories, e.CategoryID)),
			engine.CategoryName(m.categories, e.CategoryID),
			m.renderer.Money(e.Amount))
	}

	if len(s.Recent) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Bold.Render("Recent transactions"))
		b.WriteString("\n")
		for _, t := range s.Recent {
			fmt.Fprintf(&b, "%s  %-24s %s\n", t.Date.Format(cli.DateLayout), t.Description, m.renderer.Signed(t))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, "", b.String())
}

func (m Model) renderTransactions() string {
	if len(m.period) == 0 {
		return m.theme.Subtitle.Render("No transactions in " + m.selected.Format("January 2006"))
	}

	lines := make([]string, 0, len(m.period))
	for i, t := range m.period {
		line := fmt.Sprintf("%s  %-24s %-18s %s",
			t.Date.Format(cli.DateLayout),
			t.Description,
			engine.CategoryName(m.categories, t.Category),
			m.renderer.Signed(t))
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBudgets() string {
	if len(m.summary.Budgets) == 0 {
		return m.theme.Subtitle.Render("No categories have a budget")
	}

	var b strings.Builder
	for _, p := range m.summary.Budgets {
		style := m.theme.StatusSuccess
		switch {
		case p.OverBudget():
			style = m.theme.StatusError
		case p.Percentage.GreaterThanOrEqual(decimal.NewFromInt(80)):
			style = m.theme.StatusWarning
		}
		fmt.Fprintf(&b, "%-20s %s %7s  %s / %s\n",
			p.Category.Name,
			style.Render(cli.Bar(p.Percentage, barWidth)),
			cli.Percent(p.Percentage),
			m.renderer.Money(p.Spent),
			m.renderer.Money(p.Category.BudgetLimit))
	}

	o := m.summary.Overview
	fmt.Fprintf(&b, "\n%-20s %s %7s  %s remaining",
		"Total",
		cli.Bar(o.Percentage, barWidth),
		cli.Percent(o.Percentage),
		m.renderer.Money(o.Remaining))
	if o.OverBudget {
		b.WriteString("  " + m.theme.StatusError.Render("over budget"))
	}
	return b.String()
}

func (m Model) renderYear() string {
	year := m.selected.Year()
	return m.renderer.Monthly(year, engine.MonthlyTotals(m.transactions, year, m.selected.Location()))
}

func (m Model) renderStatus() string {
	if m.lastError != nil {
		return m.theme.StatusError.Render(m.status + ": " + m.lastError.Error())
	}
	return m.theme.Subtitle.Render(m.status)
}
