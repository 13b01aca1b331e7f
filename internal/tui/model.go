// Package tui is the interactive monthly dashboard.
package tui

import (
	"context"
	"time"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/engine"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Ledger is what the dashboard reads and mutates.
type Ledger interface {
	Transactions() []model.Transaction
	Categories() []model.Category
	DeleteTransaction(ctx context.Context, id string) error
}

// View represents the current view mode.
type View int

const (
	ViewDashboard View = iota
	ViewTransactions
	ViewBudgets
	ViewYear
	viewCount
)

var viewNames = [viewCount]string{"Dashboard", "Transactions", "Budgets", "Year"}

func (v View) String() string {
	if v < 0 || v >= viewCount {
		return "Unknown"
	}
	return viewNames[v]
}

// Model holds the main TUI state.
type Model struct {
	ledger       Ledger
	theme        themes.Theme
	now          func() time.Time
	lastError    error
	selected     time.Time
	renderer     cli.Renderer
	help         help.Model
	keymap       KeyMap
	transactions []model.Transaction
	categories   []model.Category
	period       []model.Transaction
	summary      engine.Summary
	recentCount  int
	cursor       int
	width        int
	height       int
	view         View
	status       string
	quitting     bool
	ready        bool
}

// newModel creates a model starting on the current month.
func newModel(ledger Ledger, cfg Config) Model {
	return Model{
		ledger:      ledger,
		theme:       cfg.Theme,
		now:         cfg.Now,
		selected:    engine.MonthStart(cfg.Now()),
		renderer:    cli.NewRenderer(cfg.Currency),
		help:        help.New(),
		keymap:      DefaultKeyMap(),
		recentCount: cfg.RecentCount,
		width:       cfg.Width,
		height:      cfg.Height,
		view:        ViewDashboard,
	}
}

// Init loads the first snapshot.
func (m Model) Init() tea.Cmd {
	return m.loadLedger()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case ledgerLoadedMsg:
		m.transactions = msg.transactions
		m.categories = msg.categories
		m.ready = true
		m.recompute()

	case transactionDeletedMsg:
		m.status = "Deleted transaction " + msg.id
		return m, m.loadLedger()

	case errorMsg:
		m.lastError = msg.err
		m.status = msg.context + " failed"
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.PrevMonth):
		m.selectMonth(engine.ShiftMonth(m.selected, -1))

	case key.Matches(msg, m.keymap.NextMonth):
		m.selectMonth(engine.ShiftMonth(m.selected, 1))

	case key.Matches(msg, m.keymap.Today):
		m.selectMonth(engine.MonthStart(m.now()))

	case key.Matches(msg, m.keymap.NextView):
		m.view = (m.view + 1) % viewCount
		m.cursor = 0

	case key.Matches(msg, m.keymap.PrevView):
		m.view = (m.view + viewCount - 1) % viewCount
		m.cursor = 0

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.period)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Delete):
		if m.view == ViewTransactions && m.cursor < len(m.period) {
			return m, m.deleteTransaction(m.period[m.cursor].ID)
		}

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.loadLedger()
	}

	return m, nil
}

func (m *Model) selectMonth(month time.Time) {
	m.selected = month
	m.cursor = 0
	m.status = ""
	m.recompute()
}

// recompute derives every view from the current snapshot.
func (m *Model) recompute() {
	m.summary = engine.Summarize(m.transactions, m.categories, m.selected, m.recentCount)
	m.period = engine.Query(m.summary.Period, engine.TransactionQuery{
		SortBy:     engine.SortByDate,
		Descending: true,
	})
	if m.cursor >= len(m.period) {
		m.cursor = max(0, len(m.period)-1)
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}
	return m.render()
}

// Selected returns the first day of the month being shown.
func (m Model) Selected() time.Time { return m.selected }

// CurrentView returns the active view.
func (m Model) CurrentView() View { return m.view }
