package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const mutationTimeout = 10 * time.Second

// loadLedger snapshots the ledger's collections.
func (m Model) loadLedger() tea.Cmd {
	ledger := m.ledger
	return func() tea.Msg {
		return ledgerLoadedMsg{
			transactions: ledger.Transactions(),
			categories:   ledger.Categories(),
		}
	}
}

// deleteTransaction removes a transaction and reports back.
func (m Model) deleteTransaction(id string) tea.Cmd {
	ledger := m.ledger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()

		if err := ledger.DeleteTransaction(ctx, id); err != nil {
			return errorMsg{err: err, context: "delete transaction"}
		}
		return transactionDeletedMsg{id: id}
	}
}
