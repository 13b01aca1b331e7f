package tui

import "github.com/Veraticus/budget/internal/model"

// ledgerLoadedMsg carries a fresh snapshot of the ledger.
type ledgerLoadedMsg struct {
	transactions []model.Transaction
	categories   []model.Category
}

// transactionDeletedMsg reports a completed delete.
type transactionDeletedMsg struct {
	id string
}

// errorMsg reports a failed ledger operation.
type errorMsg struct {
	err     error
	context string
}
