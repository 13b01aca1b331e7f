// Package testutil provides shared fixtures for ledger, engine, and command tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/budget/internal/ledger"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/storage"
	"github.com/shopspring/decimal"
)

// FixedNow is the clock used by SetupTestLedger.
var FixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// TestLedger bundles a store with the in-memory storage behind it.
type TestLedger struct {
	Store   *ledger.Store
	Storage *storage.MemoryStorage
	t       *testing.T
}

// SetupTestLedger opens a ledger over fresh in-memory storage with a fixed
// clock. Extra options are applied after the defaults.
func SetupTestLedger(t *testing.T, opts ...ledger.Option) *TestLedger {
	t.Helper()

	mem := storage.NewMemoryStorage()
	all := append([]ledger.Option{ledger.WithClock(func() time.Time { return FixedNow })}, opts...)

	store, err := ledger.Open(context.Background(), mem, all...)
	if err != nil {
		t.Fatalf("failed to open test ledger: %v", err)
	}

	t.Cleanup(func() { _ = mem.Close() })

	return &TestLedger{Store: store, Storage: mem, t: t}
}

// MustAdd adds a transaction or fails the test.
func (l *TestLedger) MustAdd(in model.TransactionInput) model.Transaction {
	l.t.Helper()
	txn, err := l.Store.AddTransaction(context.Background(), in)
	if err != nil {
		l.t.Fatalf("failed to add transaction: %v", err)
	}
	return txn
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Amount parses a decimal literal, panicking on bad test input.
func Amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Income builds an income input in the income category.
func Income(amount string, date time.Time) model.TransactionInput {
	return model.TransactionInput{
		Type:        model.TypeIncome,
		Amount:      Amount(amount),
		Category:    model.IncomeCategoryID,
		Description: "Salary",
		Date:        date,
	}
}

// Expense builds an expense input.
func Expense(amount, category string, date time.Time) model.TransactionInput {
	return model.TransactionInput{
		Type:        model.TypeExpense,
		Amount:      Amount(amount),
		Category:    category,
		Description: "Purchase",
		Date:        date,
	}
}

// Txn builds a stored transaction directly, for pure engine tests.
func Txn(id string, typ model.TransactionType, amount, category string, date time.Time) model.Transaction {
	return model.Transaction{
		ID:          id,
		Type:        typ,
		Amount:      Amount(amount),
		Category:    category,
		Description: id,
		Date:        date,
	}
}
