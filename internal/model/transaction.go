// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	// TypeIncome adds to the balance.
	TypeIncome TransactionType = "income"
	// TypeExpense subtracts from the balance.
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType parses a type name case-insensitively.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome, true
	case TypeExpense:
		return TypeExpense, true
	default:
		return "", false
	}
}

// Transaction is a single dated income or expense record.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Signed returns the amount with the sign implied by the type.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool { return t.Type == TypeIncome }

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }

// TransactionInput carries the caller-provided fields of a new transaction.
// A zero Date means "now".
type TransactionInput struct {
	Date        time.Time
	Type        TransactionType
	Category    string
	Description string
	Amount      decimal.Decimal
}

// Hash creates a fingerprint used to drop duplicates within one import.
func (in TransactionInput) Hash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		in.Date.Format("2006-01-02"),
		in.Amount.StringFixed(2),
		in.Type,
		in.Description)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// TransactionPatch holds the fields to merge onto an existing transaction.
// Nil fields are left untouched; the ID can never be patched.
type TransactionPatch struct {
	Date        *time.Time
	Type        *TransactionType
	Category    *string
	Description *string
	Amount      *decimal.Decimal
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Date == nil && p.Type == nil && p.Category == nil && p.Description == nil && p.Amount == nil
}

// Apply returns t with the patch merged on top.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = NormalizeAmount(*p.Amount)
	}
	return t
}
