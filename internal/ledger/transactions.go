package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/Veraticus/budget/internal/model"
)

// AddTransaction stores a new transaction at the front of the collection.
// It assigns a fresh id and defaults a zero Date to now. Negative amounts
// are coerced to zero; nothing else is validated.
func (s *Store) AddTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := s.newTransaction(in, s.newID())
	s.transactions = slices.Insert(s.transactions, 0, txn)

	if err := s.flushTransactions(ctx); err != nil {
		return txn, err
	}
	return txn, nil
}

// AddTransactions stores a batch at the front of the collection, keeping the
// batch's own order. Ids share one timestamp and differ by position; the
// timestamp moves forward past any batch already holding it.
func (s *Store) AddTransactions(ctx context.Context, batch []model.TransactionInput) ([]model.Transaction, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.batchStamp(len(batch))
	added := make([]model.Transaction, len(batch))
	for i, in := range batch {
		added[i] = s.newTransaction(in, batchID(stamp, i))
	}
	s.transactions = slices.Insert(s.transactions, 0, added...)

	if err := s.flushTransactions(ctx); err != nil {
		return added, err
	}
	return added, nil
}

// batchStamp returns the first millisecond, starting at now, whose
// <stamp>-<index> ids are all free for a batch of size n.
func (s *Store) batchStamp(n int) int64 {
	stamp := s.now().UnixMilli()
	for i := 0; i < n; i++ {
		if s.transactionIndex(batchID(stamp, i)) >= 0 {
			stamp++
			i = -1
		}
	}
	return stamp
}

func batchID(stamp int64, i int) string {
	return fmt.Sprintf("%d-%d", stamp, i)
}

func (s *Store) newTransaction(in model.TransactionInput, id string) model.Transaction {
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	return model.Transaction{
		ID:          id,
		Date:        date,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
		Amount:      model.NormalizeAmount(in.Amount),
	}
}

// UpdateTransaction merges patch onto the transaction with the given id.
// Unknown ids are ignored.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.transactionIndex(id)
	if i < 0 {
		return nil
	}
	s.transactions[i] = patch.Apply(s.transactions[i])

	return s.flushTransactions(ctx)
}

// DeleteTransaction removes the transaction with the given id.
// Unknown ids are ignored.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.transactionIndex(id)
	if i < 0 {
		return nil
	}
	s.transactions = slices.Delete(s.transactions, i, i+1)

	return s.flushTransactions(ctx)
}
