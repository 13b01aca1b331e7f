// Package ledger owns the in-memory transaction and category collections and
// keeps them flushed to a key-value storage.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/service"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Storage keys for the two persisted collections.
const (
	TransactionsKey = "transactions"
	CategoriesKey   = "categories"
)

// Store is the single source of truth for transactions and categories.
//
// Every mutation flushes the affected collection before returning. The lock
// is held across mutate and flush, so saves for one key land in the order
// the mutations were issued.
type Store struct {
	storage      service.Storage
	now          func() time.Time
	newID        func() string
	transactions []model.Transaction
	categories   []model.Category
	mu           sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for default dates and batch ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how single transactions get their ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open loads both collections from storage. Categories fall back to
// model.DefaultCategories when nothing has been saved yet.
func Open(ctx context.Context, storage service.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: storage,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	var (
		txns []model.Transaction
		cats []model.Category
		seen bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := load(gctx, storage, TransactionsKey, &txns)
		return err
	})
	g.Go(func() error {
		var err error
		seen, err = load(gctx, storage, CategoriesKey, &cats)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !seen {
		cats = model.DefaultCategories()
	}
	s.transactions = txns
	s.categories = cats

	slog.Debug("ledger opened",
		"transactions", len(s.transactions),
		"categories", len(s.categories),
		"default_categories", !seen)
	return s, nil
}

func load(ctx context.Context, storage service.Storage, key string, dst any) (bool, error) {
	blob, ok, err := storage.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(blob, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Transactions returns a copy of all transactions, most recently added first.
func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Transaction(nil), s.transactions...)
}

// Categories returns a copy of all categories in declaration order.
func (s *Store) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Category(nil), s.categories...)
}

// Transaction looks up a transaction by id.
func (s *Store) Transaction(id string) (model.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.transactionIndex(id); i >= 0 {
		return s.transactions[i], true
	}
	return model.Transaction{}, false
}

// Category looks up a category by id. Transactions may reference deleted
// categories, so callers must handle the not-found case.
func (s *Store) Category(id string) (model.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.categoryIndex(id); i >= 0 {
		return s.categories[i], true
	}
	return model.Category{}, false
}

func (s *Store) transactionIndex(id string) int {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) categoryIndex(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) flushTransactions(ctx context.Context) error {
	return s.flush(ctx, TransactionsKey, s.transactions)
}

func (s *Store) flushCategories(ctx context.Context) error {
	return s.flush(ctx, CategoriesKey, s.categories)
}

func (s *Store) flush(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	// json.Marshal renders a nil slice as null; keep the stored shape a list.
	if string(blob) == "null" {
		blob = []byte("[]")
	}
	if err := s.storage.Save(ctx, key, blob); err != nil {
		return fmt.Errorf("failed to flush %s: %w", key, err)
	}
	slog.Debug("flushed", "key", key, "bytes", len(blob))
	return nil
}
