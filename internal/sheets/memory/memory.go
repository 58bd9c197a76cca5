// Package memory provides an in-memory transaction appender, useful in
// tests and when no spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"github.com/ortiq01/financial-dashboard/internal/core"
)

// Store collects appended transactions in memory.
type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
}

func NewStore() *Store {
	return &Store{}
}

// AppendTransactions records the given transactions.
func (s *Store) AppendTransactions(_ context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, txs...)
	return nil
}

// Transactions returns a copy of everything appended so far.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}
