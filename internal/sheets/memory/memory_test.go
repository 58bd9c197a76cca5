package memory

import (
	"context"
	"testing"

	"github.com/ortiq01/financial-dashboard/internal/core"
)

func TestStoreAppendAndList(t *testing.T) {
	s := NewStore()
	if got := s.Transactions(); len(got) != 0 {
		t.Fatalf("expected empty store, got %d transactions", len(got))
	}

	batch := []core.Transaction{
		{"transactionId": "t1", "amount": "-10.00"},
		{"transactionId": "t2", "amount": "5.50"},
	}
	if err := s.AppendTransactions(context.Background(), batch); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendTransactions(context.Background(), []core.Transaction{{"transactionId": "t3"}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got := s.Transactions()
	if len(got) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(got))
	}
	if got[0].Identifier() != "t1" || got[2].Identifier() != "t3" {
		t.Errorf("unexpected order: %q, %q", got[0].Identifier(), got[2].Identifier())
	}
}

func TestStoreReturnsCopy(t *testing.T) {
	s := NewStore()
	_ = s.AppendTransactions(context.Background(), []core.Transaction{{"transactionId": "t1"}})

	got := s.Transactions()
	got[0] = core.Transaction{"transactionId": "mutated"}

	if s.Transactions()[0].Identifier() != "t1" {
		t.Error("mutating the returned slice changed the store")
	}
}
