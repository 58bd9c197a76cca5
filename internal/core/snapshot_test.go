package core

import (
	"testing"
)

func tx(id, amount, date string, extra map[string]any) Transaction {
	t := Transaction{
		"transactionId": id,
		"amount":        amount,
		"date":          date,
	}
	for k, v := range extra {
		t[k] = v
	}
	return t
}

func TestMergeTransactionsAppendsNewKeys(t *testing.T) {
	prior := []Transaction{tx("a", "-1.00", "2024-01-01", nil)}
	fetched := []Transaction{tx("b", "-2.00", "2024-01-02", nil)}

	merged := MergeTransactions(prior, fetched)

	if len(merged) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(merged))
	}
	if merged[0].Identifier() != "a" || merged[1].Identifier() != "b" {
		t.Errorf("order not preserved: %q, %q", merged[0].Identifier(), merged[1].Identifier())
	}
}

func TestMergeTransactionsIdempotent(t *testing.T) {
	fetched := []Transaction{
		tx("a", "-1.00", "2024-01-01", nil),
		tx("b", "-2.00", "2024-01-02", nil),
	}

	once := MergeTransactions(nil, fetched)
	twice := MergeTransactions(once, fetched)

	if len(twice) != 2 {
		t.Fatalf("re-merging the same data must not grow the set, got %d", len(twice))
	}
}

func TestMergeTransactionsFetchedFieldsWin(t *testing.T) {
	prior := []Transaction{tx("a", "-1.00", "2024-01-01", map[string]any{"status": "pending", "note": "old"})}
	fetched := []Transaction{tx("a", "-1.00", "2024-01-01", map[string]any{"status": "booked"})}

	merged := MergeTransactions(prior, fetched)

	if len(merged) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(merged))
	}
	if merged[0]["status"] != "booked" {
		t.Errorf("fetched field must win, got %v", merged[0]["status"])
	}
	if merged[0]["note"] != "old" {
		t.Errorf("prior-only field must survive, got %v", merged[0]["note"])
	}
}

func TestMergeTransactionsPositionStable(t *testing.T) {
	prior := []Transaction{
		tx("a", "-1.00", "2024-01-01", nil),
		tx("b", "-2.00", "2024-01-02", nil),
	}
	fetched := []Transaction{
		tx("a", "-1.00", "2024-01-01", map[string]any{"status": "booked"}),
		tx("c", "-3.00", "2024-01-03", nil),
	}

	merged := MergeTransactions(prior, fetched)

	want := []string{"a", "b", "c"}
	if len(merged) != len(want) {
		t.Fatalf("expected %d transactions, got %d", len(want), len(merged))
	}
	for i, id := range want {
		if merged[i].Identifier() != id {
			t.Errorf("position %d = %q, want %q", i, merged[i].Identifier(), id)
		}
	}
}

func TestMergeTransactionsPriorDuplicatesLastWins(t *testing.T) {
	prior := []Transaction{
		tx("a", "-1.00", "2024-01-01", map[string]any{"version": "old"}),
		tx("a", "-1.00", "2024-01-01", map[string]any{"version": "new"}),
	}

	merged := MergeTransactions(prior, nil)

	if len(merged) != 1 {
		t.Fatalf("expected 1 transaction after dedup, got %d", len(merged))
	}
	if merged[0]["version"] != "new" {
		t.Errorf("last prior duplicate must win, got %v", merged[0]["version"])
	}
}

func TestMergeTransactionsMissingIdentifiersShareKey(t *testing.T) {
	// Transactions without any identifier, amount, or date all derive the
	// key "||" and collapse to one entry.
	fetched := []Transaction{
		{"someField": "x"},
		{"someField": "y"},
	}

	merged := MergeTransactions(nil, fetched)

	if len(merged) != 1 {
		t.Fatalf("expected blank-key transactions to collapse, got %d", len(merged))
	}
	if merged[0]["someField"] != "y" {
		t.Errorf("later fetch must win, got %v", merged[0]["someField"])
	}
}

func TestEmptySnapshot(t *testing.T) {
	snap := EmptySnapshot()
	if snap.Transactions == nil || len(snap.Transactions) != 0 {
		t.Errorf("expected empty non-nil transaction list, got %#v", snap.Transactions)
	}
	if snap.LastUpdated != nil {
		t.Errorf("expected nil LastUpdated, got %v", snap.LastUpdated)
	}
}
