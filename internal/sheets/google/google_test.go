package google

import (
	"testing"

	"github.com/ortiq01/financial-dashboard/internal/core"
)

func TestTransactionRows(t *testing.T) {
	txs := []core.Transaction{
		{
			"transactionId": "t1",
			"amount":        "-42.50",
			"currency":      "EUR",
			"date":          "2024-03-01",
			"description":   "ALBERT HEIJN 1573",
			"accountId":     "acc-1",
		},
		{
			"transactionId": "t2",
		},
	}

	rows := transactionRows(txs)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	want := []any{"2024-03-01", "ALBERT HEIJN 1573", "-42.50", "EUR", "acc-1", core.SourceGoCardless}
	for i, v := range want {
		if rows[0][i] != v {
			t.Errorf("row[0][%d] = %v, want %v", i, rows[0][i], v)
		}
	}

	// Missing fields produce empty cells, not panics.
	if rows[1][0] != "" || rows[1][2] != "" {
		t.Errorf("expected empty cells for missing fields, got %v", rows[1])
	}
}

func TestTransactionRowsEmpty(t *testing.T) {
	if rows := transactionRows(nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
