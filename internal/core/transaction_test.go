package core

import (
	"testing"
)

func TestDecodeTransactionKeepsAmountExact(t *testing.T) {
	raw := []byte(`{"transactionId":"t1","transactionAmount":{"amount":"-10.10","currency":"EUR"}}`)
	tx, err := DecodeTransaction(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := tx.Amount(); got != "-10.10" {
		t.Errorf("Amount() = %q, want -10.10", got)
	}
	if got := tx.Currency(); got != "EUR" {
		t.Errorf("Currency() = %q, want EUR", got)
	}
}

func TestDecodeTransactionNumericAmount(t *testing.T) {
	// Some providers send the amount as a JSON number; the decimal string
	// must survive without float formatting artifacts.
	raw := []byte(`{"transactionId":"t1","amount":-10.10}`)
	tx, err := DecodeTransaction(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := tx.Amount(); got != "-10.10" {
		t.Errorf("Amount() = %q, want -10.10", got)
	}
}

func TestIdentifierResolutionOrder(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want string
	}{
		{
			name: "transactionId wins",
			tx:   Transaction{"transactionId": "a", "internalTransactionId": "b", "endToEndId": "c"},
			want: "a",
		},
		{
			name: "internalTransactionId second",
			tx:   Transaction{"internalTransactionId": "b", "endToEndId": "c"},
			want: "b",
		},
		{
			name: "endToEndId last",
			tx:   Transaction{"endToEndId": "c"},
			want: "c",
		},
		{
			name: "none present",
			tx:   Transaction{"bookingDate": "2024-01-01"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.Identifier(); got != tt.want {
				t.Errorf("Identifier() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateFallsBackToValueDate(t *testing.T) {
	tx := Transaction{"valueDate": "2024-02-02"}
	if got := tx.Date(); got != "2024-02-02" {
		t.Errorf("Date() = %q, want 2024-02-02", got)
	}
	tx["bookingDate"] = "2024-01-01"
	if got := tx.Date(); got != "2024-01-01" {
		t.Errorf("Date() = %q, want bookingDate to win, got %q", "2024-01-01", got)
	}
}

func TestDescriptionResolution(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want string
	}{
		{
			name: "unstructured remittance wins",
			tx: Transaction{
				"remittanceInformationUnstructured": "ALBERT HEIJN 1573",
				"creditorName":                      "Albert Heijn BV",
			},
			want: "ALBERT HEIJN 1573",
		},
		{
			name: "array joined with spaces",
			tx: Transaction{
				"remittanceInformationUnstructuredArray": []any{"NS", "GROEP", "REIZEN"},
			},
			want: "NS GROEP REIZEN",
		},
		{
			name: "creditor name fallback",
			tx:   Transaction{"creditorName": "Basic Fit"},
			want: "Basic Fit",
		},
		{
			name: "debtor name fallback",
			tx:   Transaction{"debtorName": "Werkgever BV"},
			want: "Werkgever BV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.Description(); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	tx := Transaction{
		"transactionId": "t1",
		"transactionAmount": map[string]any{
			"amount": "-10.00",
		},
		"bookingDate": "2024-03-01",
	}
	if got := tx.Key(); got != "t1|-10.00|2024-03-01" {
		t.Errorf("Key() = %q", got)
	}

	empty := Transaction{}
	if got := empty.Key(); got != "||" {
		t.Errorf("empty Key() = %q, want ||", got)
	}
}

func TestHasNumericAmount(t *testing.T) {
	numeric := Transaction{"amount": "-12.50"}
	if !numeric.HasNumericAmount() {
		t.Error("expected -12.50 to be numeric")
	}
	weird := Transaction{"amount": "PENDING"}
	if weird.HasNumericAmount() {
		t.Error("expected PENDING to be non-numeric")
	}
	if got := weird.Amount(); got != "PENDING" {
		t.Errorf("non-numeric amount must still propagate, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	tx := Transaction{
		"transactionId": "t1",
		"transactionAmount": map[string]any{
			"amount":   "-5.25",
			"currency": "EUR",
		},
		"bookingDate":  "2024-03-01",
		"creditorName": "Basic Fit",
	}

	norm := tx.Normalize("acc-1")

	if norm[KeyAccountID] != "acc-1" {
		t.Errorf("accountId = %v", norm[KeyAccountID])
	}
	if norm[KeyAmount] != "-5.25" {
		t.Errorf("amount = %v", norm[KeyAmount])
	}
	if norm[KeyCurrency] != "EUR" {
		t.Errorf("currency = %v", norm[KeyCurrency])
	}
	if norm[KeyDate] != "2024-03-01" {
		t.Errorf("date = %v", norm[KeyDate])
	}
	if norm[KeyDescription] != "Basic Fit" {
		t.Errorf("description = %v", norm[KeyDescription])
	}
	if norm[KeySource] != SourceGoCardless {
		t.Errorf("source = %v", norm[KeySource])
	}
	// Provider fields survive.
	if norm["transactionId"] != "t1" {
		t.Error("provider fields must be preserved")
	}
	// Original is untouched.
	if _, ok := tx[KeySource]; ok {
		t.Error("Normalize must not mutate the receiver")
	}
}

func TestMergeFieldPrecedence(t *testing.T) {
	old := Transaction{"transactionId": "t1", "status": "pending", "note": "keep"}
	newer := Transaction{"transactionId": "t1", "status": "booked"}

	merged := old.Merge(newer)

	if merged["status"] != "booked" {
		t.Errorf("newer field must win, got %v", merged["status"])
	}
	if merged["note"] != "keep" {
		t.Errorf("fields only in old must survive, got %v", merged["note"])
	}
}
