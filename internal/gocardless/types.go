package gocardless

import (
	"encoding/json"

	"github.com/ortiq01/financial-dashboard/internal/core"
)

// Requisition is a completed end-user bank linking session. Its Accounts
// list carries the account identifiers transactions can be fetched for.
type Requisition struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	Reference string   `json:"reference,omitempty"`
	Accounts  []string `json:"accounts"`
}

// requisitionList accepts both response shapes the API has used: the
// paginated {count, results: [...]} envelope and a bare array.
type requisitionList struct {
	Results []Requisition
}

func (l *requisitionList) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Results []Requisition `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Results != nil {
		l.Results = envelope.Results
		return nil
	}
	var bare []Requisition
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	l.Results = bare
	return nil
}

// TransactionPage is the per-account transaction listing. Booked entries
// feed the sync pipeline; pending ones are exposed but unused by it.
type TransactionPage struct {
	Booked  []core.Transaction
	Pending []core.Transaction
}

// The API nests the lists under a "transactions" object; some responses
// return them at the top level. Accept both.
func (p *TransactionPage) UnmarshalJSON(data []byte) error {
	var wire struct {
		Transactions *struct {
			Booked  []json.RawMessage `json:"booked"`
			Pending []json.RawMessage `json:"pending"`
		} `json:"transactions"`
		Booked  []json.RawMessage `json:"booked"`
		Pending []json.RawMessage `json:"pending"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	booked, pending := wire.Booked, wire.Pending
	if wire.Transactions != nil {
		booked, pending = wire.Transactions.Booked, wire.Transactions.Pending
	}
	var err error
	if p.Booked, err = decodeAll(booked); err != nil {
		return err
	}
	p.Pending, err = decodeAll(pending)
	return err
}

func decodeAll(raw []json.RawMessage) ([]core.Transaction, error) {
	txs := make([]core.Transaction, 0, len(raw))
	for _, msg := range raw {
		tx, err := core.DecodeTransaction(msg)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// TransactionOptions are pass-through query parameters for the transaction
// listing, notably the booked-only restriction.
type TransactionOptions struct {
	// Include restricts the listing, e.g. "booked".
	Include string
	// DateFrom and DateTo bound the listing when set (YYYY-MM-DD).
	DateFrom string
	DateTo   string
}
