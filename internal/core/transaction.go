// Package core provides the domain types shared across the dashboard:
// bank transactions, the persisted sync snapshot, and savings accounts.
package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// SourceGoCardless tags transactions fetched from the GoCardless
// Bank Account Data API.
const SourceGoCardless = "gocardless"

// Canonical keys written during normalization. They overwrite same-named
// provider fields; every other provider field is preserved verbatim.
const (
	KeyAccountID   = "accountId"
	KeyAmount      = "amount"
	KeyCurrency    = "currency"
	KeyDate        = "date"
	KeyDescription = "description"
	KeySource      = "source"
)

// Transaction is a single bank transaction as a flat JSON object.
//
// Aggregator providers disagree on field names, so the raw object is kept
// as-is and logical fields are resolved through ordered candidate paths
// (see fieldPath). Amounts are decoded as json.Number so decimal strings
// survive round trips untouched.
type Transaction map[string]any

// fieldPath addresses one candidate location of a logical field inside the
// raw object, e.g. {"transactionAmount", "amount"} for a nested amount.
type fieldPath []string

var (
	identifierPaths = []fieldPath{
		{"transactionId"},
		{"internalTransactionId"},
		{"endToEndId"},
	}
	amountPaths = []fieldPath{
		{"transactionAmount", "amount"},
		{"amount"},
	}
	currencyPaths = []fieldPath{
		{"transactionAmount", "currency"},
		{"currency"},
	}
	datePaths = []fieldPath{
		{"bookingDate"},
		{"valueDate"},
		{"date"},
	}
	descriptionPaths = []fieldPath{
		{"remittanceInformationUnstructured"},
		{"remittanceInformationUnstructuredArray"},
		{"creditorName"},
		{"debtorName"},
		{"description"},
	}
)

// DecodeTransaction parses a raw aggregator transaction object. Numbers are
// kept as json.Number so amounts remain exact decimal strings.
func DecodeTransaction(data []byte) (Transaction, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tx Transaction
	if err := dec.Decode(&tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// resolve walks the candidate paths in order and returns the first non-empty
// value rendered as a string. String arrays are joined with a single space.
func (t Transaction) resolve(paths []fieldPath) string {
	for _, path := range paths {
		if s := stringAt(t, path); s != "" {
			return s
		}
	}
	return ""
}

func stringAt(obj map[string]any, path fieldPath) string {
	var v any = obj
	for _, key := range path {
		m, ok := v.(map[string]any)
		if !ok {
			if tx, ok2 := v.(Transaction); ok2 {
				m = map[string]any(tx)
			} else {
				return ""
			}
		}
		v = m[key]
	}
	return stringValue(v)
}

// stringValue renders a decoded JSON value as the string the original wire
// format carried. Arrays of strings join with spaces (the unstructured
// remittance array case).
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := stringValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// Identifier returns the first present identifier candidate, or "".
func (t Transaction) Identifier() string { return t.resolve(identifierPaths) }

// Amount returns the transaction amount as a decimal string.
func (t Transaction) Amount() string { return t.resolve(amountPaths) }

// Currency returns the transaction currency code.
func (t Transaction) Currency() string { return t.resolve(currencyPaths) }

// Date returns the booking date, falling back to value date.
func (t Transaction) Date() string { return t.resolve(datePaths) }

// Description returns the best available human-readable description.
func (t Transaction) Description() string { return t.resolve(descriptionPaths) }

// AccountID returns the account the transaction was fetched for.
func (t Transaction) AccountID() string { return stringValue(t[KeyAccountID]) }

// Key derives the dedup key: identifier, amount and date joined with "|".
// Two transactions sharing a key are the same logical transaction.
func (t Transaction) Key() string {
	return t.Identifier() + "|" + t.Amount() + "|" + t.Date()
}

// HasNumericAmount reports whether the resolved amount parses as a decimal
// number. Non-numeric amounts are propagated as opaque strings; callers use
// this to surface them in logs.
func (t Transaction) HasNumericAmount() bool {
	_, err := strconv.ParseFloat(t.Amount(), 64)
	return err == nil
}

// Normalize overwrites the canonical keys on a copy of the raw transaction,
// resolving each logical field through its candidate paths. The original
// provider fields stay in place alongside the canonical ones.
func (t Transaction) Normalize(accountID string) Transaction {
	norm := make(Transaction, len(t)+6)
	for k, v := range t {
		norm[k] = v
	}
	norm[KeyAccountID] = accountID
	norm[KeyAmount] = t.Amount()
	norm[KeyCurrency] = t.Currency()
	norm[KeyDate] = t.Date()
	norm[KeyDescription] = t.Description()
	norm[KeySource] = SourceGoCardless
	return norm
}

// Merge overlays newer on top of t field by field and returns the result.
// Fields present only in t survive; conflicting fields take newer's value.
func (t Transaction) Merge(newer Transaction) Transaction {
	merged := make(Transaction, len(t)+len(newer))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range newer {
		merged[k] = v
	}
	return merged
}
