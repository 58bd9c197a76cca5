// Package sheets defines the outbound port for mirroring synced
// transactions to a spreadsheet, with a Google Sheets adapter and an
// in-memory fake.
package sheets

import (
	"context"

	"github.com/ortiq01/financial-dashboard/internal/core"
)

// TransactionAppender mirrors freshly synced transactions somewhere a human
// can browse them. Mirroring is best-effort: callers log failures and move
// on.
type TransactionAppender interface {
	AppendTransactions(ctx context.Context, txs []core.Transaction) error
}
