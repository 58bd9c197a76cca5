// Package sync implements the transaction synchronization pipeline: account
// discovery, per-account fetch, normalization, dedup merge and snapshot
// persistence, plus the process-wide run status tracker.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ortiq01/financial-dashboard/internal/core"
	"github.com/ortiq01/financial-dashboard/internal/gocardless"
	applog "github.com/ortiq01/financial-dashboard/internal/log"
)

// AggregatorClient is the slice of the bank-data API the engine consumes.
type AggregatorClient interface {
	ListRequisitions(ctx context.Context) ([]gocardless.Requisition, error)
	AccountTransactions(ctx context.Context, accountID string, opts gocardless.TransactionOptions) (gocardless.TransactionPage, error)
}

// ClientFactory builds an aggregator client for one run's credentials.
type ClientFactory func(secretID, secretKey string) AggregatorClient

// SnapshotStore loads and replaces the persisted snapshot.
type SnapshotStore interface {
	Load(ctx context.Context) core.Snapshot
	Save(ctx context.Context, snap core.Snapshot) error
	Path() string
}

// Mirror receives the transactions a run fetched, after the snapshot was
// persisted. Mirror failures are logged and never fail the run.
type Mirror interface {
	AppendTransactions(ctx context.Context, txs []core.Transaction) error
}

// Notifier publishes the outcome of a completed run. Like Mirror, failures
// are logged and never fail the run.
type Notifier interface {
	SyncCompleted(ctx context.Context, res Result) error
}

// Credentials is the aggregator secret pair supplied per run.
type Credentials struct {
	SecretID  string `json:"secretId"`
	SecretKey string `json:"secretKey"`
}

// Empty reports whether either half of the pair is missing.
func (c Credentials) Empty() bool {
	return strings.TrimSpace(c.SecretID) == "" || strings.TrimSpace(c.SecretKey) == ""
}

// Result summarizes one successful run. Added counts freshly fetched
// transactions before dedup; Total is the snapshot size after the merge.
type Result struct {
	Added        int      `json:"added"`
	Total        int      `json:"total"`
	UsedAccounts []string `json:"usedAccounts"`
	File         string   `json:"file,omitempty"`
}

// Config tunes an Engine.
type Config struct {
	// FetchConcurrency bounds parallel per-account fetches.
	FetchConcurrency int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{FetchConcurrency: 4}
}

// Engine runs the fetch/normalize/merge/persist pipeline. It holds no
// per-run state and is safe for reuse across runs.
type Engine struct {
	store     SnapshotStore
	newClient ClientFactory
	mirror    Mirror
	notifier  Notifier
	config    Config
	now       func() time.Time
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithMirror attaches an optional post-run transaction mirror.
func WithMirror(m Mirror) EngineOption {
	return func(e *Engine) { e.mirror = m }
}

// WithNotifier attaches an optional run-completed notifier.
func WithNotifier(n Notifier) EngineOption {
	return func(e *Engine) { e.notifier = n }
}

// WithClock overrides the engine's clock; tests use this.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine builds an engine over a snapshot store and a client factory.
func NewEngine(store SnapshotStore, newClient ClientFactory, config Config, opts ...EngineOption) *Engine {
	if config.FetchConcurrency < 1 {
		config.FetchConcurrency = DefaultConfig().FetchConcurrency
	}
	e := &Engine{
		store:     store,
		newClient: newClient,
		config:    config,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one sync: load the prior snapshot, resolve accounts, fetch
// and normalize booked transactions, merge by dedup key and persist the new
// snapshot. Per-account failures are isolated; only a failed final write
// fails the run.
func (e *Engine) Run(ctx context.Context, creds Credentials, accountIDs []string) (Result, error) {
	if creds.Empty() {
		return Result{}, fmt.Errorf("sync: missing aggregator credentials")
	}
	client := e.newClient(creds.SecretID, creds.SecretKey)

	prior := e.store.Load(ctx)

	accounts, discovered := e.resolveAccounts(ctx, client, accountIDs)
	fetched := e.fetchAll(ctx, client, accounts)

	merged := core.MergeTransactions(prior.Transactions, fetched)

	now := e.now().UTC()
	snap := core.Snapshot{
		LastUpdated:        &now,
		Transactions:       merged,
		DiscoveredAccounts: discovered,
	}
	if err := e.store.Save(ctx, snap); err != nil {
		return Result{}, fmt.Errorf("sync: persist snapshot: %w", err)
	}

	res := Result{
		Added:        len(fetched),
		Total:        len(merged),
		UsedAccounts: accounts,
		File:         e.store.Path(),
	}

	applog.NewStructuredLogger(applog.Default()).
		LogSyncCompleted(ctx, res.Added, res.Total, res.File)

	if e.mirror != nil && len(fetched) > 0 {
		if err := e.mirror.AppendTransactions(ctx, fetched); err != nil {
			slog.WarnContext(ctx, "Transaction mirror failed", "error", err)
		}
	}
	if e.notifier != nil {
		if err := e.notifier.SyncCompleted(ctx, res); err != nil {
			slog.WarnContext(ctx, "Sync notification failed", "error", err)
		}
	}

	return res, nil
}

// resolveAccounts returns the accounts to fetch and, when the discovery path
// was taken, the discovered account list for the snapshot. Caller-supplied
// ids are used verbatim minus blanks; otherwise the deduplicated union over
// all requisitions is collected, degrading to empty on any discovery error.
func (e *Engine) resolveAccounts(ctx context.Context, client AggregatorClient, accountIDs []string) (accounts, discovered []string) {
	accounts = make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if strings.TrimSpace(id) != "" {
			accounts = append(accounts, id)
		}
	}
	if len(accounts) > 0 {
		return accounts, nil
	}

	reqs, err := client.ListRequisitions(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Account discovery failed, proceeding with no accounts",
			"error", err, "timeout", gocardless.IsTimeout(err))
		return nil, nil
	}

	seen := make(map[string]struct{})
	for _, req := range reqs {
		for _, id := range req.Accounts {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			accounts = append(accounts, id)
		}
	}

	discovered = make([]string, len(accounts))
	copy(discovered, accounts)
	return accounts, discovered
}

// fetchAll fetches booked transactions for every account in parallel and
// returns them normalized, flattened in resolved-account order so the merge
// tie-break stays deterministic. One account's failure never cancels the
// others.
func (e *Engine) fetchAll(ctx context.Context, client AggregatorClient, accounts []string) []core.Transaction {
	perAccount := make([][]core.Transaction, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.FetchConcurrency)
	for i, accountID := range accounts {
		g.Go(func() error {
			page, err := client.AccountTransactions(gctx, accountID,
				gocardless.TransactionOptions{Include: "booked"})
			if err != nil {
				fields := applog.NewFields().WithAccount(accountID)
				fields["timeout"] = gocardless.IsTimeout(err)
				applog.NewStructuredLogger(applog.Default()).LogError(gctx,
					"Account sync failed", err, applog.ComponentBank, applog.OpFetch, fields)
				return nil
			}

			normalized := make([]core.Transaction, 0, len(page.Booked))
			for _, raw := range page.Booked {
				tx := raw.Normalize(accountID)
				if !tx.HasNumericAmount() {
					slog.WarnContext(gctx, "Transaction amount is not numeric",
						"account_id", accountID,
						"amount", tx.Amount(),
						"date", tx.Date())
				}
				normalized = append(normalized, tx)
			}
			perAccount[i] = normalized
			return nil
		})
	}
	// Goroutines swallow their errors, so Wait only synchronizes.
	_ = g.Wait()

	var fetched []core.Transaction
	for _, txs := range perAccount {
		fetched = append(fetched, txs...)
	}
	return fetched
}
