// Package storage persists dashboard state: savings accounts in SQLite and
// the sync snapshot as a JSON file.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ortiq01/financial-dashboard/internal/core"

	_ "modernc.org/sqlite"
)

// ErrSavingsNotFound is returned when no savings row exists for an account
// name.
var ErrSavingsNotFound = errors.New("savings account not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListSavings returns all savings accounts ordered by name.
func (r *SQLiteRepository) ListSavings(ctx context.Context) ([]core.SavingsAccount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_name, account_type, institution, amount, currency, updated_at, created_at
		FROM savings ORDER BY account_name`)
	if err != nil {
		return nil, fmt.Errorf("list savings: %w", err)
	}
	defer rows.Close()

	var accounts []core.SavingsAccount
	for rows.Next() {
		var a core.SavingsAccount
		if err := rows.Scan(&a.ID, &a.AccountName, &a.AccountType, &a.Institution,
			&a.Amount, &a.Currency, &a.UpdatedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan savings row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate savings rows: %w", err)
	}
	return accounts, nil
}

// GetSavings returns one savings account by name.
func (r *SQLiteRepository) GetSavings(ctx context.Context, accountName string) (core.SavingsAccount, error) {
	var a core.SavingsAccount
	err := r.db.QueryRowContext(ctx, `
		SELECT id, account_name, account_type, institution, amount, currency, updated_at, created_at
		FROM savings WHERE account_name = ?`, accountName).
		Scan(&a.ID, &a.AccountName, &a.AccountType, &a.Institution,
			&a.Amount, &a.Currency, &a.UpdatedAt, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavingsAccount{}, ErrSavingsNotFound
	}
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("get savings %q: %w", accountName, err)
	}
	return a, nil
}

// UpsertSavings updates the balance for an account, creating the row on
// first sight, and always appends a history entry. It returns the stored
// row.
func (r *SQLiteRepository) UpsertSavings(ctx context.Context, u core.SavingsUpdate) (core.SavingsAccount, error) {
	if err := u.Validate(); err != nil {
		return core.SavingsAccount{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.SavingsAccount{}, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM savings WHERE account_name = ?`, u.AccountName).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO savings (account_name, account_type, institution, amount)
			VALUES (?, ?, ?, ?)`,
			u.AccountName, u.AccountType, u.Institution, u.Amount)
		if err != nil {
			return core.SavingsAccount{}, fmt.Errorf("insert savings: %w", err)
		}
	case err != nil:
		return core.SavingsAccount{}, fmt.Errorf("lookup savings: %w", err)
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE savings
			SET amount = ?, account_type = ?, institution = ?, updated_at = CURRENT_TIMESTAMP
			WHERE account_name = ?`,
			u.Amount, u.AccountType, u.Institution, u.AccountName)
		if err != nil {
			return core.SavingsAccount{}, fmt.Errorf("update savings: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO savings_history (account_name, amount) VALUES (?, ?)`,
		u.AccountName, u.Amount); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("record savings history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.SavingsAccount{}, fmt.Errorf("commit upsert: %w", err)
	}

	account, err := r.GetSavings(ctx, u.AccountName)
	if err != nil {
		return core.SavingsAccount{}, err
	}

	slog.InfoContext(ctx, "Savings balance updated",
		"account", account.AccountName,
		"institution", account.Institution,
		"amount", account.Amount)

	return account, nil
}

// History returns the most recent balance observations for one account,
// newest first. A non-positive limit defaults to 100.
func (r *SQLiteRepository) History(ctx context.Context, accountName string, limit int) ([]core.SavingsEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_name, amount, currency, recorded_at
		FROM savings_history
		WHERE account_name = ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?`, accountName, limit)
	if err != nil {
		return nil, fmt.Errorf("list savings history: %w", err)
	}
	defer rows.Close()

	var entries []core.SavingsEntry
	for rows.Next() {
		var e core.SavingsEntry
		if err := rows.Scan(&e.ID, &e.AccountName, &e.Amount, &e.Currency, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}
