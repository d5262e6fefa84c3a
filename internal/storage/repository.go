// Package storage implements the persistence port on SQLite. Each saved
// history is a snapshot keyed by ledger id, with an explicit position
// column so insertion order survives the round trip.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"saldo/internal/core"
	"saldo/internal/store"

	_ "modernc.org/sqlite"
)

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

// Save implements store.Saver. The previous snapshot under id is
// replaced in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, id string, txs []core.Transaction) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx,
		`DELETE FROM ledger_transactions WHERE ledger_id = ?`, id); err != nil {
		return fmt.Errorf("clear previous snapshot: %w", err)
	}

	stmt, err := dbtx.PrepareContext(ctx,
		`INSERT INTO ledger_transactions (ledger_id, position, amount_cents, tx_date)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, tx := range txs {
		if _, err := stmt.ExecContext(ctx, id, i, tx.Amount, tx.Date.String()); err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.InfoContext(ctx, "History saved to SQLite",
		"ledger", id,
		"count", len(txs))

	return nil
}

// Load implements store.Loader. An id with no snapshot yields
// store.ErrNotFound.
func (r *SQLiteRepository) Load(ctx context.Context, id string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT amount_cents, tx_date FROM ledger_transactions
		 WHERE ledger_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var amount int64
		var rawDate string
		if err := rows.Scan(&amount, &rawDate); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := core.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", rawDate, err)
		}
		txs = append(txs, core.Transaction{Amount: amount, Date: date})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	// An empty snapshot is indistinguishable from a missing one; both
	// surface as not found.
	if len(txs) == 0 {
		return nil, fmt.Errorf("load %q: %w", id, store.ErrNotFound)
	}

	return txs, nil
}
