package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"moneybook/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps the ledger in a local SQLite database.
// Every save replaces the stored ledger inside a single SQL transaction.
type SQLiteRepository struct {
	db      *sql.DB
	path    string
	version uint
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, path: dbPath, version: version}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Location returns the database path, for messages.
func (r *SQLiteRepository) Location() string {
	return r.path
}

// SchemaVersion is the migration version applied when the repository was opened.
func (r *SQLiteRepository) SchemaVersion() uint {
	return r.version
}

// Load returns the saved ledger in its original order.
// A database that was never saved to yields an empty ledger and ErrNotFound.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	var saves int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_saves`).Scan(&saves); err != nil {
		return nil, fmt.Errorf("count ledger saves: %w", err)
	}
	if saves == 0 {
		return []core.Transaction{}, ErrNotFound
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT date, kind, category, amount, description
		FROM transactions
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := make([]core.Transaction, 0)
	for i := 0; rows.Next(); i++ {
		var date, kind, category, description string
		var amount float64
		if err := rows.Scan(&date, &kind, &category, &amount, &description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t, err := core.NewTransaction(date, kind, category, amount, description)
		if err != nil {
			return nil, &ParseError{Path: r.path, Index: i, Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Save replaces the stored ledger with txs.
func (r *SQLiteRepository) Save(ctx context.Context, txs []core.Transaction) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (position, date, kind, category, amount, description)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txs {
		if _, err = stmt.ExecContext(ctx, i, t.Date, string(t.Kind), t.Category, t.Amount, t.Description); err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO ledger_saves (record_count) VALUES (?)`, len(txs)); err != nil {
		return fmt.Errorf("record save: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
