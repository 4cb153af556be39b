// Package sqlite persists the collection snapshots in a local SQLite file.
// Saving a collection replaces its rows inside one transaction, keeping the
// store's "write full collection back" contract.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
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

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// replaceAll deletes every row of a table and re-inserts the snapshot inside
// one transaction.
func (s *Store) replaceAll(ctx context.Context, table string, insert func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s snapshot: %w", table, err)
	}
	return nil
}

func (s *Store) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount_cents, type, date, category, notes, currency
		 FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var date string
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount.Cents, &t.Type, &date, &t.Category, &t.Notes, &t.Currency); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", date, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	return s.replaceAll(ctx, "transactions", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO transactions (id, description, amount_cents, type, date, category, notes, currency, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, t := range txs {
			if _, err := stmt.ExecContext(ctx, t.ID, t.Description, t.Amount.Cents, string(t.Type), t.Date.ISO(), t.Category, t.Notes, t.Currency, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) LoadRecurring(ctx context.Context) ([]core.RecurringTransaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount_cents, type, category, frequency, start_date, next_occurrence, notes, currency
		 FROM recurring_transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query recurring transactions: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringTransaction
	for rows.Next() {
		var r core.RecurringTransaction
		var start, next string
		if err := rows.Scan(&r.ID, &r.Description, &r.Amount.Cents, &r.Type, &r.Category, &r.Frequency, &start, &next, &r.Notes, &r.Currency); err != nil {
			return nil, fmt.Errorf("scan recurring transaction: %w", err)
		}
		if r.StartDate, err = core.ParseDate(start); err != nil {
			return nil, fmt.Errorf("parse start date %q: %w", start, err)
		}
		if r.NextOccurrence, err = core.ParseDate(next); err != nil {
			return nil, fmt.Errorf("parse next occurrence %q: %w", next, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) SaveRecurring(ctx context.Context, rules []core.RecurringTransaction) error {
	return s.replaceAll(ctx, "recurring_transactions", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO recurring_transactions (id, description, amount_cents, type, category, frequency, start_date, next_occurrence, notes, currency, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, r := range rules {
			if _, err := stmt.ExecContext(ctx, r.ID, r.Description, r.Amount.Cents, string(r.Type), r.Category, string(r.Frequency), r.StartDate.ISO(), r.NextOccurrence.ISO(), r.Notes, r.Currency, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) LoadBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, amount_cents FROM budgets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.Category, &b.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) SaveBudgets(ctx context.Context, budgets []core.Budget) error {
	return s.replaceAll(ctx, "budgets", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO budgets (category, amount_cents, position) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, b := range budgets {
			if _, err := stmt.ExecContext(ctx, b.Category, b.Amount.Cents, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) LoadOverrides(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT description, category FROM category_overrides`)
	if err != nil {
		return nil, fmt.Errorf("query category overrides: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var desc, cat string
		if err := rows.Scan(&desc, &cat); err != nil {
			return nil, fmt.Errorf("scan category override: %w", err)
		}
		out[desc] = cat
	}
	return out, rows.Err()
}

func (s *Store) SaveOverrides(ctx context.Context, overrides map[string]string) error {
	return s.replaceAll(ctx, "category_overrides", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO category_overrides (description, category) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for desc, cat := range overrides {
			if _, err := stmt.ExecContext(ctx, desc, cat); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) LoadPreferences(ctx context.Context) (core.Preferences, error) {
	var p core.Preferences
	err := s.db.QueryRowContext(ctx,
		`SELECT currency, alert_threshold FROM preferences WHERE id = 1`).
		Scan(&p.Currency, &p.AlertThreshold)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultPreferences(), nil
	}
	if err != nil {
		return core.Preferences{}, fmt.Errorf("query preferences: %w", err)
	}
	return p, nil
}

func (s *Store) SavePreferences(ctx context.Context, prefs core.Preferences) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (id, currency, alert_threshold) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET currency = excluded.currency, alert_threshold = excluded.alert_threshold`,
		prefs.Currency, prefs.AlertThreshold)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
