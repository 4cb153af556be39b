// Package storage defines the persistence boundary: a snapshot store with
// one fixed key per collection. Callers read a full collection, compute the
// next one, and write it back; the store never merges.
package storage

import (
	"context"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

// Store is the collection-snapshot port implemented by every backend.
type Store interface {
	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, txs []core.Transaction) error

	LoadRecurring(ctx context.Context) ([]core.RecurringTransaction, error)
	SaveRecurring(ctx context.Context, rules []core.RecurringTransaction) error

	LoadBudgets(ctx context.Context) ([]core.Budget, error)
	SaveBudgets(ctx context.Context, budgets []core.Budget) error

	LoadOverrides(ctx context.Context) (map[string]string, error)
	SaveOverrides(ctx context.Context, overrides map[string]string) error

	LoadPreferences(ctx context.Context) (core.Preferences, error)
	SavePreferences(ctx context.Context, prefs core.Preferences) error

	Close() error
}
