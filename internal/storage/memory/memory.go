// Package memory provides the in-memory snapshot store used as the default
// backend and by tests.
package memory

import (
	"context"
	"sync"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
	recurring    []core.RecurringTransaction
	budgets      []core.Budget
	overrides    map[string]string
	preferences  core.Preferences
}

func New() *Store {
	return &Store{
		overrides:   make(map[string]string),
		preferences: core.DefaultPreferences(),
	}
}

func (s *Store) LoadTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...), nil
}

func (s *Store) SaveTransactions(_ context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]core.Transaction(nil), txs...)
	return nil
}

func (s *Store) LoadRecurring(_ context.Context) ([]core.RecurringTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RecurringTransaction(nil), s.recurring...), nil
}

func (s *Store) SaveRecurring(_ context.Context, rules []core.RecurringTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recurring = append([]core.RecurringTransaction(nil), rules...)
	return nil
}

func (s *Store) LoadBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets...), nil
}

func (s *Store) SaveBudgets(_ context.Context, budgets []core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append([]core.Budget(nil), budgets...)
	return nil
}

func (s *Store) LoadOverrides(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.overrides))
	for k, v := range s.overrides {
		out[k] = v
	}
	return out, nil
}

func (s *Store) SaveOverrides(_ context.Context, overrides map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]string, len(overrides))
	for k, v := range overrides {
		s.overrides[k] = v
	}
	return nil
}

func (s *Store) LoadPreferences(_ context.Context) (core.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences, nil
}

func (s *Store) SavePreferences(_ context.Context, prefs core.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = prefs
	return nil
}

func (s *Store) Close() error { return nil }
