package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTransactionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	want := []core.Transaction{
		{
			ID:          "t1",
			Description: "Groceries",
			Amount:      core.Money{Cents: 4250},
			Type:        core.Expense,
			Date:        core.NewDate(2024, 3, 15),
			Category:    "Food & Dining",
			Notes:       "weekly shop",
			Currency:    "USD",
		},
		{
			ID:          "t2",
			Description: "Paycheck",
			Amount:      core.Money{Cents: 500000},
			Type:        core.Income,
			Date:        core.NewDate(2024, 3, 1),
			Category:    "Salary",
			Currency:    "USD",
		},
	}

	if err := store.SaveTransactions(ctx, want); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}
	got, err := store.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("LoadTransactions() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transaction %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// Save replaces the whole snapshot, not appends.
	if err := store.SaveTransactions(ctx, want[:1]); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}
	got, err = store.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("LoadTransactions() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("loaded %d transactions after snapshot replace, want 1", len(got))
	}
}

func TestRecurringRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	want := []core.RecurringTransaction{{
		ID:             "r1",
		Description:    "Rent",
		Amount:         core.Money{Cents: 120000},
		Type:           core.Expense,
		Category:       "Housing",
		Frequency:      core.Monthly,
		StartDate:      core.NewDate(2024, 1, 1),
		NextOccurrence: core.NewDate(2024, 4, 1),
		Currency:       "USD",
	}}

	if err := store.SaveRecurring(ctx, want); err != nil {
		t.Fatalf("SaveRecurring() error = %v", err)
	}
	got, err := store.LoadRecurring(ctx)
	if err != nil {
		t.Fatalf("LoadRecurring() error = %v", err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestPreferencesDefaultAndUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	prefs, err := store.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences() error = %v", err)
	}
	if prefs != core.DefaultPreferences() {
		t.Errorf("empty store preferences = %+v, want defaults", prefs)
	}

	want := core.Preferences{Currency: "EUR", AlertThreshold: 65}
	if err := store.SavePreferences(ctx, want); err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}
	if err := store.SavePreferences(ctx, want); err != nil {
		t.Fatalf("SavePreferences() upsert error = %v", err)
	}
	prefs, err = store.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences() error = %v", err)
	}
	if prefs != want {
		t.Errorf("preferences = %+v, want %+v", prefs, want)
	}
}

func TestBudgetsAndOverrides(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	budgets := []core.Budget{
		{Category: "Food & Dining", Amount: core.Money{Cents: 50000}},
		{Category: "Transportation", Amount: core.Money{Cents: 20000}},
	}
	if err := store.SaveBudgets(ctx, budgets); err != nil {
		t.Fatalf("SaveBudgets() error = %v", err)
	}
	gotBudgets, err := store.LoadBudgets(ctx)
	if err != nil {
		t.Fatalf("LoadBudgets() error = %v", err)
	}
	if len(gotBudgets) != 2 || gotBudgets[0] != budgets[0] {
		t.Errorf("budgets = %+v, want %+v", gotBudgets, budgets)
	}

	overrides := map[string]string{"uber ride": "Transportation"}
	if err := store.SaveOverrides(ctx, overrides); err != nil {
		t.Fatalf("SaveOverrides() error = %v", err)
	}
	gotOverrides, err := store.LoadOverrides(ctx)
	if err != nil {
		t.Fatalf("LoadOverrides() error = %v", err)
	}
	if gotOverrides["uber ride"] != "Transportation" {
		t.Errorf("overrides = %v, want uber ride -> Transportation", gotOverrides)
	}
}
