package services

import (
	"context"
	"testing"
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage/memory"
)

func TestReconcileCreatesAndAdvances(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.SaveRecurring(ctx, []core.RecurringTransaction{
		monthlyRule("r1", core.NewDate(2024, 1, 1)),
	}); err != nil {
		t.Fatalf("SaveRecurring() error = %v", err)
	}

	rec := NewReconciler(store, nil)
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	created, err := rec.Reconcile(ctx, now)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if created != 3 {
		t.Errorf("created = %d, want 3", created)
	}

	txs, err := store.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("LoadTransactions() error = %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("store holds %d transactions, want 3", len(txs))
	}

	rules, err := store.LoadRecurring(ctx)
	if err != nil {
		t.Fatalf("LoadRecurring() error = %v", err)
	}
	if next := rules[0].NextOccurrence.ISO(); next != "2024-04-01" {
		t.Errorf("next occurrence = %s, want 2024-04-01", next)
	}

	// Second pass with no time advance is a no-op.
	created, err = rec.Reconcile(ctx, now)
	if err != nil {
		t.Fatalf("second Reconcile() error = %v", err)
	}
	if created != 0 {
		t.Errorf("second pass created %d, want 0", created)
	}
}

func TestReconcileNoRulesIsNoop(t *testing.T) {
	ctx := context.Background()
	rec := NewReconciler(memory.New(), nil)

	created, err := rec.Reconcile(ctx, time.Now())
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if created != 0 {
		t.Errorf("created = %d, want 0", created)
	}
}
