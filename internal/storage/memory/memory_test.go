package memory

import (
	"context"
	"testing"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

func TestStoreSnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := New()

	txs := []core.Transaction{{ID: "t1", Description: "a", Currency: "USD"}}
	if err := store.SaveTransactions(ctx, txs); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}

	// Mutating the caller's slice must not leak into the store.
	txs[0].Description = "mutated"

	got, err := store.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("LoadTransactions() error = %v", err)
	}
	if len(got) != 1 || got[0].Description != "a" {
		t.Errorf("loaded snapshot affected by caller mutation: %+v", got)
	}
}

func TestStoreDefaults(t *testing.T) {
	ctx := context.Background()
	store := New()

	prefs, err := store.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences() error = %v", err)
	}
	if prefs != core.DefaultPreferences() {
		t.Errorf("fresh store preferences = %+v, want defaults", prefs)
	}

	overrides, err := store.LoadOverrides(ctx)
	if err != nil {
		t.Fatalf("LoadOverrides() error = %v", err)
	}
	if len(overrides) != 0 {
		t.Errorf("fresh store has overrides: %v", overrides)
	}
}

func TestStoreOverridesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()

	in := map[string]string{"netflix subscription": "Entertainment"}
	if err := store.SaveOverrides(ctx, in); err != nil {
		t.Fatalf("SaveOverrides() error = %v", err)
	}
	in["netflix subscription"] = "mutated"

	got, err := store.LoadOverrides(ctx)
	if err != nil {
		t.Fatalf("LoadOverrides() error = %v", err)
	}
	if got["netflix subscription"] != "Entertainment" {
		t.Errorf("override = %q, want Entertainment", got["netflix subscription"])
	}
}
