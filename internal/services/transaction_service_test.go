package services

import (
	"context"
	"errors"
	"testing"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage/memory"
)

func newService() (*TransactionService, *memory.Store) {
	store := memory.New()
	return NewTransactionService(store, nil), store
}

func TestCreateAssignsIDAndNormalizesCurrency(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	created, err := svc.Create(ctx, core.Transaction{
		Description: "Coffee",
		Amount:      core.Money{Cents: 450},
		Type:        core.Expense,
		Date:        core.NewDate(2024, 3, 15),
		Category:    "Food & Dining",
		Currency:    "usd",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("Create() did not assign an id")
	}
	if created.Currency != "USD" {
		t.Errorf("currency = %q, want USD", created.Currency)
	}

	txs, _ := store.LoadTransactions(ctx)
	if len(txs) != 1 {
		t.Errorf("store holds %d transactions, want 1", len(txs))
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	_, err := svc.Create(ctx, core.Transaction{
		Description: "",
		Amount:      core.Money{Cents: 100},
		Type:        core.Expense,
		Date:        core.NewDate(2024, 3, 15),
		Category:    "Other",
		Currency:    "USD",
	})
	if !errors.Is(err, core.ErrEmptyDescription) {
		t.Errorf("Create() error = %v, want %v", err, core.ErrEmptyDescription)
	}

	// Invalid input never reaches the store.
	txs, _ := store.LoadTransactions(ctx)
	if len(txs) != 0 {
		t.Errorf("store holds %d transactions after rejected create, want 0", len(txs))
	}
}

func TestUpdateReplacesByID(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	created, err := svc.Create(ctx, core.Transaction{
		Description: "Coffee",
		Amount:      core.Money{Cents: 450},
		Type:        core.Expense,
		Date:        core.NewDate(2024, 3, 15),
		Category:    "Food & Dining",
		Currency:    "USD",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	created.Description = "Espresso"
	created.Amount = core.Money{Cents: 300}
	if err := svc.Update(ctx, created); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	txs, _ := store.LoadTransactions(ctx)
	if txs[0].Description != "Espresso" || txs[0].Amount.Cents != 300 {
		t.Errorf("update not applied: %+v", txs[0])
	}

	missing := created
	missing.ID = "nope"
	if err := svc.Update(ctx, missing); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Update() error = %v, want %v", err, ErrTransactionNotFound)
	}
}

func TestBulkDelete(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	var ids []string
	for _, desc := range []string{"a", "b", "c"} {
		tx, err := svc.Create(ctx, core.Transaction{
			Description: desc,
			Amount:      core.Money{Cents: 100},
			Type:        core.Expense,
			Date:        core.NewDate(2024, 3, 15),
			Category:    "Other",
			Currency:    "USD",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, tx.ID)
	}

	if err := svc.BulkDelete(ctx, ids[:2]); err != nil {
		t.Fatalf("BulkDelete() error = %v", err)
	}
	txs, _ := store.LoadTransactions(ctx)
	if len(txs) != 1 || txs[0].Description != "c" {
		t.Errorf("after bulk delete store = %+v, want only c", txs)
	}

	if err := svc.Delete(ctx, "missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Delete() error = %v, want %v", err, ErrTransactionNotFound)
	}
}
