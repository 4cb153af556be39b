package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/amqp"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage"
)

// Reconciler runs the materialization pass against the store: load rules and
// transactions, materialize everything due, write both snapshots back. It
// runs on load and periodically from the recurring worker; determinism of
// the occurrence ids makes repeated runs safe.
type Reconciler struct {
	store      storage.Store
	amqpClient *amqp.Client
}

func NewReconciler(store storage.Store, amqpClient *amqp.Client) *Reconciler {
	return &Reconciler{
		store:      store,
		amqpClient: amqpClient,
	}
}

// Reconcile materializes due recurring transactions up to now and returns
// how many transactions were created.
func (r *Reconciler) Reconcile(ctx context.Context, now time.Time) (int, error) {
	rules, err := r.store.LoadRecurring(ctx)
	if err != nil {
		return 0, fmt.Errorf("load recurring transactions: %w", err)
	}
	if len(rules) == 0 {
		return 0, nil
	}

	transactions, err := r.store.LoadTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("load transactions: %w", err)
	}

	result := Materialize(rules, transactions, now)
	if len(result.NewTransactions) == 0 {
		return 0, nil
	}

	if err := r.store.SaveTransactions(ctx, append(transactions, result.NewTransactions...)); err != nil {
		return 0, fmt.Errorf("save transactions: %w", err)
	}
	if err := r.store.SaveRecurring(ctx, result.UpdatedRules); err != nil {
		// Transactions are already saved; the advanced occurrence pointers
		// are lost, but the deterministic ids keep the next run duplicate-free.
		return len(result.NewTransactions), fmt.Errorf("save recurring transactions: %w", err)
	}

	for _, tx := range result.NewTransactions {
		r.publishEvent(ctx, tx.ID)
	}

	slog.InfoContext(ctx, "Recurring reconciliation complete",
		"rules", len(rules),
		"created", len(result.NewTransactions),
		"as_of", now.Format("2006-01-02"))

	return len(result.NewTransactions), nil
}

func (r *Reconciler) publishEvent(ctx context.Context, id string) {
	if r.amqpClient == nil {
		return
	}
	if err := r.amqpClient.PublishTransactionEvent(ctx, id, amqp.ActionMaterialized); err != nil {
		slog.ErrorContext(ctx, "Failed to publish materialization event",
			"id", id,
			"error", err)
	}
}
