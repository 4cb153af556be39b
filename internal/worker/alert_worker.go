// Package worker contains the background consumer that turns transaction
// change events into budget alert evaluations.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/ai"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/amqp"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/services"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage"
)

// AlertWorker recomputes the current month's summary in the preferred
// currency whenever a transaction changes, evaluates the configured budgets
// and logs every alert that fires. When an insight generator is configured
// it also requests advisory text for the new state of the month.
type AlertWorker struct {
	store    storage.Store
	insights ai.InsightGenerator
}

func NewAlertWorker(store storage.Store, insights ai.InsightGenerator) *AlertWorker {
	return &AlertWorker{
		store:    store,
		insights: insights,
	}
}

// HandleTransactionEvent processes a single transaction change event. The
// event only carries the id; the store is the source of truth for amounts.
func (w *AlertWorker) HandleTransactionEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	slog.InfoContext(ctx, "Processing transaction event",
		"id", msg.ID,
		"action", msg.Action)

	alerts, err := w.Evaluate(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("evaluate budgets: %w", err)
	}

	if len(alerts) == 0 {
		slog.InfoContext(ctx, "No budget alerts", "trigger_id", msg.ID)
		return nil
	}

	for _, a := range alerts {
		slog.WarnContext(ctx, "Budget alert",
			"category", a.Category,
			"budget_cents", a.Budget.Cents,
			"spent_cents", a.Spent.Cents,
			"percentage", fmt.Sprintf("%.1f", a.Percentage),
			"trigger_id", msg.ID)
	}

	return nil
}

// Evaluate recomputes the monthly summary in the preferred currency and
// returns the budget alerts firing as of now. Insight generation is
// best-effort and never fails the evaluation.
func (w *AlertWorker) Evaluate(ctx context.Context, now time.Time) ([]core.Alert, error) {
	prefs, err := w.store.LoadPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	budgets, err := w.store.LoadBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	txs, err := w.store.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	summary := services.Summarize(txs, prefs.Currency, services.PeriodMonthly, now)
	alerts := services.BudgetAlerts(summary, budgets, prefs.AlertThreshold)

	if w.insights != nil && len(alerts) > 0 {
		text, err := w.insights.GenerateInsights(ctx, summary, budgets)
		if err != nil {
			slog.WarnContext(ctx, "Insight generation failed", "error", err)
		} else {
			slog.InfoContext(ctx, "Advisory insights", "insights", text)
		}
	}

	return alerts, nil
}
