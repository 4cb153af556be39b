package services

import (
	"log/slog"
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

// MaterializeResult carries the outcome of one materialization pass.
type MaterializeResult struct {
	NewTransactions []core.Transaction
	UpdatedRules    []core.RecurringTransaction
}

// OccurrenceID derives the deterministic transaction id for one occurrence
// of a rule. The id is the sole de-duplication mechanism: re-running
// materialization can never emit the same occurrence twice.
func OccurrenceID(ruleID string, date core.Date) string {
	return ruleID + "-" + date.ISO()
}

// Materialize turns recurring rules into the concrete transactions they are
// due to produce, up to and including today. For every rule whose next
// occurrence is on or before today it emits one transaction per missed
// period, then advances the rule's next occurrence strictly past today.
//
// The function is pure: inputs are not mutated, updated rule copies are
// returned alongside the new transactions. Existing transactions are only
// consulted for their ids.
func Materialize(rules []core.RecurringTransaction, existing []core.Transaction, today time.Time) MaterializeResult {
	day := core.DateOf(today)

	seen := make(map[string]struct{}, len(existing))
	for _, tx := range existing {
		seen[tx.ID] = struct{}{}
	}

	result := MaterializeResult{
		UpdatedRules: make([]core.RecurringTransaction, 0, len(rules)),
	}

	for _, rule := range rules {
		stepper, known := GetFrequencyStepper(rule.Frequency)
		if !known {
			slog.Warn("Unknown recurrence frequency, falling back to daily stepping",
				"rule_id", rule.ID,
				"frequency", string(rule.Frequency))
		}

		occurrence := rule.NextOccurrence
		if occurrence.IsZero() {
			occurrence = rule.StartDate
		}
		occurrence = core.DateOf(occurrence.Time)

		for !occurrence.After(day.Time) {
			id := OccurrenceID(rule.ID, occurrence)
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				result.NewTransactions = append(result.NewTransactions, core.Transaction{
					ID:          id,
					Description: rule.Description,
					Amount:      rule.Amount,
					Type:        rule.Type,
					Date:        occurrence,
					Category:    rule.Category,
					Notes:       rule.Notes,
					Currency:    rule.Currency,
				})
			}
			occurrence = core.DateOf(stepper.Next(occurrence.Time))
		}

		rule.NextOccurrence = occurrence
		result.UpdatedRules = append(result.UpdatedRules, rule)
	}

	return result
}
