package services

import (
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

// Period selects the reporting window for a summary.
type Period string

const (
	PeriodAll     Period = "all"
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Valid reports whether p is a recognized reporting period.
func (p Period) Valid() bool {
	switch p {
	case PeriodAll, PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	default:
		return false
	}
}

// periodStart returns the inclusive lower bound of the window ending at now,
// or a zero time when the period spans everything.
func periodStart(p Period, now time.Time) time.Time {
	day := core.DateOf(now).Time
	switch p {
	case PeriodDaily:
		return day
	case PeriodWeekly:
		// Back to the most recent Sunday, inclusive.
		return day.AddDate(0, 0, -int(day.Weekday()))
	case PeriodMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}
	}
}

// Summarize computes aggregate income/expense/net-savings and the category
// breakdown over the transactions matching both the reporting period and the
// currency code. There is no cross-currency conversion: transactions in
// other currencies are excluded, not converted.
//
// The breakdown keeps insertion order of first occurrence and sums income
// and expense amounts into the same category bucket, matching the dashboard
// behavior users already rely on.
func Summarize(transactions []core.Transaction, currencyCode string, period Period, now time.Time) core.SummaryData {
	summary := core.SummaryData{Currency: currencyCode}

	start := periodStart(period, now)
	today := core.DateOf(now).Time

	index := make(map[string]int)

	for _, tx := range transactions {
		if !start.IsZero() && tx.Date.Before(start) {
			continue
		}
		if period == PeriodDaily && !tx.Date.Equal(today) {
			continue
		}
		if tx.Currency != currencyCode {
			continue
		}

		switch tx.Type {
		case core.Income:
			summary.TotalIncome.Cents += tx.Amount.Cents
		case core.Expense:
			summary.TotalExpense.Cents += tx.Amount.Cents
		default:
			continue
		}

		i, ok := index[tx.Category]
		if !ok {
			i = len(summary.Breakdown)
			index[tx.Category] = i
			summary.Breakdown = append(summary.Breakdown, core.CategoryAmount{Name: tx.Category})
		}
		summary.Breakdown[i].Amount.Cents += tx.Amount.Cents
	}

	summary.NetSavings.Cents = summary.TotalIncome.Cents - summary.TotalExpense.Cents
	return summary
}

// BudgetAlerts compares category spend from an already filtered summary
// against configured budgets and reports every category whose spend has
// reached thresholdPercent of its budget. Budgets with a non-positive
// amount never fire.
func BudgetAlerts(summary core.SummaryData, budgets []core.Budget, thresholdPercent int) []core.Alert {
	spent := make(map[string]int64, len(summary.Breakdown))
	for _, ca := range summary.Breakdown {
		spent[ca.Name] = ca.Amount.Cents
	}

	var alerts []core.Alert
	for _, b := range budgets {
		if b.Amount.Cents <= 0 {
			continue
		}
		used := spent[b.Category]
		percentage := float64(used) / float64(b.Amount.Cents) * 100
		if percentage >= float64(thresholdPercent) {
			alerts = append(alerts, core.Alert{
				Category:   b.Category,
				Budget:     b.Amount,
				Spent:      core.Money{Cents: used},
				Percentage: percentage,
			})
		}
	}
	return alerts
}
