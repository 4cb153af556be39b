package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// SummaryData is the derived aggregate over a filtered transaction subset.
// It is computed fresh per query and never persisted.
type SummaryData struct {
	Currency     string
	TotalIncome  Money
	TotalExpense Money
	NetSavings   Money
	// Breakdown is keyed by category in insertion order of first occurrence.
	// A category used by both income and expense transactions accumulates
	// both into the same bucket.
	Breakdown []CategoryAmount
}

// Alert reports that category spend has crossed its configured budget share.
type Alert struct {
	Category   string
	Budget     Money
	Spent      Money
	Percentage float64
}
