// Package ai provides the capability interfaces for the external
// language-model service and the category resolution strategy built on top
// of them. Failures at this boundary always degrade to safe defaults; they
// never propagate past the resolver.
package ai

import (
	"context"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

type (
	// Categorizer picks exactly one category from the allowed list for a
	// free-text transaction description.
	Categorizer interface {
		Categorize(ctx context.Context, description string, categories []string) (string, error)
	}

	// InsightGenerator turns a computed summary and budget set into
	// free-text advisory insights.
	InsightGenerator interface {
		GenerateInsights(ctx context.Context, summary core.SummaryData, budgets []core.Budget) (string, error)
	}
)

// FallbackInsight is returned whenever the insight generator is missing or
// failing.
const FallbackInsight = "Insights are unavailable right now. Your data is safe; try again later."
