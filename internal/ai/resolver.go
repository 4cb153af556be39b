package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage"
)

// Resolver implements the two-step category resolution strategy: consult the
// persisted override map first, call the remote categorizer only on a miss.
// User-confirmed categories are cached back into the override map keyed by
// lower-cased description, so repeat descriptions never hit the remote
// service again.
type Resolver struct {
	store       storage.Store
	categorizer Categorizer
}

func NewResolver(store storage.Store, categorizer Categorizer) *Resolver {
	return &Resolver{
		store:       store,
		categorizer: categorizer,
	}
}

// Resolve returns a category for the description. It never returns an
// error for remote failures: those degrade to the fallback category with a
// logged diagnostic. Only storage failures surface to the caller.
func (r *Resolver) Resolve(ctx context.Context, description string) (string, error) {
	key := overrideKey(description)
	if key == "" {
		return core.FallbackCategory, nil
	}

	overrides, err := r.store.LoadOverrides(ctx)
	if err != nil {
		return "", fmt.Errorf("load category overrides: %w", err)
	}
	if cat, ok := overrides[key]; ok {
		return cat, nil
	}

	if r.categorizer == nil {
		return core.FallbackCategory, nil
	}

	cat, err := r.categorizer.Categorize(ctx, description, core.DefaultCategories)
	if err != nil {
		slog.WarnContext(ctx, "Categorization failed, using fallback",
			"description", description,
			"error", err)
		return core.FallbackCategory, nil
	}
	return cat, nil
}

// Confirm records a user-confirmed category for the description so future
// lookups skip the remote service.
func (r *Resolver) Confirm(ctx context.Context, description, category string) error {
	key := overrideKey(description)
	if key == "" {
		return core.ErrEmptyDescription
	}
	if strings.TrimSpace(category) == "" {
		return core.ErrEmptyCategory
	}

	overrides, err := r.store.LoadOverrides(ctx)
	if err != nil {
		return fmt.Errorf("load category overrides: %w", err)
	}
	overrides[key] = category
	if err := r.store.SaveOverrides(ctx, overrides); err != nil {
		return fmt.Errorf("save category overrides: %w", err)
	}
	return nil
}

func overrideKey(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}
