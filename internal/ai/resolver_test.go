package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage/memory"
)

// stubCategorizer counts calls and returns a fixed answer or error.
type stubCategorizer struct {
	calls  int
	answer string
	err    error
}

func (s *stubCategorizer) Categorize(_ context.Context, _ string, _ []string) (string, error) {
	s.calls++
	return s.answer, s.err
}

func TestResolveUsesOverrideFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.SaveOverrides(ctx, map[string]string{"netflix subscription": "Entertainment"}); err != nil {
		t.Fatalf("SaveOverrides() error = %v", err)
	}
	stub := &stubCategorizer{answer: "Shopping"}
	resolver := NewResolver(store, stub)

	got, err := resolver.Resolve(ctx, "  Netflix Subscription ")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "Entertainment" {
		t.Errorf("Resolve() = %q, want Entertainment", got)
	}
	if stub.calls != 0 {
		t.Errorf("categorizer called %d times on override hit, want 0", stub.calls)
	}
}

func TestResolveFallsThroughToCategorizer(t *testing.T) {
	ctx := context.Background()
	stub := &stubCategorizer{answer: "Transportation"}
	resolver := NewResolver(memory.New(), stub)

	got, err := resolver.Resolve(ctx, "uber ride downtown")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "Transportation" {
		t.Errorf("Resolve() = %q, want Transportation", got)
	}
	if stub.calls != 1 {
		t.Errorf("categorizer called %d times, want 1", stub.calls)
	}
}

func TestResolveDegradesOnCategorizerFailure(t *testing.T) {
	ctx := context.Background()
	stub := &stubCategorizer{err: errors.New("quota exceeded")}
	resolver := NewResolver(memory.New(), stub)

	got, err := resolver.Resolve(ctx, "mystery charge")
	if err != nil {
		t.Fatalf("Resolve() error = %v, remote failures must not escape", err)
	}
	if got != core.FallbackCategory {
		t.Errorf("Resolve() = %q, want fallback %q", got, core.FallbackCategory)
	}
}

func TestResolveWithoutCategorizer(t *testing.T) {
	resolver := NewResolver(memory.New(), nil)

	got, err := resolver.Resolve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != core.FallbackCategory {
		t.Errorf("Resolve() = %q, want fallback %q", got, core.FallbackCategory)
	}
}

func TestConfirmCachesOverride(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	stub := &stubCategorizer{answer: "Shopping"}
	resolver := NewResolver(store, stub)

	if err := resolver.Confirm(ctx, "Amazon Order", "Shopping"); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	got, err := resolver.Resolve(ctx, "amazon order")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "Shopping" {
		t.Errorf("Resolve() = %q, want Shopping", got)
	}
	if stub.calls != 0 {
		t.Errorf("categorizer called %d times after confirm, want 0", stub.calls)
	}

	if err := resolver.Confirm(ctx, "", "Shopping"); !errors.Is(err, core.ErrEmptyDescription) {
		t.Errorf("Confirm() error = %v, want %v", err, core.ErrEmptyDescription)
	}
}
