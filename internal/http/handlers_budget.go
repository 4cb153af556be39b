package http

import (
	"net/http"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

type budgetPayload struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type preferencesPayload struct {
	Currency       string `json:"currency"`
	AlertThreshold int    `json:"alert_threshold"`
}

func (s *Server) handleGetBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.store.LoadBudgets(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]budgetPayload, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, budgetPayload{Category: b.Category, Amount: b.Amount.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

// handlePutBudgets replaces the whole budget set. The category is the unique
// key; a later duplicate wins over an earlier one.
func (s *Server) handlePutBudgets(w http.ResponseWriter, r *http.Request) {
	var payload []budgetPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	index := make(map[string]int)
	budgets := make([]core.Budget, 0, len(payload))
	for _, p := range payload {
		cents, err := core.ParseDecimalToCents(p.Amount)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		b := core.Budget{Category: p.Category, Amount: core.Money{Cents: cents}}
		if err := b.Validate(); err != nil {
			writeDomainError(w, r, err)
			return
		}
		if i, ok := index[b.Category]; ok {
			budgets[i] = b
			continue
		}
		index[b.Category] = len(budgets)
		budgets = append(budgets, b)
	}

	if err := s.store.SaveBudgets(r.Context(), budgets); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.store.LoadPreferences(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesPayload{
		Currency:       prefs.Currency,
		AlertThreshold: prefs.AlertThreshold,
	})
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var payload preferencesPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	currency, err := core.NormalizeCurrency(payload.Currency)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	prefs := core.Preferences{
		Currency:       currency,
		AlertThreshold: payload.AlertThreshold,
	}
	if err := prefs.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := s.store.SavePreferences(r.Context(), prefs); err != nil {
		writeDomainError(w, r, err)
		return
	}

	// The preferred currency scopes the alerts view.
	s.invalidateSummaries()
	writeJSON(w, http.StatusOK, payload)
}
