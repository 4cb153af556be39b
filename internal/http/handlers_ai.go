package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/ai"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/services"
)

type categorizePayload struct {
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	var payload categorizePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := s.resolver.Resolve(r.Context(), payload.Description)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"category": category})
}

func (s *Server) handleConfirmCategory(w http.ResponseWriter, r *http.Request) {
	var payload categorizePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.resolver.Confirm(r.Context(), payload.Description, payload.Category); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleInsights asks the generator for advisory text over the current
// month. Generator absence or failure degrades to the fallback message.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	s.reconcile(r)

	prefs, err := s.store.LoadPreferences(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	budgets, err := s.store.LoadBudgets(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	summary := services.Summarize(txs, prefs.Currency, services.PeriodMonthly, time.Now())

	text := ai.FallbackInsight
	if s.insights != nil {
		generated, err := s.insights.GenerateInsights(r.Context(), summary, budgets)
		if err != nil {
			slog.WarnContext(r.Context(), "Insight generation failed, using fallback", "error", err)
		} else {
			text = generated
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"insights": text})
}
