package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

type recurringPayload struct {
	Description    string `json:"description"`
	Amount         string `json:"amount"`
	Type           string `json:"type"`
	Category       string `json:"category"`
	Frequency      string `json:"frequency"`
	StartDate      string `json:"start_date"`
	NextOccurrence string `json:"next_occurrence,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Currency       string `json:"currency"`
}

type recurringResponse struct {
	ID string `json:"id"`
	recurringPayload
}

func toRecurringResponse(rule core.RecurringTransaction) recurringResponse {
	return recurringResponse{
		ID: rule.ID,
		recurringPayload: recurringPayload{
			Description:    rule.Description,
			Amount:         rule.Amount.String(),
			Type:           string(rule.Type),
			Category:       rule.Category,
			Frequency:      string(rule.Frequency),
			StartDate:      rule.StartDate.ISO(),
			NextOccurrence: rule.NextOccurrence.ISO(),
			Notes:          rule.Notes,
			Currency:       rule.Currency,
		},
	}
}

func (s *Server) handleListRecurring(w http.ResponseWriter, r *http.Request) {
	rules, err := s.store.LoadRecurring(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]recurringResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toRecurringResponse(rule))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRecurring(w http.ResponseWriter, r *http.Request) {
	var payload recurringPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(payload.Amount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	startDate, err := core.ParseDate(payload.StartDate)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	rule := core.RecurringTransaction{
		ID:          uuid.NewString(),
		Description: payload.Description,
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(payload.Type),
		Category:    payload.Category,
		Frequency:   core.Frequency(payload.Frequency),
		StartDate:   startDate,
		Notes:       payload.Notes,
	}

	// New rules start materializing at their start date.
	rule.NextOccurrence = startDate
	if payload.NextOccurrence != "" {
		next, err := core.ParseDate(payload.NextOccurrence)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		rule.NextOccurrence = next
	}

	currency, err := core.NormalizeCurrency(payload.Currency)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	rule.Currency = currency

	if err := rule.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	rules, err := s.store.LoadRecurring(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := s.store.SaveRecurring(r.Context(), append(rules, rule)); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, toRecurringResponse(rule))
}

func (s *Server) handleDeleteRecurring(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rules, err := s.store.LoadRecurring(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	kept := rules[:0:0]
	for _, rule := range rules {
		if rule.ID != id {
			kept = append(kept, rule)
		}
	}
	if len(kept) == len(rules) {
		writeError(w, http.StatusNotFound, "recurring transaction not found")
		return
	}

	if err := s.store.SaveRecurring(r.Context(), kept); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
