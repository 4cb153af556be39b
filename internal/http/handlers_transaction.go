package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/export"
)

type transactionPayload struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Notes       string `json:"notes,omitempty"`
	Currency    string `json:"currency"`
}

type transactionResponse struct {
	ID string `json:"id"`
	transactionPayload
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID: t.ID,
		transactionPayload: transactionPayload{
			Description: t.Description,
			Amount:      t.Amount.String(),
			Type:        string(t.Type),
			Date:        t.Date.ISO(),
			Category:    t.Category,
			Notes:       t.Notes,
			Currency:    t.Currency,
		},
	}
}

func (p transactionPayload) toDomain(id string) (core.Transaction, error) {
	cents, err := core.ParseDecimalToCents(p.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:          id,
		Description: p.Description,
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(p.Type),
		Date:        date,
		Category:    p.Category,
		Notes:       p.Notes,
		Currency:    p.Currency,
	}, nil
}

// reconcile runs the materialization pass before reads so recurring rules
// are always reflected in what the client sees. Cached summaries are
// dropped whenever the pass created transactions.
func (s *Server) reconcile(r *http.Request) {
	if s.reconciler == nil {
		return
	}
	created, err := s.reconciler.Reconcile(r.Context(), time.Now())
	if err != nil {
		// Reads still serve the last good snapshot.
		slog.WarnContext(r.Context(), "Reconcile before read failed", "error", err)
		return
	}
	if created > 0 {
		s.invalidateSummaries()
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	s.reconcile(r)

	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var payload transactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := payload.toDomain("")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	created, err := s.transactions.Create(r.Context(), tx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload transactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := payload.toDomain(id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := s.transactions.Update(r.Context(), tx); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateSummaries()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBulkDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := decodeJSON(r, &payload); err != nil || len(payload.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "invalid request body: expected non-empty ids")
		return
	}

	if err := s.transactions.BulkDelete(r.Context(), payload.IDs); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateSummaries()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.reconcile(r)

	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := export.WriteCSV(w, txs); err != nil {
		// Headers are gone; all we can do is log.
		writeDomainError(w, r, err)
	}
}
