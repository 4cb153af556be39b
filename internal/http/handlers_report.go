package http

import (
	"net/http"
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/currency"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/services"
)

type categoryAmountPayload struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type summaryPayload struct {
	Currency     string                  `json:"currency"`
	Period       string                  `json:"period"`
	TotalIncome  string                  `json:"total_income"`
	TotalExpense string                  `json:"total_expense"`
	NetSavings   string                  `json:"net_savings"`
	Breakdown    []categoryAmountPayload `json:"breakdown"`
}

type alertPayload struct {
	Category   string  `json:"category"`
	Budget     string  `json:"budget"`
	Spent      string  `json:"spent"`
	Percentage float64 `json:"percentage"`
}

func toSummaryPayload(s core.SummaryData, period services.Period) summaryPayload {
	out := summaryPayload{
		Currency:     s.Currency,
		Period:       string(period),
		TotalIncome:  s.TotalIncome.String(),
		TotalExpense: s.TotalExpense.String(),
		NetSavings:   s.NetSavings.String(),
		Breakdown:    make([]categoryAmountPayload, 0, len(s.Breakdown)),
	}
	for _, ca := range s.Breakdown {
		out.Breakdown = append(out.Breakdown, categoryAmountPayload{
			Name:   ca.Name,
			Amount: ca.Amount.String(),
		})
	}
	return out
}

// handleSummary serves GET /summary?period=&currency=. Results are cached
// per period+currency until the next mutation.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	period := services.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = services.PeriodMonthly
	}
	if !period.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "invalid period: must be one of all, daily, weekly, monthly")
		return
	}

	code := r.URL.Query().Get("currency")
	if code == "" {
		prefs, err := s.store.LoadPreferences(r.Context())
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		code = prefs.Currency
	}
	code, err := core.NormalizeCurrency(code)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	cacheKey := string(period) + "|" + code
	if cached, ok := s.summaryCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, toSummaryPayload(cached, period))
		return
	}

	s.reconcile(r)

	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	summary := services.Summarize(txs, code, period, time.Now())
	s.summaryCache.Set(cacheKey, summary)
	writeJSON(w, http.StatusOK, toSummaryPayload(summary, period))
}

// handleAlerts evaluates budgets against the current month's spend in the
// preferred currency.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
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
	alerts := services.BudgetAlerts(summary, budgets, prefs.AlertThreshold)

	out := make([]alertPayload, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertPayload{
			Category:   a.Category,
			Budget:     a.Budget.String(),
			Spent:      a.Spent.String(),
			Percentage: a.Percentage,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListCurrencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, currency.Supported())
}

// handleConvert serves GET /convert?amount=&from=&to= against the static
// rate table.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	cents, err := core.ParseDecimalToCents(q.Get("amount"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	from, err := core.NormalizeCurrency(q.Get("from"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	to, err := core.NormalizeCurrency(q.Get("to"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	converted, err := currency.Convert(core.Money{Cents: cents}, from, to)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"amount":   converted.String(),
		"currency": to,
	})
}
