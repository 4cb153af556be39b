// Package export produces one-way, read-only projections of the transaction
// list for sharing outside the application.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

var csvHeader = []string{"id", "date", "description", "category", "type", "amount", "currency", "notes"}

// WriteCSV writes the transactions as a delimited document. Amounts are
// signed: expenses are negative, income positive. Quote-escaping of embedded
// delimiters follows RFC 4180 via encoding/csv.
func WriteCSV(w io.Writer, transactions []core.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range transactions {
		amount := t.Amount
		if t.Type == core.Expense {
			amount.Cents = -amount.Cents
		}
		record := []string{
			t.ID,
			t.Date.ISO(),
			t.Description,
			t.Category,
			string(t.Type),
			amount.String(),
			t.Currency,
			t.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record %s: %w", t.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
