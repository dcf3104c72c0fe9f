package writer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

// CSVWriter writes the amount candidates of a record as CSV rows.
type CSVWriter struct {
	IncludeHeader bool
}

// Write writes one row per amount in extraction order. Document-level
// fields are repeated on every row so each row stands alone.
func (w *CSVWriter) Write(out io.Writer, txn *models.TransactionRecord) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		header := []string{"Amount", "Currency", "Formatted", "Type", "Merchant", "Date", "Card Last4"}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	date := ""
	if len(txn.Dates) > 0 {
		date = txn.Dates[0]
	}
	card := ""
	if txn.CardInfo != nil {
		card = txn.CardInfo.Last4
	}

	for _, a := range txn.Amounts {
		row := []string{
			a.Value.String(),
			string(a.Currency),
			a.DisplayText,
			string(txn.TransactionType),
			deref(txn.Merchant),
			date,
			card,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
