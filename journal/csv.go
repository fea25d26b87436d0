package journal

import (
	"encoding/csv"
	"io"
	"strings"
	"time"
)

// CSVHeader is the first row WriteCSV emits.
var CSVHeader = []string{
	"id", "symbol", "type", "open_date", "close_date",
	"entry_price", "exit_price", "quantity", "profit", "notes", "tags",
}

// WriteCSV writes trades as CSV, one row per trade after the header.
// Tags are joined with ';'.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Symbol,
			string(t.Type),
			t.OpenDate.Format(time.RFC3339),
			t.CloseDate.Format(time.RFC3339),
			t.EntryPrice.String(),
			t.ExitPrice.String(),
			t.Quantity.String(),
			t.Profit.StringFixed(2),
			t.Notes,
			strings.Join(t.Tags, ";"),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
