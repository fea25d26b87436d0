package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

var timeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parseTime reads RFC 3339 or a local date/time in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date or time", s)
}

func parseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as YYYY-MM", s)
	}
	return t, nil
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("--%s: %q is not a number", name, s)
	}
	return d, nil
}

func parseSide(s string) (journal.Side, error) {
	side := journal.Side(s)
	if !side.Valid() {
		return "", fmt.Errorf("--type must be buy or sell, got %q", s)
	}
	return side, nil
}

// localize moves trade times into loc for display.
func localize(trades []journal.Trade, loc *time.Location) []journal.Trade {
	for i := range trades {
		trades[i].OpenDate = trades[i].OpenDate.In(loc)
		trades[i].CloseDate = trades[i].CloseDate.In(loc)
		trades[i].Date = trades[i].Date.In(loc)
	}
	return trades
}
