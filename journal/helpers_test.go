package journal

import (
	"fmt"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("T%d", n)
	}
}

func testOptions(extra ...Option) []Option {
	opts := []Option{
		WithCalendar(NewCalendar(time.UTC, LocaleWeeks{})),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(seqIDs()),
	}
	return append(opts, extra...)
}

func newTestStore(t *testing.T, extra ...Option) (*Store, *storage.Memory) {
	t.Helper()

	mem := storage.NewMemory()
	return Open(mem, testOptions(extra...)...), mem
}

func input(symbol string, closeAt time.Time, profit string) TradeInput {
	return TradeInput{
		Date:       closeAt,
		OpenDate:   closeAt.Add(-2 * time.Hour),
		CloseDate:  closeAt,
		Symbol:     symbol,
		Type:       Buy,
		EntryPrice: dec("100"),
		ExitPrice:  dec("101"),
		Quantity:   dec("10"),
		Profit:     dec(profit),
		Notes:      "",
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func ids(trades []Trade) []string {
	out := make([]string, 0, len(trades))
	for _, t := range trades {
		out = append(out, t.ID)
	}
	return out
}
