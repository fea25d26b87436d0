package report

import (
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"60", "USD", "$60.00"},
		{"-40", "USD", "-$40.00"},
		{"1234.567", "USD", "$1,234.57"},
		{"0", "USD", "$0.00"},
		{"1500", "JPY", "¥1,500"},
		{"12.5", "ZZZ", "12.50 ZZZ"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(dec(tt.amount), tt.currency))
		})
	}
}

func TestSignedMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+$60.00", SignedMoney(dec("60"), "USD"))
	assert.Equal(t, "-$40.00", SignedMoney(dec("-40"), "USD"))
	assert.Equal(t, "$0.00", SignedMoney(decimal.Zero, "USD"))
}

func sampleTrades() []journal.Trade {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return []journal.Trade{
		{
			ID:        "T1",
			OpenDate:  day.Add(9 * time.Hour),
			CloseDate: day.Add(10 * time.Hour),
			Symbol:    "AAPL",
			Type:      journal.Buy,
			Quantity:  dec("10"),
			Profit:    dec("100"),
			Notes:     "gap | go",
		},
		{
			ID:        "T2",
			OpenDate:  day.Add(11 * time.Hour),
			CloseDate: day.Add(14 * time.Hour),
			Symbol:    "MSFT",
			Type:      journal.Sell,
			Quantity:  dec("5"),
			Profit:    dec("-40"),
		},
	}
}

func TestDayMarkdown(t *testing.T) {
	t.Parallel()

	trades := sampleTrades()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	md := DayMarkdown(journal.Stats(day, trades), trades, "USD")

	assert.Contains(t, md, "# Trades for March 15, 2024")
	assert.Contains(t, md, "- Total P/L: **+$60.00**")
	assert.Contains(t, md, "- Win rate: 50% (1 of 2 trades)")
	assert.Contains(t, md, "- Most significant: AAPL (+$100.00)")
	assert.Contains(t, md, "| T1 | AAPL | buy |")
	assert.Contains(t, md, `gap \| go`)
	assert.Contains(t, md, "| -$40.00 |")
}

func TestDayMarkdownEmpty(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	md := DayMarkdown(journal.Stats(day, nil), nil, "USD")

	assert.Contains(t, md, "# Trades for March 16, 2024")
	assert.Contains(t, md, "No trades recorded for this date.")
	assert.NotContains(t, md, "Win rate")
}

func TestMonthMarkdown(t *testing.T) {
	t.Parallel()

	weeks := []journal.WeekSummary{
		{WeekNumber: 9, TotalProfit: dec("10"), TradeCount: 1},
		{WeekNumber: 10, TotalProfit: decimal.Zero, TradeCount: 0},
		{WeekNumber: 11, TotalProfit: dec("65.5"), TradeCount: 3},
	}
	md := MonthMarkdown(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), weeks, dec("75.5"), "USD")

	assert.Contains(t, md, "# Monthly Stats: March 2024")
	assert.Contains(t, md, "- Total P/L: **+$75.50**")
	assert.Contains(t, md, "- Trade count: 4")
	assert.Contains(t, md, "| Week 9 | +$10.00 | 1 trade |")
	assert.Contains(t, md, "| Week 10 | $0.00 | 0 trades |")
	assert.Contains(t, md, "| Week 11 | +$65.50 | 3 trades |")

	// weeks keep the order given
	assert.Less(t, strings.Index(md, "Week 9 "), strings.Index(md, "Week 11 "))
}

func TestTradesMarkdown(t *testing.T) {
	t.Parallel()

	md := TradesMarkdown("March", sampleTrades(), "USD")
	assert.Contains(t, md, "# March")
	assert.Contains(t, md, "| T2 | Mar 15, 14:00 | MSFT | sell | 5 | -$40.00 |")
	assert.Contains(t, md, "Total: **+$60.00** over 2 trades")

	assert.Contains(t, TradesMarkdown("Empty", nil, "USD"), "No trades.")
}

func TestRender(t *testing.T) {
	t.Parallel()

	md := MonthMarkdown(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil, decimal.Zero, "USD")
	out, err := Render(md, 80, "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly Stats: March 2024")
}

func TestCheckStyle(t *testing.T) {
	t.Parallel()

	for _, style := range []string{"", "auto", "dark", "light", "notty", "ascii"} {
		assert.NoError(t, CheckStyle(style), style)
	}
	assert.Error(t, CheckStyle("neon"))

	_, err := Render("# hi", 80, "neon")
	assert.ErrorContains(t, err, `unknown style "neon"`)
}
