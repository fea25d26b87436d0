package journal

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WeeklySummaries returns one bucket per week touched by month's days, in
// the order the weeks first appear scanning from day 1. Every bucket is
// present even when it holds no trades.
func (s *Store) WeeklySummaries(month time.Time) []WeekSummary {
	out := []WeekSummary{}
	index := make(map[int]int)
	for _, day := range s.cal.MonthDays(month) {
		w := s.cal.Week(day)
		if _, ok := index[w]; ok {
			continue
		}
		index[w] = len(out)
		out = append(out, WeekSummary{WeekNumber: w, TotalProfit: decimal.Zero})
	}

	first, last := s.cal.MonthBounds(month)
	for _, t := range s.TradesByDateRange(first, last) {
		i, ok := index[s.cal.Week(t.CloseDate)]
		if !ok {
			// not a week of this month
			continue
		}
		out[i].TotalProfit = out[i].TotalProfit.Add(t.Profit)
		out[i].TradeCount++
	}
	return out
}

// MonthlyProfit sums the profit of every trade closed in month.
func (s *Store) MonthlyProfit(month time.Time) decimal.Decimal {
	first, last := s.cal.MonthBounds(month)
	return SumProfit(s.TradesByDateRange(first, last))
}

// SumProfit adds up the profit of trades.
func SumProfit(trades []Trade) decimal.Decimal {
	total := decimal.Zero
	for _, t := range trades {
		total = total.Add(t.Profit)
	}
	return total
}

// DayStats is what a calendar cell shows for one day.
type DayStats struct {
	Day         time.Time
	TotalProfit decimal.Decimal
	TradeCount  int
	Wins        int
	// WinRate is the share of winning trades as a whole percent, rounded
	// half up. Zero when there are no trades.
	WinRate int
	// MostSignificant is the trade with the largest absolute profit; the
	// earliest entered wins ties. nil when there are no trades.
	MostSignificant *Trade
	HasNotes        bool
}

// DayStats computes the calendar cell statistics for day.
func (s *Store) DayStats(day time.Time) DayStats {
	return Stats(s.cal.Day(day), s.TradesByDate(day))
}

// Stats computes DayStats over trades, which are taken to be one day's.
func Stats(day time.Time, trades []Trade) DayStats {
	st := DayStats{
		Day:         day,
		TotalProfit: SumProfit(trades),
		TradeCount:  len(trades),
	}
	if len(trades) == 0 {
		return st
	}

	for _, t := range trades {
		if t.Profit.IsPositive() {
			st.Wins++
		}
		if strings.TrimSpace(t.Notes) != "" {
			st.HasNotes = true
		}
	}
	st.WinRate = int(decimal.NewFromInt(int64(st.Wins) * 100).
		Div(decimal.NewFromInt(int64(len(trades)))).
		Round(0).IntPart())

	sorted := slices.Clone(trades)
	slices.SortStableFunc(sorted, func(a, b Trade) int {
		return b.Profit.Abs().Cmp(a.Profit.Abs())
	})
	top := sorted[0].clone()
	st.MostSignificant = &top
	return st
}
