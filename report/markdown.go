package report

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

func funcs(currency string) template.FuncMap {
	return template.FuncMap{
		"money":  func(d decimal.Decimal) string { return Money(d, currency) },
		"signed": func(d decimal.Decimal) string { return SignedMoney(d, currency) },
		"day":    func(t time.Time) string { return t.Format("January 2, 2006") },
		"month":  func(t time.Time) string { return t.Format("January 2006") },
		"clock":  func(t time.Time) string { return t.Format("Jan 2, 15:04") },
		"cell":   cell,
		"trades": plural,
	}
}

// cell keeps free text from breaking a markdown table row.
func cell(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func plural(n int) string {
	if n == 1 {
		return "1 trade"
	}
	return strconv.Itoa(n) + " trades"
}

func render(name, text string, currency string, data any) string {
	t := template.Must(template.New(name).Funcs(funcs(currency)).Parse(text))
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// templates are fixed and data is typed, so this is a programming error
		panic(err)
	}
	return buf.String()
}

const dayTemplate = `# Trades for {{day .Stats.Day}}
{{if not .Trades}}
No trades recorded for this date.
{{else}}
- Total P/L: **{{signed .Stats.TotalProfit}}**
- Win rate: {{.Stats.WinRate}}% ({{.Stats.Wins}} of {{trades .Stats.TradeCount}})
{{- with .Stats.MostSignificant}}
- Most significant: {{.Symbol}} ({{signed .Profit}})
{{- end}}

| ID | Symbol | Type | Entry | Exit | Qty | Open | Close | P/L | Notes |
|----|--------|------|------:|-----:|----:|------|-------|----:|-------|
{{- range .Trades}}
| {{.ID}} | {{cell .Symbol}} | {{.Type}} | {{money .EntryPrice}} | {{money .ExitPrice}} | {{.Quantity}} | {{clock .OpenDate}} | {{clock .CloseDate}} | {{signed .Profit}} | {{cell .Notes}} |
{{- end}}
{{end}}`

// DayMarkdown renders one day's trade list with its calendar statistics.
func DayMarkdown(stats journal.DayStats, trades []journal.Trade, currency string) string {
	return render("day", dayTemplate, currency, struct {
		Stats  journal.DayStats
		Trades []journal.Trade
	}{stats, trades})
}

const monthTemplate = `# Monthly Stats: {{month .Month}}

- Total P/L: **{{signed .Total}}**
- Trade count: {{.Count}}

| Week | P/L | Trades |
|------|----:|-------:|
{{- range .Weeks}}
| Week {{.WeekNumber}} | {{signed .TotalProfit}} | {{trades .TradeCount}} |
{{- end}}
`

// MonthMarkdown renders the summary sidebar: the month total and one row
// per week.
func MonthMarkdown(month time.Time, weeks []journal.WeekSummary, total decimal.Decimal, currency string) string {
	count := 0
	for _, w := range weeks {
		count += w.TradeCount
	}
	return render("month", monthTemplate, currency, struct {
		Month time.Time
		Weeks []journal.WeekSummary
		Total decimal.Decimal
		Count int
	}{month, weeks, total, count})
}

const listTemplate = `# {{.Title}}
{{if not .Trades}}
No trades.
{{else}}
| ID | Close | Symbol | Type | Qty | P/L |
|----|-------|--------|------|----:|----:|
{{- range .Trades}}
| {{.ID}} | {{clock .CloseDate}} | {{cell .Symbol}} | {{.Type}} | {{.Quantity}} | {{signed .Profit}} |
{{- end}}

Total: **{{signed .Total}}** over {{trades (len .Trades)}}
{{end}}`

// TradesMarkdown renders a flat list of trades under title.
func TradesMarkdown(title string, trades []journal.Trade, currency string) string {
	return render("list", listTemplate, currency, struct {
		Title  string
		Trades []journal.Trade
		Total  decimal.Decimal
	}{title, trades, journal.SumProfit(trades)})
}
