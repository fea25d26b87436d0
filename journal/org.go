package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting
// into a journal. Structured facts go in the PROPERTIES drawer; the notes
// become the Review section.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", strings.ToUpper(string(t.Type)), t.Symbol, shortID(t.ID))
	open := t.OpenDate.UTC().Format(time.RFC3339)
	close := t.CloseDate.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":TYPE: %s\n", t.Type))
	b.WriteString(fmt.Sprintf(":QUANTITY: %s\n", t.Quantity.String()))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %s\n", t.EntryPrice.String()))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %s\n", t.ExitPrice.String()))
	b.WriteString(fmt.Sprintf(":OPEN_TIME: %s\n", open))
	b.WriteString(fmt.Sprintf(":CLOSE_TIME: %s\n", close))
	b.WriteString(fmt.Sprintf(":PROFIT: %s\n", t.Profit.StringFixed(2)))
	if len(t.Tags) > 0 {
		b.WriteString(fmt.Sprintf(":TAGS: %s\n", strings.Join(t.Tags, " ")))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Review\n")
	if notes := strings.TrimSpace(t.Notes); notes != "" {
		for _, line := range strings.Split(notes, "\n") {
			b.WriteString("- " + line + "\n")
		}
	} else {
		b.WriteString("- \n")
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
