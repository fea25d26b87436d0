package journal

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// Trade is one journal entry. CloseDate is the date every query filters
// and groups on. Profit is whatever the user entered; it is never derived
// from prices and quantity so fees and slippage can be folded in by hand.
type Trade struct {
	ID string `json:"id"`

	// Date mirrors CloseDate at creation. Kept for snapshot compatibility,
	// nothing reads it.
	Date      time.Time `json:"date"`
	OpenDate  time.Time `json:"openDate"`
	CloseDate time.Time `json:"closeDate"`

	Symbol     string          `json:"symbol"`
	Type       Side            `json:"type"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	Quantity   decimal.Decimal `json:"quantity"`
	Profit     decimal.Decimal `json:"profit"`
	Notes      string          `json:"notes"`
	Tags       []string        `json:"tags,omitempty"`
}

// MarshalJSON writes prices, quantity and profit as JSON numbers, the
// layout the browser journal reads. decimal.Decimal quotes them by default.
// Decoding needs no counterpart: Decimal accepts numbers and strings.
func (t Trade) MarshalJSON() ([]byte, error) {
	type plain Trade
	return json.Marshal(struct {
		plain
		EntryPrice json.Number `json:"entryPrice"`
		ExitPrice  json.Number `json:"exitPrice"`
		Quantity   json.Number `json:"quantity"`
		Profit     json.Number `json:"profit"`
	}{
		plain:      plain(t),
		EntryPrice: json.Number(t.EntryPrice.String()),
		ExitPrice:  json.Number(t.ExitPrice.String()),
		Quantity:   json.Number(t.Quantity.String()),
		Profit:     json.Number(t.Profit.String()),
	})
}

// clone returns a copy that shares no slices with t.
func (t Trade) clone() Trade {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	return t
}

// TradeInput is a Trade before the store assigns its ID.
type TradeInput struct {
	Date       time.Time
	OpenDate   time.Time
	CloseDate  time.Time
	Symbol     string
	Type       Side
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	Quantity   decimal.Decimal
	Profit     decimal.Decimal
	Notes      string
	Tags       []string
}

func (in TradeInput) trade(id string) Trade {
	return Trade{
		ID:         id,
		Date:       in.Date,
		OpenDate:   in.OpenDate,
		CloseDate:  in.CloseDate,
		Symbol:     in.Symbol,
		Type:       in.Type,
		EntryPrice: in.EntryPrice,
		ExitPrice:  in.ExitPrice,
		Quantity:   in.Quantity,
		Profit:     in.Profit,
		Notes:      in.Notes,
		Tags:       in.Tags,
	}.clone()
}

// TradePatch is a partial update. nil fields are left alone.
type TradePatch struct {
	Date       *time.Time
	OpenDate   *time.Time
	CloseDate  *time.Time
	Symbol     *string
	Type       *Side
	EntryPrice *decimal.Decimal
	ExitPrice  *decimal.Decimal
	Quantity   *decimal.Decimal
	Profit     *decimal.Decimal
	Notes      *string
	Tags       *[]string
}

// IsZero reports whether the patch sets no field.
func (p TradePatch) IsZero() bool {
	return p == TradePatch{}
}

// apply merges the set fields of p onto t.
func (p TradePatch) apply(t Trade) Trade {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.OpenDate != nil {
		t.OpenDate = *p.OpenDate
	}
	if p.CloseDate != nil {
		t.CloseDate = *p.CloseDate
	}
	if p.Symbol != nil {
		t.Symbol = *p.Symbol
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.EntryPrice != nil {
		t.EntryPrice = *p.EntryPrice
	}
	if p.ExitPrice != nil {
		t.ExitPrice = *p.ExitPrice
	}
	if p.Quantity != nil {
		t.Quantity = *p.Quantity
	}
	if p.Profit != nil {
		t.Profit = *p.Profit
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Tags != nil {
		t.Tags = append([]string(nil), (*p.Tags)...)
	}
	return t
}

// WeekSummary is the profit and trade count of one week of a month.
type WeekSummary struct {
	WeekNumber  int             `json:"weekNumber"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
	TradeCount  int             `json:"tradeCount"`
}
