package journal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeStateLayout(t *testing.T) {
	t.Parallel()

	st := State{
		Trades: []Trade{{
			ID:         "T1",
			Date:       at(2024, 3, 15, 14, 0),
			OpenDate:   at(2024, 3, 15, 9, 30),
			CloseDate:  at(2024, 3, 15, 14, 0),
			Symbol:     "AAPL",
			Type:       Sell,
			EntryPrice: dec("172.5"),
			ExitPrice:  dec("170.25"),
			Quantity:   dec("20"),
			Profit:     dec("45"),
			Notes:      "fade",
		}},
		SelectedDate: at(2024, 3, 15, 0, 0),
	}

	data, err := EncodeState(st)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2024-03-15T00:00:00Z", raw["selectedDate"])
	assert.EqualValues(t, SnapshotVersion, raw["version"])

	trades := raw["trades"].([]any)
	require.Len(t, trades, 1)
	tr := trades[0].(map[string]any)
	for _, key := range []string{"id", "date", "openDate", "closeDate", "symbol", "type", "entryPrice", "exitPrice", "quantity", "profit", "notes"} {
		assert.Contains(t, tr, key)
	}
	assert.NotContains(t, tr, "tags")
	assert.Equal(t, "2024-03-15T09:30:00Z", tr["openDate"])
	assert.Equal(t, "sell", tr["type"])

	assert.Equal(t, 172.5, tr["entryPrice"])
	assert.Equal(t, 170.25, tr["exitPrice"])
	assert.Equal(t, float64(20), tr["quantity"])
	assert.Equal(t, float64(45), tr["profit"])
}

func TestEncodeStateKeepsDecimalDigits(t *testing.T) {
	t.Parallel()

	s, mem := newTestStore(t)
	in := input("EURUSD", at(2024, 3, 15, 14, 0), "-40.25")
	in.EntryPrice = dec("1.08731")
	in.Quantity = dec("0.1")
	s.AddTrade(in)

	data, err := mem.Load(DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entryPrice":1.08731`)
	assert.Contains(t, string(data), `"quantity":0.1`)
	assert.Contains(t, string(data), `"profit":-40.25`)
	assert.NotContains(t, string(data), `"profit":"`)

	dc := json.NewDecoder(strings.NewReader(string(data)))
	dc.UseNumber()
	var raw struct {
		Trades []map[string]any `json:"trades"`
	}
	require.NoError(t, dc.Decode(&raw))
	require.Len(t, raw.Trades, 1)
	assert.Equal(t, json.Number("-40.25"), raw.Trades[0]["profit"])

	st, err := DecodeState(data)
	require.NoError(t, err)
	assertDecimal(t, "-40.25", st.Trades[0].Profit)
	assertDecimal(t, "1.08731", st.Trades[0].EntryPrice)
}

func TestEncodeStateEmpty(t *testing.T) {
	t.Parallel()

	data, err := EncodeState(State{SelectedDate: at(2024, 1, 1, 0, 0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"trades":[],"selectedDate":"2024-01-01T00:00:00Z","version":1}`, string(data))
}

func TestDecodeStateRoundTrip(t *testing.T) {
	t.Parallel()

	in := State{
		Trades: []Trade{{
			ID:        "T1",
			CloseDate: time.Date(2024, 3, 15, 14, 0, 0, 123000000, time.FixedZone("EST", -5*60*60)),
			Symbol:    "AAPL",
			Type:      Buy,
			Profit:    dec("-0.001"),
			Tags:      []string{"a", "b"},
		}},
		SelectedDate: at(2024, 3, 15, 0, 0),
	}
	data, err := EncodeState(in)
	require.NoError(t, err)

	out, err := DecodeState(data)
	require.NoError(t, err)
	require.Len(t, out.Trades, 1)
	assert.True(t, out.Trades[0].CloseDate.Equal(in.Trades[0].CloseDate))
	assertDecimal(t, "-0.001", out.Trades[0].Profit)
	assert.Equal(t, []string{"a", "b"}, out.Trades[0].Tags)
	assert.True(t, out.SelectedDate.Equal(in.SelectedDate))
}

// Snapshots exported from the browser build wrap the state and store
// numbers as JSON numbers without tags.
const browserSnapshot = `{
  "state": {
    "trades": [
      {
        "id": "3b241101-e2bb-4255-8caf-4136c566a962",
        "date": "2024-03-15T18:30:00.000Z",
        "openDate": "2024-03-15T13:35:00.000Z",
        "closeDate": "2024-03-15T18:30:00.000Z",
        "symbol": "ES",
        "type": "buy",
        "entryPrice": 5120.25,
        "exitPrice": 5131.5,
        "quantity": 2,
        "profit": 1125,
        "notes": "opening drive"
      }
    ],
    "selectedDate": "2024-03-15T12:00:00.000Z"
  },
  "version": 0
}`

func TestDecodeBrowserSnapshot(t *testing.T) {
	t.Parallel()

	st, err := DecodeState([]byte(browserSnapshot))
	require.NoError(t, err)
	require.Len(t, st.Trades, 1)

	tr := st.Trades[0]
	assert.Equal(t, "3b241101-e2bb-4255-8caf-4136c566a962", tr.ID)
	assert.Equal(t, "ES", tr.Symbol)
	assert.Equal(t, Buy, tr.Type)
	assertDecimal(t, "5120.25", tr.EntryPrice)
	assertDecimal(t, "1125", tr.Profit)
	assert.Nil(t, tr.Tags)
	assert.True(t, tr.CloseDate.Equal(at(2024, 3, 15, 18, 30)))
	assert.True(t, st.SelectedDate.Equal(at(2024, 3, 15, 12, 0)))
}

func TestOpenBrowserSnapshot(t *testing.T) {
	t.Parallel()

	mem := storage.NewMemory()
	require.NoError(t, mem.Save(DefaultKey, []byte(browserSnapshot)))

	s := Open(mem, testOptions()...)
	got := s.TradesByDate(at(2024, 3, 15, 0, 0))
	require.Len(t, got, 1)
	assertDecimal(t, "1125", s.MonthlyProfit(at(2024, 3, 1, 0, 0)))

	// the next save rewrites it in the flat layout
	s.SetSelectedDate(at(2024, 3, 16, 0, 0))
	data, err := mem.Load(DefaultKey)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "state")
	assert.Len(t, raw["trades"], 1)
}

func TestDecodeStateDefaults(t *testing.T) {
	t.Parallel()

	st, err := DecodeState([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, st.Trades)
	assert.Empty(t, st.Trades)
	assert.True(t, st.SelectedDate.IsZero())

	st, err = DecodeState([]byte(`{"trades": null}`))
	require.NoError(t, err)
	assert.NotNil(t, st.Trades)
}

func TestDecodeStateMissingSelectedDateUsesToday(t *testing.T) {
	t.Parallel()

	mem := storage.NewMemory()
	require.NoError(t, mem.Save(DefaultKey, []byte(`{"trades": []}`)))

	s := Open(mem, testOptions()...)
	assert.Equal(t, testNow, s.SelectedDate())
}

func TestDecodeStateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"truncated", `{"trades": [`},
		{"not an object", `[1,2,3]`},
		{"bad date", `{"trades": [{"closeDate": "yesterday"}]}`},
		{"bad number", `{"trades": [{"profit": "lots"}]}`},
		{"future version", `{"trades": [], "version": 99}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeState([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
