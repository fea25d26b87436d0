package journal

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is written into every saved snapshot.
const SnapshotVersion = 1

// State is the whole persisted journal.
type State struct {
	Trades       []Trade   `json:"trades"`
	SelectedDate time.Time `json:"selectedDate"`
}

type snapshot struct {
	Trades       []Trade   `json:"trades"`
	SelectedDate time.Time `json:"selectedDate"`
	Version      int       `json:"version"`
}

// wireState accepts both the flat layout and the {"state": {...}} envelope
// written by the browser build of the journal.
type wireState struct {
	Trades       []Trade    `json:"trades"`
	SelectedDate *time.Time `json:"selectedDate"`
	Version      int        `json:"version"`
	State        *struct {
		Trades       []Trade    `json:"trades"`
		SelectedDate *time.Time `json:"selectedDate"`
	} `json:"state"`
}

// EncodeState serialises st as a versioned JSON snapshot.
func EncodeState(st State) ([]byte, error) {
	trades := st.Trades
	if trades == nil {
		trades = []Trade{}
	}
	return json.Marshal(snapshot{
		Trades:       trades,
		SelectedDate: st.SelectedDate,
		Version:      SnapshotVersion,
	})
}

// DecodeState parses a snapshot. A missing selectedDate comes back as the
// zero time; the caller picks the default.
func DecodeState(data []byte) (State, error) {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if w.Version > SnapshotVersion {
		return State{}, fmt.Errorf("decode snapshot: version %d is newer than %d", w.Version, SnapshotVersion)
	}

	trades, selected := w.Trades, w.SelectedDate
	if w.State != nil {
		trades, selected = w.State.Trades, w.State.SelectedDate
	}

	st := State{Trades: trades}
	if st.Trades == nil {
		st.Trades = []Trade{}
	}
	if selected != nil {
		st.SelectedDate = *selected
	}
	return st, nil
}
