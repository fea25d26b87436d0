package journal

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/storage"
)

// DefaultKey is the namespace the journal is saved under.
const DefaultKey = "trading-journal-storage"

// Store owns the trade collection and the selected-date cursor. Every
// mutation writes a full snapshot to its storage. A Store is not safe for
// concurrent use.
//
// Store operations never fail: unknown ids are ignored and empty queries
// return empty results. A failed save is logged and kept in LastSaveError;
// the in-memory state stays authoritative.
type Store struct {
	trades   []Trade
	selected time.Time

	storage storage.Storage
	key     string
	cal     Calendar
	now     func() time.Time
	newID   id.Generator
	log     zerolog.Logger
	saveErr error
}

type Option func(*Store)

// WithStorage sets where snapshots are written. Without one the store
// keeps its state in memory only.
func WithStorage(s storage.Storage) Option {
	return func(st *Store) { st.storage = s }
}

func WithKey(key string) Option {
	return func(st *Store) { st.key = key }
}

func WithCalendar(c Calendar) Option {
	return func(st *Store) { st.cal = c }
}

// WithClock sets the source of "today" for the default selected date.
func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

func WithIDGenerator(gen id.Generator) Option {
	return func(st *Store) { st.newID = gen }
}

func WithLogger(l zerolog.Logger) Option {
	return func(st *Store) { st.log = l.With().Str("component", "journal").Logger() }
}

// New returns an empty store: no trades, today selected.
func New(opts ...Option) *Store {
	s := &Store{
		key:   DefaultKey,
		now:   time.Now,
		newID: id.New,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

// Open returns a store hydrated from st. If the saved snapshot is missing,
// unreadable or corrupt the store starts empty with today selected.
func Open(st storage.Storage, opts ...Option) *Store {
	s := New(append(opts, WithStorage(st))...)
	s.hydrate()
	return s
}

func (s *Store) reset() {
	s.trades = []Trade{}
	s.selected = s.now()
}

func (s *Store) hydrate() {
	if s.storage == nil {
		return
	}
	data, err := s.storage.Load(s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Debug().Str("key", s.key).Msg("no saved journal, starting empty")
		} else {
			s.log.Warn().Err(err).Str("key", s.key).Msg("load journal failed, starting empty")
		}
		return
	}

	st, err := DecodeState(data)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("saved journal is corrupt, starting empty")
		return
	}

	s.trades = st.Trades
	if !st.SelectedDate.IsZero() {
		s.selected = st.SelectedDate
	}
	s.log.Debug().Int("trades", len(s.trades)).Msg("journal loaded")
}

// save writes the whole state. Failures leave the in-memory state intact.
func (s *Store) save() {
	if s.storage == nil {
		return
	}
	data, err := EncodeState(s.State())
	if err == nil {
		err = s.storage.Save(s.key, data)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("save journal failed")
	}
	s.saveErr = err
}

// LastSaveError is the error from the most recent save, nil after a
// successful one.
func (s *Store) LastSaveError() error {
	return s.saveErr
}

// Calendar returns the calendar the store buckets days and weeks with.
func (s *Store) Calendar() Calendar {
	return s.cal
}

func (s *Store) index(tradeID string) int {
	for i, t := range s.trades {
		if t.ID == tradeID {
			return i
		}
	}
	return -1
}

// AddTrade appends a new trade with a fresh id and returns the id. Fields
// are copied as given; the input is assumed already validated.
func (s *Store) AddTrade(in TradeInput) string {
	t := in.trade(s.newID())
	s.trades = append(s.trades, t)
	s.log.Debug().Str("id", t.ID).Str("symbol", t.Symbol).Msg("trade added")
	s.save()
	return t.ID
}

// UpdateTrade merges patch onto the trade with tradeID. Unknown ids are
// ignored. A profit in the patch replaces the old profit as is.
func (s *Store) UpdateTrade(tradeID string, patch TradePatch) {
	i := s.index(tradeID)
	if i < 0 {
		return
	}
	s.trades[i] = patch.apply(s.trades[i])
	s.log.Debug().Str("id", tradeID).Msg("trade updated")
	s.save()
}

// DeleteTrade removes the trade with tradeID if present.
func (s *Store) DeleteTrade(tradeID string) {
	i := s.index(tradeID)
	if i >= 0 {
		s.trades = append(s.trades[:i:i], s.trades[i+1:]...)
		s.log.Debug().Str("id", tradeID).Msg("trade deleted")
	}
	s.save()
}

func (s *Store) SetSelectedDate(t time.Time) {
	s.selected = t
	s.save()
}

func (s *Store) SelectedDate() time.Time {
	return s.selected
}

// Trade returns a copy of the trade with tradeID.
func (s *Store) Trade(tradeID string) (Trade, bool) {
	i := s.index(tradeID)
	if i < 0 {
		return Trade{}, false
	}
	return s.trades[i].clone(), true
}

// Trades returns every trade in creation order.
func (s *Store) Trades() []Trade {
	return s.filter(func(Trade) bool { return true })
}

// State returns a copy of everything the store persists.
func (s *Store) State() State {
	return State{Trades: s.Trades(), SelectedDate: s.selected}
}

func (s *Store) filter(keep func(Trade) bool) []Trade {
	out := []Trade{}
	for _, t := range s.trades {
		if keep(t) {
			out = append(out, t.clone())
		}
	}
	return out
}

// TradesByDate returns the trades that closed on day's calendar day.
func (s *Store) TradesByDate(day time.Time) []Trade {
	return s.filter(func(t Trade) bool {
		return s.cal.SameDay(t.CloseDate, day)
	})
}

// TradesByDateRange returns the trades whose close instant lies in
// [start, end].
func (s *Store) TradesByDateRange(start, end time.Time) []Trade {
	return s.filter(func(t Trade) bool {
		return !t.CloseDate.Before(start) && !t.CloseDate.After(end)
	})
}
