package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

// tradeFlags are the entry form shared by add and edit.
type tradeFlags struct {
	symbol string
	side   string
	entry  string
	exit   string
	qty    string
	profit string
	open   string
	close  string
	notes  string
	tags   []string
}

func (f *tradeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.symbol, "symbol", "s", "", "instrument symbol")
	cmd.Flags().StringVarP(&f.side, "type", "t", "buy", "buy or sell")
	cmd.Flags().StringVar(&f.entry, "entry", "", "entry price")
	cmd.Flags().StringVar(&f.exit, "exit", "", "exit price")
	cmd.Flags().StringVarP(&f.qty, "qty", "q", "", "quantity")
	cmd.Flags().StringVarP(&f.profit, "profit", "p", "", "realised profit, as entered (fees included)")
	cmd.Flags().StringVar(&f.open, "open", "", "open date/time (defaults to close)")
	cmd.Flags().StringVar(&f.close, "close", "", "close date/time (defaults to the selected date)")
	cmd.Flags().StringVarP(&f.notes, "notes", "n", "", "free-form notes")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "label, repeatable")
}

// input builds a full trade from the flags. Open and close default to the
// selected date like the entry form does.
func (f *tradeFlags) input(selected time.Time, loc *time.Location) (journal.TradeInput, error) {
	var in journal.TradeInput
	var err error

	in.Symbol = strings.TrimSpace(f.symbol)
	if in.Type, err = parseSide(f.side); err != nil {
		return in, err
	}
	if in.EntryPrice, err = parseDecimal("entry", f.entry); err != nil {
		return in, err
	}
	if in.ExitPrice, err = parseDecimal("exit", f.exit); err != nil {
		return in, err
	}
	if in.Quantity, err = parseDecimal("qty", f.qty); err != nil {
		return in, err
	}
	if in.Profit, err = parseDecimal("profit", f.profit); err != nil {
		return in, err
	}

	in.CloseDate = selected
	if f.close != "" {
		if in.CloseDate, err = parseTime(f.close, loc); err != nil {
			return in, fmt.Errorf("--close: %w", err)
		}
	}
	in.OpenDate = in.CloseDate
	if f.open != "" {
		if in.OpenDate, err = parseTime(f.open, loc); err != nil {
			return in, fmt.Errorf("--open: %w", err)
		}
	}
	in.Date = in.CloseDate
	in.Notes = f.notes
	in.Tags = f.tags
	return in, nil
}

// patch builds a partial update from the flags the user actually set.
func (f *tradeFlags) patch(cmd *cobra.Command, loc *time.Location) (journal.TradePatch, error) {
	var p journal.TradePatch
	changed := cmd.Flags().Changed

	if changed("symbol") {
		s := strings.TrimSpace(f.symbol)
		p.Symbol = &s
	}
	if changed("type") {
		side, err := parseSide(f.side)
		if err != nil {
			return p, err
		}
		p.Type = &side
	}
	if changed("entry") {
		d, err := parseDecimal("entry", f.entry)
		if err != nil {
			return p, err
		}
		p.EntryPrice = &d
	}
	if changed("exit") {
		d, err := parseDecimal("exit", f.exit)
		if err != nil {
			return p, err
		}
		p.ExitPrice = &d
	}
	if changed("qty") {
		d, err := parseDecimal("qty", f.qty)
		if err != nil {
			return p, err
		}
		p.Quantity = &d
	}
	if changed("profit") {
		d, err := parseDecimal("profit", f.profit)
		if err != nil {
			return p, err
		}
		p.Profit = &d
	}
	if changed("open") {
		t, err := parseTime(f.open, loc)
		if err != nil {
			return p, fmt.Errorf("--open: %w", err)
		}
		p.OpenDate = &t
	}
	if changed("close") {
		t, err := parseTime(f.close, loc)
		if err != nil {
			return p, fmt.Errorf("--close: %w", err)
		}
		p.CloseDate = &t
	}
	if changed("notes") {
		p.Notes = &f.notes
	}
	if changed("tag") {
		p.Tags = &f.tags
	}
	return p, nil
}

func newAddCmd(rc *RootConfig) *cobra.Command {
	var f tradeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a closed trade",
		Long: `Record a closed trade. Profit is taken as entered and never derived
from prices, so fees can be folded in.

Example:
  tradejournal add -s AAPL -t buy --entry 172.50 --exit 175 -q 10 -p 24.10 \
    --open "2024-03-15 09:45" --close "2024-03-15 15:30" --tag momentum`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rc.Store()
			if err != nil {
				return err
			}
			loc := rc.cal.Location()
			in, err := f.input(store.SelectedDate().In(loc), loc)
			if err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return err
			}

			tradeID := store.AddTrade(in)
			if err := rc.saved(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tradeID)
			return nil
		},
	}
	f.register(cmd)
	for _, name := range []string{"symbol", "entry", "exit", "qty", "profit"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newEditCmd(rc *RootConfig) *cobra.Command {
	var f tradeFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a recorded trade",
		Long: `Change fields of a recorded trade. Only the flags given are updated;
an explicit --profit always replaces the stored value.

Example:
  tradejournal edit 01HS3X... --profit 30 --notes "moved stop to breakeven"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rc.Store()
			if err != nil {
				return err
			}
			if _, ok := store.Trade(args[0]); !ok {
				return fmt.Errorf("trade %s not found", args[0])
			}

			patch, err := f.patch(cmd, rc.cal.Location())
			if err != nil {
				return err
			}
			if patch.IsZero() {
				return fmt.Errorf("nothing to change")
			}
			if err := patch.Validate(); err != nil {
				return err
			}

			store.UpdateTrade(args[0], patch)
			return rc.saved()
		},
	}
	f.register(cmd)
	return cmd
}

func newRmCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a trade",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rc.Store()
			if err != nil {
				return err
			}
			if _, ok := store.Trade(args[0]); !ok {
				return fmt.Errorf("trade %s not found", args[0])
			}
			store.DeleteTrade(args[0])
			return rc.saved()
		},
	}
}

func newShowCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one trade as an Org entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rc.Store()
			if err != nil {
				return err
			}
			tr, ok := store.Trade(args[0])
			if !ok {
				return fmt.Errorf("trade %s not found", args[0])
			}
			tr = localize([]journal.Trade{tr}, rc.cal.Location())[0]
			_, err = fmt.Fprint(cmd.OutOrStdout(), journal.FormatTradeOrg(tr))
			return err
		},
	}
}
