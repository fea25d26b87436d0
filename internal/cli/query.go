package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/report"
)

func newDayCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "List one day's trades with win rate and P/L",
		Long: `List the trades closed on one calendar day, with the day's total,
win rate and most significant trade. Defaults to the selected date.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rc.Store()
			if err != nil {
				return err
			}
			loc := rc.cal.Location()

			day := store.SelectedDate()
			if len(args) == 1 {
				if day, err = parseTime(args[0], loc); err != nil {
					return err
				}
			}

			stats := store.DayStats(day)
			trades := localize(store.TradesByDate(day), loc)
			stats.Day = stats.Day.In(loc)
			return rc.print(cmd.OutOrStdout(), report.DayMarkdown(stats, trades, rc.currency()))
		},
	}
}

func newRangeCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "range <start> <end>",
		Short: "List trades closed between two instants, inclusive",
		Long: `List trades whose close time falls within [start, end]. Bounds are
RFC 3339 or local "YYYY-MM-DD[ HH:MM]"; a bare end date covers that whole day.

Example:
  tradejournal range 2024-03-01 2024-03-15`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rc.Store()
			if err != nil {
				return err
			}
			loc := rc.cal.Location()

			start, err := parseTime(args[0], loc)
			if err != nil {
				return err
			}
			end, err := parseTime(args[1], loc)
			if err != nil {
				return err
			}
			if len(args[1]) == len(time.DateOnly) {
				end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
			}
			if end.Before(start) {
				return fmt.Errorf("end %s is before start %s", args[1], args[0])
			}

			trades := localize(store.TradesByDateRange(start, end), loc)
			title := fmt.Sprintf("Trades %s to %s", args[0], args[1])
			return rc.print(cmd.OutOrStdout(), report.TradesMarkdown(title, trades, rc.currency()))
		},
	}
}

func newSummaryCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [YYYY-MM]",
		Short: "Show weekly summaries and the monthly total",
		Long: `Show one row per calendar week touched by the month and the month's
total P/L. Defaults to the month of the selected date.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rc.Store()
			if err != nil {
				return err
			}
			loc := rc.cal.Location()

			month := store.SelectedDate().In(loc)
			if len(args) == 1 {
				if month, err = parseMonth(args[0], loc); err != nil {
					return err
				}
			}

			weeks := store.WeeklySummaries(month)
			total := store.MonthlyProfit(month)
			return rc.print(cmd.OutOrStdout(), report.MonthMarkdown(month, weeks, total, rc.currency()))
		},
	}
}

func newSelectCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "select [YYYY-MM-DD]",
		Short: "Move the selected date, or print it",
		Long: `Set the date the day, summary and add commands default to. With no
argument the current selection is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rc.Store()
			if err != nil {
				return err
			}
			loc := rc.cal.Location()

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), rc.cal.DayKey(store.SelectedDate()))
				return nil
			}

			day, err := parseTime(args[0], loc)
			if err != nil {
				return err
			}
			store.SetSelectedDate(day)
			if err := rc.saved(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rc.cal.DayKey(day))
			return nil
		},
	}
}
