package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

func newExportCmd(rc *RootConfig) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every trade as csv, org or json",
		Long: `Write the whole journal to stdout or a file.

Formats:
  csv   one row per trade with a header
  org   Org-mode entries with a PROPERTIES drawer
  json  the snapshot the journal is stored as

Example:
  tradejournal export --format csv -o trades.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rc.Store()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch format {
			case "csv":
				err = journal.WriteCSV(&buf, store.Trades())
			case "org":
				buf.WriteString(journal.FormatTradesOrg(localize(store.Trades(), rc.cal.Location())))
			case "json":
				var data []byte
				if data, err = journal.EncodeState(store.State()); err == nil {
					buf.Write(data)
					buf.WriteByte('\n')
				}
			default:
				return fmt.Errorf("unknown format %q (want csv, org or json)", format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}

			if output == "" || output == "-" {
				_, err = io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			rc.log.Info().Str("file", output).Str("format", format).Int("trades", len(store.Trades())).Msg("exported")
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv|org|json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCmd(rc *RootConfig) *cobra.Command {
	var selectDate bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add the trades of a json snapshot",
		Long: `Add every trade of a json snapshot to the journal. Both the export
format and the browser tool's local-storage value are accepted. Imported
trades get fresh ids.

Example:
  tradejournal import trading-journal-storage.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			st, err := journal.DecodeState(data)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			store, err := rc.Store()
			if err != nil {
				return err
			}
			for _, tr := range st.Trades {
				store.AddTrade(inputOf(tr))
			}
			if selectDate && !st.SelectedDate.IsZero() {
				store.SetSelectedDate(st.SelectedDate)
			}
			if err := rc.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d trades\n", len(st.Trades))
			return nil
		},
	}

	cmd.Flags().BoolVar(&selectDate, "select", false, "also take the snapshot's selected date, when it has one")
	return cmd
}

func inputOf(t journal.Trade) journal.TradeInput {
	return journal.TradeInput{
		Date:       t.Date,
		OpenDate:   t.OpenDate,
		CloseDate:  t.CloseDate,
		Symbol:     t.Symbol,
		Type:       t.Type,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		Quantity:   t.Quantity,
		Profit:     t.Profit,
		Notes:      t.Notes,
		Tags:       t.Tags,
	}
}
