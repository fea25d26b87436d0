package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logging"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/report"
	"github.com/rustyeddy/tradejournal/storage"
)

const version = "1.0.0"

// RootConfig carries the global flags and what PersistentPreRunE builds
// from them.
type RootConfig struct {
	ConfigPath string
	Storage    string
	Path       string
	LogLevel   string
	Plain      bool

	cfg     *config.Config
	log     zerolog.Logger
	backend storage.Storage
	store   *journal.Store
	cal     journal.Calendar
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&RootConfig{})
}

func newRootCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tradejournal",
		Short: "Tradejournal: a personal calendar of trades and profits",
		Long: `Tradejournal keeps a local journal of closed trades and summarises them
by day, week and month.

Examples:
  tradejournal add --symbol AAPL --entry 172.5 --exit 175 --qty 10 --profit 25
  tradejournal day 2024-03-15
  tradejournal summary 2024-03`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.Storage, "store", "", "Storage backend: file|sqlite|memory (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.Path, "path", "", "Journal directory or SQLite file (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.Plain, "plain", false, "Print raw markdown instead of rendering it")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.setup(cmd.ErrOrStderr())
	}

	cmd.AddCommand(
		newAddCmd(rc),
		newEditCmd(rc),
		newRmCmd(rc),
		newShowCmd(rc),
		newDayCmd(rc),
		newRangeCmd(rc),
		newSummaryCmd(rc),
		newSelectCmd(rc),
		newExportCmd(rc),
		newImportCmd(rc),
		newConfigCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradejournal version %s\n", version)
		},
	})

	closeAfterRun(cmd, rc)
	return cmd
}

// closeAfterRun wraps every RunE so the storage is closed whether or not
// the command failed. Cobra skips post-run hooks after an error.
func closeAfterRun(cmd *cobra.Command, rc *RootConfig) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if cerr := rc.Close(); err == nil {
				err = cerr
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, rc)
	}
}

func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// setup loads .env and the config, applies flag overrides and builds the
// logger. The journal itself is opened on first use.
func (rc *RootConfig) setup(logOut io.Writer) error {
	_ = godotenv.Load()

	var cfg *config.Config
	if rc.ConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Default()
		cfg.ApplyEnv(os.LookupEnv)
	}

	if rc.Storage != "" {
		cfg.Storage.Type = rc.Storage
	}
	if rc.Path != "" {
		cfg.Storage.Path = rc.Path
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	rc.cfg = cfg
	rc.log = log
	return nil
}

// Store opens the configured storage and hydrates the journal from it.
func (rc *RootConfig) Store() (*journal.Store, error) {
	if rc.store != nil {
		return rc.store, nil
	}

	cal, err := rc.cfg.JournalCalendar()
	if err != nil {
		return nil, err
	}
	gen, err := id.ForFormat(rc.cfg.IDs.Format)
	if err != nil {
		return nil, err
	}
	backend, err := storage.Open(rc.cfg.Storage.Type, rc.cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	rc.backend = backend
	rc.cal = cal
	rc.store = journal.Open(backend,
		journal.WithKey(rc.cfg.Storage.Key),
		journal.WithCalendar(cal),
		journal.WithIDGenerator(gen),
		journal.WithLogger(rc.log),
	)
	return rc.store, nil
}

// saved turns a failed snapshot write into a command error.
func (rc *RootConfig) saved() error {
	if err := rc.store.LastSaveError(); err != nil {
		return fmt.Errorf("journal not saved: %w", err)
	}
	return nil
}

func (rc *RootConfig) Close() error {
	if rc.backend == nil {
		return nil
	}
	err := rc.backend.Close()
	rc.backend = nil
	rc.store = nil
	return err
}

// print writes md to w, rendered for the terminal unless plain output was
// asked for.
func (rc *RootConfig) print(w io.Writer, md string) error {
	if rc.Plain || !rc.cfg.Display.Markdown {
		_, err := io.WriteString(w, md)
		return err
	}
	out, err := report.Render(md, rc.cfg.Display.Width, rc.cfg.Display.Style)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func (rc *RootConfig) currency() string {
	return rc.cfg.Display.Currency
}
