package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage tradejournal configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  tradejournal config init -o tradejournal.yaml
  tradejournal config validate -f tradejournal.yaml`,
	}

	cmd.AddCommand(newConfigInitCmd(), newConfigValidateCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Created default configuration: %s\n", output)
			fmt.Fprintln(out, "\nEdit the file and run with:")
			fmt.Fprintf(out, "  tradejournal --config %s day\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "tradejournal.yaml", "output config file path")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Storage: %s (%s)\n", cfg.Storage.Type, cfg.Storage.Path)
			fmt.Fprintf(out, "  Calendar: %s, %s weeks\n", cfg.Calendar.Timezone, cfg.Calendar.Weeks)
			fmt.Fprintf(out, "  Currency: %s\n", cfg.Display.Currency)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
