package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"goremoteid/internal/app"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree writing results to stdout
func newRootCmd(stdout io.Writer) *cobra.Command {
	var showVersion bool

	rootCmd := &cobra.Command{
		Use:   "goremoteid",
		Short: "ASTM F3411 Remote ID decoder",
		Long: `Remote ID decoder for ASTM F3411 broadcast messages.

Decodes 25-byte Remote ID messages and message packs from hex, builds packs,
and monitors a stream of hex frames, writing one CSV record per message to
daily rotated logs.

Example usage:
  goremoteid decode 0212...
  goremoteid pack 0212... 3200...
  goremoteid monitor --input capture.txt --log-dir ./logs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				app.ShowVersion(stdout)
				return nil
			}
			return cmd.Help()
		},
	}
	rootCmd.SetOut(stdout)

	rootCmd.PersistentFlags().String(app.KeyConfig, "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringP(app.KeyLogDir, "l", app.DefaultLogDir, "Log directory")
	rootCmd.PersistentFlags().BoolP(app.KeyLogRotateUTC, "u", app.DefaultLogRotateUTC, "Use UTC for log rotation")
	rootCmd.PersistentFlags().BoolP(app.KeyVerbose, "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")

	rootCmd.AddCommand(newDecodeCmd(), newPackCmd(), newMonitorCmd())

	return rootCmd
}

// loadConfig resolves the configuration from the command's flags, the
// environment and the optional config file
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	v := app.NewViper()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return app.Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}
	return app.LoadConfig(v)
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <hex>...",
		Short: "Decode Remote ID messages given as hex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, arg := range args {
				msg, err := app.DecodeHex(arg)
				if err != nil {
					failed++
					fmt.Fprintln(out, pterm.Error.Sprintf("%s: %v", arg, err))
					continue
				}

				fields := app.Describe(msg)
				if config.Plain {
					writePlain(out, fields)
					continue
				}
				if err := writeTable(out, fields); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d messages failed to decode", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().Bool(app.KeyPlain, false, "Plain text output instead of tables")

	return cmd
}

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <hex>...",
		Short: "Build a message pack from hex encoded messages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			packed, err := app.PackHex(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), packed)
			return nil
		},
	}
}

func newMonitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Decode a stream of hex frames into rotated record logs",
		Long: `Reads newline separated hex frames from a file or stdin, optionally
prefixed with a timestamp ("<RFC3339 or unix seconds>,<hex>"), and writes one
CSV record per message to the log directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			application := app.NewApplication(config)
			return application.Start()
		},
	}

	cmd.Flags().StringP(app.KeyInput, "i", "", "Input file of hex frames (stdin when empty or -)")
	cmd.Flags().Bool(app.KeyEcho, false, "Also print records to stdout")
	cmd.Flags().Int(app.KeyMaxLogDays, app.DefaultMaxLogDays, "Days of logs to keep (0 keeps all)")
	cmd.Flags().Duration(app.KeyStatsInterval, app.DefaultStatsInterval, "Statistics reporting interval")

	return cmd
}

func writeTable(w io.Writer, fields []app.Field) error {
	data := pterm.TableData{{"Field", "Value"}}
	for _, f := range fields {
		data = append(data, []string{f.Name, f.Value})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	fmt.Fprintln(w, table)
	return nil
}

func writePlain(w io.Writer, fields []app.Field) {
	for _, f := range fields {
		fmt.Fprintf(w, "%s: %s\n", f.Name, f.Value)
	}
	fmt.Fprintln(w)
}
