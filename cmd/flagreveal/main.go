package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/npratt/flagreveal/internal/config"
	"github.com/npratt/flagreveal/internal/events"
	"github.com/npratt/flagreveal/internal/tui"
)

var version = "dev"

// newRootCmd builds the command tree. Flags are bound into v when a command
// executes, so the root and run commands can share flag names.
func newRootCmd(v *viper.Viper, logger *slog.Logger, logLevel *slog.LevelVar) *cobra.Command {
	runE := func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(v)
		if err != nil {
			return err
		}

		return runReveal(cmd.Context(), cfg, runEnv{
			stdout:     cmd.OutOrStdout(),
			stderr:     cmd.ErrOrStderr(),
			logger:     logger,
			logLevel:   logLevel,
			isTerminal: isTerminal,
		})
	}

	rootCmd := &cobra.Command{
		Use:   "flagreveal",
		Short: "Fetch a flag and reveal it one character at a time",
		Long: `flagreveal retrieves a short text flag from an HTTP endpoint once and
reveals it one character at a time, like a typewriter.

On a terminal it runs a full-screen display; otherwise (or with --plain) it
streams the characters to stdout as they are revealed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd); err != nil {
				return err
			}
			if v.GetBool(FlagVerbose) {
				logLevel.Set(slog.LevelDebug)
				logger.Debug("verbose logging enabled")
			}
			return nil
		},
		RunE: runE,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .flagreveal/config.yaml)")
	rootCmd.PersistentFlags().String(FlagEventsFile, "", "Transition events file (JSON lines)")
	rootCmd.PersistentFlags().String(FlagMetricsFile, "", "Prometheus textfile written when a run ends")
	addRunFlags(rootCmd.Flags())

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch the flag and reveal it",
		RunE:  runE,
	}
	addRunFlags(runCmd.Flags())
	runCmd.MarkFlagsMutuallyExclusive(FlagTUI, FlagPlain)
	rootCmd.MarkFlagsMutuallyExclusive(FlagTUI, FlagPlain)

	// Events command
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "View recent transition events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(v)
			if err != nil {
				return err
			}
			return printEvents(cmd, cfg.Paths.Events, v.GetInt(FlagCount), v.GetString(FlagRun))
		},
	}
	eventsCmd.Flags().Int(FlagCount, 20, "Number of recent events to show (0 = all)")
	eventsCmd.Flags().String(FlagRun, "", `Only show events of this run ID ("last" = newest run)`)

	// Config command
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(v)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "flagreveal %s\n", version)
		},
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// addRunFlags registers the flags shared by the root and run commands.
func addRunFlags(fs *pflag.FlagSet) {
	fs.String(FlagEndpoint, "", "Flag endpoint URL")
	fs.Duration(FlagInterval, tui.DefaultInterval, "Delay between revealed characters")
	fs.Duration(FlagTimeout, 0, "HTTP request timeout (0 = none)")
	fs.Bool(FlagTUI, false, "Force the terminal UI")
	fs.Bool(FlagPlain, false, "Stream characters to stdout without a UI")
	fs.Bool(FlagExitOnComplete, false, "Quit the terminal UI once the flag is fully revealed")
	fs.String(FlagLogDir, "", "Directory for the TUI debug log")
}

// bindFlags binds cmd's flags into v: every flag under its own name, and
// the run flags also under the config keys they override.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return config.BindFlags(v, cmd.Flags())
}

// loadRunConfig resolves the configuration, with --tui or --plain taking
// precedence over display.mode.
func loadRunConfig(v *viper.Viper) (*config.Config, error) {
	switch {
	case v.GetBool(FlagTUI):
		v.Set("display.mode", config.ModeTUI)
	case v.GetBool(FlagPlain):
		v.Set("display.mode", config.ModePlain)
	}

	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// printEvents prints the last count records of the events file, optionally
// only those of one run.
func printEvents(cmd *cobra.Command, path string, count int, run string) error {
	out := cmd.OutOrStdout()

	if path == "" {
		return errors.New("no events file configured (use --events-file or paths.events)")
	}

	limit := count
	if run != "" {
		limit = 0
	}
	records, err := events.ReadLast(path, limit)
	if err != nil {
		return err
	}

	if run != "" {
		if run == "last" {
			run = events.LastRun(records)
		}
		records = events.FilterRun(records, run)
		if count > 0 && len(records) > count {
			records = records[len(records)-count:]
		}
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, "No events yet")
		return nil
	}

	for _, rec := range records {
		_, _ = fmt.Fprintln(out, rec.Format())
	}
	return nil
}

// isTerminal reports whether the TUI can run: it draws to stdout and reads
// keys from stdin, so both must be terminals.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// loadDotEnv loads FLAGREVEAL_* settings from a .env file if one exists.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := loadDotEnv(".env"); err != nil {
		logger.Warn("failed to load .env file", "error", err)
	}

	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	rootCmd := newRootCmd(v, logger, logLevel)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var retrievalErr *RetrievalError
		if !errors.As(err, &retrievalErr) {
			logger.Error("command failed", "error", err)
		}
		os.Exit(1)
	}
}
