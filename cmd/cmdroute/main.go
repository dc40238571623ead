package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kalambet/cmdroute/internal/config"
)

var version = "dev"

// loadConfig is swapped out by tests.
var loadConfig = config.Load

// appConfig is populated by the root command before any subcommand runs.
var appConfig config.Config

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "cmdroute",
	Short: "Route utterances to canned music and fitness assistants",
	Long: `cmdroute classifies short utterances by keyword and dispatches them to a
music or fitness assistant that answers from a fixed table.

Run without arguments to simulate three sample sessions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Log.Level = lvl
		}
		if cfg.Output.NoColor {
			noColor = true
		}
		appConfig = cfg
		initLogging(cfg.Log.Level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulate(cmd, simulateOptions{
			rounds: appConfig.Simulation.Rounds,
			seed:   appConfig.Simulation.Seed,
			roster: appConfig.Simulation.Roster,
			record: appConfig.Storage.Record,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cmdroute version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cmdroute version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initLogging installs a text slog handler on stderr so stdout carries only
// the transcript.
func initLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
