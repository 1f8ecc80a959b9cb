// Package main implements oskey, a tool for checking and exercising
// OS-aware keymap configurations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/oskey/internal/behavior"
	"github.com/dshills/oskey/internal/config"
	"github.com/dshills/oskey/internal/keymap"
	"github.com/dshills/oskey/internal/replay"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	debugMode  bool
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oskey",
		Short: "OS-aware keymap behaviors",
		Long: `oskey - OS-aware keymap behaviors

Validates keymap configurations that declare os-key, hold-fn and os-selector
behaviors, and replays key event scripts against them to show the key reports
a host would receive.`,
		Example: `  # Validate the default configuration
  oskey check

  # Revalidate whenever the file changes
  oskey check --watch

  # Replay a script against a configuration
  oskey replay --config keymap.toml copy.replay

  # List key names accepted by &kp
  oskey keycodes`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "Configuration file (TOML or YAML)")

	var (
		stopOnError bool
		showMetrics bool
	)
	replayCmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a key event script",
		Long: `Replay a key event script against the configuration.

Each script line is "press N", "release N" or "tap N" where N is a keymap
position. Lines starting with # are comments.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), args[0], stopOnError, showMetrics)
		},
	}
	replayCmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first failing event")
	replayCmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print per-behavior counters after the trace")

	var watch bool
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), watch)
		},
	}
	checkCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Revalidate when the file changes")

	keycodesCmd := &cobra.Command{
		Use:   "keycodes",
		Short: "List key names accepted by &kp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeycodes()
		},
	}

	configPathCmd := &cobra.Command{
		Use:   "config-path",
		Short: "Print the default configuration path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.DefaultPath())
		},
	}

	rootCmd.AddCommand(replayCmd, checkCmd, keycodesCmd, configPathCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		stop()
		os.Exit(1)
	}
}

// setupLogging applies --debug or OSKEY_LOG_LEVEL to every package logger.
func setupLogging() error {
	level := log.WarnLevel
	if v := os.Getenv(config.EnvLogLevel); v != "" {
		l, err := log.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", config.EnvLogLevel, err)
		}
		level = l
	}
	if debugMode {
		level = log.DebugLevel
	}

	behavior.SetLogLevel(level)
	keymap.SetLogLevel(level)
	config.SetLogLevel(level)
	replay.SetLogLevel(level)
	return nil
}
