package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/observability"
	"github.com/san-kum/mechlab/internal/tui"
)

var (
	configFile  string
	logLevel    string
	metricsFile string

	cfg       *config.Config
	collector *observability.Collector
	logger    = zap.NewNop()
)

// tuiAnnotation marks commands that own the terminal, so logging stays off
// the console for them.
const tuiAnnotation = "tui"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "mechlab",
		Short:             "interactive mechanics lab",
		Annotations:       map[string]string{tuiAnnotation: "true"},
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer observability.Sync()
			return collector.WriteTextfile(cfg.Metrics.File)
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./mechlab.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	tuiCmd := &cobra.Command{
		Use:         "tui",
		Short:       "open the interactive lab",
		Annotations: map[string]string{tuiAnnotation: "true"},
		RunE:        runTUI,
	}

	rootCmd.AddCommand(tuiCmd)
	for _, name := range []string{"vectors", "projectile", "forces", "energy"} {
		rootCmd.AddCommand(newScenarioCmd(name))
	}
	rootCmd.AddCommand(
		newCheckCmd(),
		newChallengeCmd(),
		newRunCmd(),
		newCompareCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// setup loads configuration, applies flag overrides and brings up logging
// and metrics before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Logger.Level = logLevel
	}
	if metricsFile != "" {
		c.Metrics.File = metricsFile
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if cmd.Annotations[tuiAnnotation] == "true" {
		observability.InitializeForTUI(c.Logger)
	} else {
		observability.InitializeLogger(c.Logger)
	}

	col, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	cfg = c
	collector = col
	logger = observability.GetLogger().With(zap.String("command", cmd.Name()))
	logger.Debug("configuration loaded",
		zap.String("config", configFile),
		zap.String("theme", c.Display.Theme))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.Options{
		Config:    cfg,
		Collector: collector,
		Logger:    logger,
	})
}
