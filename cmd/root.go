package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/haulplan/config"
	coremon "github.com/kilianp07/haulplan/core/monitoring"
	"github.com/kilianp07/haulplan/infra/logger"
	infmon "github.com/kilianp07/haulplan/infra/monitoring"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "haulplan",
	Short:        "Trucking schedule ingestion and driver assignment",
	SilenceUsage: true,
	RunE:         runServe,
	PersistentPostRun: func(*cobra.Command, []string) {
		coremon.Flush(2 * time.Second)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configuration file and sets up error monitoring. A
// missing default file yields the built-in defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	mon, err := infmon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		logger.New("main").Warnf("sentry disabled: %v", err)
	} else {
		coremon.Init(mon)
	}
	return cfg, nil
}

func openOutput(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
