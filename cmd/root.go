package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/williamokano/rsyncer/pkg/config"
	"github.com/williamokano/rsyncer/pkg/logger"
)

// Version is set at build time
var Version = "dev"

var (
	jobNames  []string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "rsyncer",
	Short: "Run rsync jobs against local, SSH and Akamai NetStorage targets",
	Long: `rsyncer reads a JSON job file, validates every connection and runs rsync
for each job. Passwords are handed to rsync through RSYNC_PASSWORD in the
child process environment and never appear on the command line.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&jobNames, "job", "j", nil, "Run only the named jobs (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the log level from the config file")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override the log format from the config file")

	rootCmd.AddCommand(syncCmd, commandCmd, validateCmd, checkCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file and initializes the global logger from it
func loadConfig(configFile string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	level := cfg.GetLogLevel()
	if logLevel != "" {
		level = logLevel
	}
	format := cfg.GetLogFormat()
	if logFormat != "" {
		format = logFormat
	}

	logger.Init(level, format)
	log := logger.Get().With().Str("config_file", configFile).Logger()
	return cfg, log, nil
}
