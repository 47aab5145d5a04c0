package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/williamokano/rsyncer/pkg/runner"
)

var dryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync <config>",
	Short: "Run the jobs of a config file",
	Example: `  rsyncer sync jobs.json
  rsyncer sync jobs.json --job photos --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Run every general transfer as rsync --dry-run")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("starting rsyncer")

	r := runner.New(cfg, log)
	r.ForceDryRun = dryRun

	results, err := r.RunAll(ctx, jobNames)
	for _, res := range results {
		if res.Skipped {
			cmd.Printf("SKIP  %s\n", res.Job)
		} else if res.Success {
			cmd.Printf("OK    %s (%s)\n", res.Job, res.Duration.Round(time.Millisecond))
		} else {
			cmd.Printf("FAIL  %s: %v\n", res.Job, res.Error)
		}
	}
	if err != nil {
		return err
	}

	log.Info().Msg("rsyncer completed successfully")
	return nil
}
