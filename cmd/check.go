package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/williamokano/rsyncer/pkg/runner"
)

var checkCmd = &cobra.Command{
	Use:   "check <config>",
	Short: "Verify the destination of every connection used by the selected jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(args[0])
		if err != nil {
			return err
		}

		r := runner.New(cfg, log)
		jobs, err := r.SelectJobs(jobNames)
		if err != nil {
			return err
		}

		var errs []error
		for _, res := range r.Check(cmd.Context(), jobs) {
			if res.Success {
				cmd.Printf("OK    %s [%s] (%s)\n", res.Connection, res.Kind, res.Duration.Round(time.Millisecond))
				continue
			}
			cmd.Printf("FAIL  %s [%s]: %v\n", res.Connection, res.Kind, res.Error)
			errs = append(errs, res.Error)
		}

		if len(errs) > 0 {
			return fmt.Errorf("%d connection checks failed: %w", len(errs), errors.Join(errs...))
		}
		return nil
	},
}
