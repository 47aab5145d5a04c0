package cmd

import (
	"github.com/spf13/cobra"

	"github.com/williamokano/rsyncer/pkg/runner"
)

var commandCmd = &cobra.Command{
	Use:   "command <config>",
	Short: "Print the rsync command line of each job without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(args[0])
		if err != nil {
			return err
		}

		r := runner.New(cfg, log)
		r.ForceDryRun = dryRun

		jobs, err := r.SelectJobs(jobNames)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			line, err := r.Command(job)
			if err != nil {
				return err
			}
			cmd.Printf("# %s\n%s\n", job.Name, line)
		}
		return nil
	},
}

func init() {
	commandCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Render general transfers as dry runs")
}
