package cmd

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config>",
	Short: "Validate a config file and every connection in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(args[0])
		if err != nil {
			return err
		}

		for _, cc := range cfg.Connections {
			conn, err := cc.Build()
			if err != nil {
				return err
			}
			cmd.Printf("connection %s: %s\n", cc.Name, conn)
		}

		cmd.Printf("%d connections, %d jobs: ok\n", len(cfg.Connections), len(cfg.Jobs))
		return nil
	},
}
