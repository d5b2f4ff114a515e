package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/caplet/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the config file location and a sample",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if path, err := config.DefaultPath(); err == nil {
				fmt.Fprintf(out, "# Config file: %s\n\n", path)
			}
			fmt.Fprint(out, config.Sample())
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
