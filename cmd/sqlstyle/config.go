package main

import (
	"github.com/spf13/cobra"

	"github.com/syssam/sqlstyle/config"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the effective configuration as YAML.

Defaults are overlaid by the config file, then by SQLSTYLE_ environment
variables (SQLSTYLE_STYLE__MAX_LIST_SIZE=500) and finally by flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return config.Dump(cmd.OutOrStdout(), a.cfg)
		},
	}
}
