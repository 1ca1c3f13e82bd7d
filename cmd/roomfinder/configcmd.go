package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/roomfinder/internal/output"
	"github.com/jackzampolin/roomfinder/internal/svcctx"
)

var configCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Show effective configuration values",
	Long: `Show the effective value of every config key, or of a single key.

Values come from, in order of precedence: ROOMFINDER_ environment
variables, the config file, and built-in defaults.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := svcctx.ServicesFrom(cmd.Context()).Config
		if len(args) == 1 {
			entry, err := mgr.Lookup(args[0])
			if err != nil {
				return err
			}
			return output.Print(entry)
		}
		return output.Print(map[string]any{
			"file":    mgr.ConfigFile(),
			"entries": mgr.Entries(),
		})
	},
}
