package main

import (
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/config"
	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	var prefs bool

	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file, or the preferences file with --preferences",
		Args: func(cmd *cobra.Command, args []string) error {
			if prefs {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if prefs {
				if _, err := a.preferences(); err != nil {
					return err
				}
				path := a.prefsPath
				if path == "" {
					path = config.Path()
				}
				fmt.Fprintf(out, "Preferences file %s is valid\n", path)
				return nil
			}

			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Configuration file %s is valid (%d scenarios)\n", args[0], len(cfg.ResolveScenarios()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&prefs, "preferences", false, "Validate the preferences file instead")
	return cmd
}
