package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/taxcut/internal/config"
	"github.com/spf13/cobra"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the preferences file",
		RunE:  a.runConfigShow,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE:  a.runConfigShow,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a preferences file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.preferencesPath()
			if fileExists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveTo(path, config.DefaultPreferences()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func (a *app) runConfigShow(cmd *cobra.Command, _ []string) error {
	prefs, err := a.preferences()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	path := a.preferencesPath()
	fmt.Fprintf(out, "  Config file: %s\n", path)
	if fileExists(path) {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Filing status:   %s\n", prefs.General.FilingStatus)
	fmt.Fprintf(out, "    Reduction scope: %s\n", prefs.General.Scope)
	fmt.Fprintf(out, "    Income:          %.0f\n", prefs.General.Income)
	fmt.Fprintf(out, "    Savings:         %g\n", prefs.General.Savings)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Output]")
	fmt.Fprintf(out, "    Format: %s\n", prefs.Output.Format)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Presets]")
	if len(prefs.Presets) == 0 {
		fmt.Fprintln(out, "    none (built-in presets only)")
	}
	for _, p := range prefs.Presets {
		scope := p.Scope
		if scope == "" {
			scope = "current"
		}
		fmt.Fprintf(out, "    %-16s savings %g, scope %s\n", p.Name, p.Savings, scope)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `taxcut config init` to create a preferences file.")
	return nil
}

func (a *app) preferencesPath() string {
	if a.prefsPath != "" {
		return a.prefsPath
	}
	return config.Path()
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}
