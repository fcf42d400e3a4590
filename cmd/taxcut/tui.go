package main

import (
	"github.com/rgehrsitz/taxcut/internal/session"
	"github.com/rgehrsitz/taxcut/internal/tui"
	"github.com/spf13/cobra"
)

func (a *app) tuiCmd() *cobra.Command {
	var flags scenarioFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive calculator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := a.preferences()
			if err != nil {
				return err
			}
			initial, err := prefs.Scenario()
			if err != nil {
				return err
			}
			initial, err = flags.apply(cmd, initial)
			if err != nil {
				return err
			}
			registry, err := presetRegistry(prefs)
			if err != nil {
				return err
			}
			engine, err := a.newEngine(nil)
			if err != nil {
				return err
			}

			state := session.New(initial, session.WithEngine(engine))
			return tui.Run(tui.NewModel(state, registry.Presets()))
		},
	}

	flags.register(cmd)
	return cmd
}
