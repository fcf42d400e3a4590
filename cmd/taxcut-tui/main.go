package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/taxcut/internal/config"
	"github.com/rgehrsitz/taxcut/internal/session"
	"github.com/rgehrsitz/taxcut/internal/transform"
	"github.com/rgehrsitz/taxcut/internal/tui"
)

func main() {
	// Optional preferences file path
	prefsPath := config.Path()
	if len(os.Args) > 1 {
		prefsPath = os.Args[1]
	}

	prefs, err := config.LoadFrom(prefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	initial, err := prefs.Scenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry := transform.CreateBuiltInPresets()
	for _, p := range prefs.Presets {
		preset, err := transform.PresetFromPreference(p.Name, p.Savings, p.Scope)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		registry.Register(preset)
	}

	state := session.New(initial)
	if err := tui.Run(tui.NewModel(state, registry.Presets())); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
