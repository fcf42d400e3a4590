package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/config"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/transform"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds the state shared by every subcommand
type app struct {
	logLevel  string
	debug     bool
	prefsPath string

	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "taxcut",
		Short: "Federal bracket tax cut calculator",
		Long: `Estimate federal income tax under the 2025 brackets and compare it against
a flat rate cut funded by a given revenue savings figure, applied to every
bracket or only to the top four.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), a.logLevel, a.debug)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error, off)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug output for detailed calculations")
	root.PersistentFlags().StringVar(&a.prefsPath, "config", "", "Preferences file (default "+config.Path()+")")

	root.AddCommand(
		a.calculateCmd(),
		a.compareCmd(),
		a.breakEvenCmd(),
		a.sensitivityCmd(),
		a.tablesCmd(),
		a.presetsCmd(),
		a.validateCmd(),
		a.promptCmd(),
		a.serveCmd(),
		a.tuiCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return root
}

var rootCmd = newRootCmd()

// preferences loads the preferences file, falling back to defaults when absent
func (a *app) preferences() (config.Preferences, error) {
	if a.prefsPath != "" {
		return config.LoadFrom(a.prefsPath)
	}
	return config.Load()
}

// logger returns a module-scoped entry
func (a *app) logger(module string) *logrus.Entry {
	if a.log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		l.SetLevel(logrus.WarnLevel)
		a.log = l
	}
	return a.log.WithField("module", module)
}

// newEngine builds an engine from an optional input file
func (a *app) newEngine(cfg *domain.Configuration) (*calculation.CalculationEngine, error) {
	engine := calculation.NewCalculationEngine()
	if cfg != nil {
		var err error
		engine, err = calculation.NewCalculationEngineWithConfig(cfg)
		if err != nil {
			return nil, err
		}
	}
	engine.SetLogger(engineLogger{entry: a.logger("calculation")})
	engine.Debug = a.debug
	return engine, nil
}

// presetRegistry returns the built-in presets plus any from preferences
func presetRegistry(prefs config.Preferences) (*transform.PresetRegistry, error) {
	registry := transform.CreateBuiltInPresets()
	for _, p := range prefs.Presets {
		preset, err := transform.PresetFromPreference(p.Name, p.Savings, p.Scope)
		if err != nil {
			return nil, err
		}
		registry.Register(preset)
	}
	return registry, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
