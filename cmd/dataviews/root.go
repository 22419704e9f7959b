package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/dataviews/internal/config"
	"github.com/spektr-org/dataviews/internal/logger"
)

// app carries what every subcommand needs once the root pre-run has loaded it.
type app struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var debug bool

	root := &cobra.Command{
		Use:           "dataviews",
		Short:         "Query template data views and editor shortcuts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			level := logger.ParseLevel(cfg.Log.Level)
			if debug {
				level = logger.DebugLevel
			}
			logger.Init(&logger.Config{
				Level:  level,
				Output: cmd.ErrOrStderr(),
				JSON:   cfg.Log.JSON,
			})
			a.cfg = cfg
			a.log = logger.GetDefault()
			cmd.SetContext(logger.ContextWithLogger(cmd.Context(), a.log))
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(newTemplatesCmd(a), newShortcutsCmd(a))
	return root
}
