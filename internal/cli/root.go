package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Execute() {
	cmd := NewRootCmd(NewApp)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session lazily opens the App for the commands of one invocation
type session struct {
	factory AppFactory
	app     *App
}

func (s *session) get(ctx context.Context) (*App, error) {
	if s.app == nil {
		app, err := s.factory(ctx)
		if err != nil {
			return nil, err
		}
		s.app = app
	}
	return s.app, nil
}

func (s *session) close() {
	if s.app != nil && s.app.Close != nil {
		if err := s.app.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close store")
		}
	}
	s.app = nil
}

// closeAfter wraps every RunE in the tree so the store is closed on the
// error path as well
func closeAfter(c *cobra.Command, s *session) {
	if run := c.RunE; run != nil {
		c.RunE = func(cmd *cobra.Command, args []string) error {
			defer s.close()
			return run(cmd, args)
		}
	}
	for _, sub := range c.Commands() {
		closeAfter(sub, s)
	}
}

// NewRootCmd builds the synphot command tree over the given App factory
func NewRootCmd(factory AppFactory) *cobra.Command {
	var debug bool
	s := &session{factory: factory}

	cmd := &cobra.Command{
		Use:          "synphot",
		Short:        "Synthetic photometry from tabulated spectra and filter curves",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
			level := zerolog.WarnLevel
			if debug {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging")

	cmd.AddCommand(initCmd(s))
	cmd.AddCommand(filterCmd(s))
	cmd.AddCommand(spectrumCmd(s))
	cmd.AddCommand(fluxCmd(s))
	cmd.AddCommand(magCmd(s))
	cmd.AddCommand(historyCmd(s))
	cmd.AddCommand(magToFluxCmd(s))
	cmd.AddCommand(absMagCmd())
	closeAfter(cmd, s)
	return cmd
}

func initCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or upgrade the local database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.get(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database ready")
			return nil
		},
	}
}
