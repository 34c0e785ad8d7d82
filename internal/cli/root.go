package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/utakatalp/ladder-predictor/internal/config"
	"github.com/utakatalp/ladder-predictor/internal/logger"
)

// Execute runs the ladder command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// globals is populated before any subcommand runs.
type globals struct {
	debug  bool
	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:          "ladder",
		Short:        "Predict a league ladder from fixture scores",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			if g.debug {
				level = "debug"
			}
			boot := logger.New(cmd.ErrOrStderr(), level)

			cfg, err := config.Load(boot)
			if err != nil {
				boot.Error().Err(err).Msg("failed to load configuration")
				return err
			}
			if g.debug {
				cfg.LogLevel = "debug"
			}

			g.cfg = cfg
			g.logger = logger.New(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newTableCmd(g),
		newServeCmd(g),
		newScheduleCmd(g),
		newImportCmd(g),
	)
	return cmd
}

// sourceFlags are shared by commands that read the fixture catalog.
type sourceFlags struct {
	fixturesPath string
	databaseURL  string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.fixturesPath, "fixtures", "", "fixture CSV file (default $LADDER_FIXTURES_PATH)")
	cmd.Flags().StringVar(&f.databaseURL, "database-url", "", "load fixtures from Postgres instead of CSV (default $LADDER_DATABASE_URL)")
}

func (f *sourceFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("fixtures") {
		cfg.FixturesPath = f.fixturesPath
		// an explicit file wins over a database from the environment
		if !cmd.Flags().Changed("database-url") {
			cfg.DatabaseURL = ""
		}
	}
	if cmd.Flags().Changed("database-url") {
		cfg.DatabaseURL = f.databaseURL
	}
}
