package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/utakatalp/ladder-predictor/internal/fixtures"
	"github.com/utakatalp/ladder-predictor/internal/store"
)

func newImportCmd(g *globals) *cobra.Command {
	var (
		fixturesPath string
		databaseURL  string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a fixture CSV into Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("fixtures") {
				g.cfg.FixturesPath = fixturesPath
			}
			if cmd.Flags().Changed("database-url") {
				g.cfg.DatabaseURL = databaseURL
			}
			if g.cfg.DatabaseURL == "" {
				return errors.New("import needs --database-url or LADDER_DATABASE_URL")
			}

			list, err := fixtures.LoadFile(g.cfg.FixturesPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := store.NewStore(ctx, g.cfg.DatabaseURL, g.logger)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Migrate(ctx); err != nil {
				return err
			}
			return s.ReplaceFixtures(ctx, list)
		},
	}

	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "fixture CSV file (default $LADDER_FIXTURES_PATH)")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (default $LADDER_DATABASE_URL)")
	return cmd
}
