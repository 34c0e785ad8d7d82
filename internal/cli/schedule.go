package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utakatalp/ladder-predictor/internal/fixtures"
	"github.com/utakatalp/ladder-predictor/internal/league"
)

func newScheduleCmd(g *globals) *cobra.Command {
	var (
		teams  []string
		double bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Write a round-robin fixture CSV to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(teams) < 2 {
				return fmt.Errorf("need at least two --team values, got %d", len(teams))
			}

			var list []league.Fixture
			if double {
				list = league.GenerateFullSeason(teams)
			} else {
				list = league.GenerateSchedule(teams)
			}
			g.logger.Debug().Int("teams", len(teams)).Int("fixtures", len(list)).Bool("double", double).Msg("schedule generated")

			return fixtures.WriteCSV(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringArrayVar(&teams, "team", nil, "team name, repeat for each team")
	cmd.Flags().BoolVar(&double, "double", false, "home and away legs")
	return cmd
}
