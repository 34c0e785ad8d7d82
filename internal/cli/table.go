package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/utakatalp/ladder-predictor/internal/app"
	"github.com/utakatalp/ladder-predictor/internal/fixtures"
	"github.com/utakatalp/ladder-predictor/internal/league"
	"github.com/utakatalp/ladder-predictor/internal/render"
)

type tableOptions struct {
	source      sourceFlags
	resultsPath string
	rounds      int
	formWindow  int
	skipInvalid bool
	asJSON      bool
}

func newTableCmd(g *globals) *cobra.Command {
	var opts tableOptions

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the ladder after applying predicted results",
		Long: `Print the ladder after applying predicted results.

With --results, the file's rows are applied in order. With --rounds K,
every fixture in rounds 1..K is predicted 0-0 unless the results file
holds a score for it. Optional Round Number or Match Number columns pin a
row to one fixture; other rows fill repeated meetings in order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.source.apply(cmd, g.cfg)
			if !cmd.Flags().Changed("form-window") {
				opts.formWindow = g.cfg.FormWindow
			}
			return runTable(cmd, g, opts, cmd.OutOrStdout())
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVar(&opts.resultsPath, "results", "", "CSV of predicted results (Home Team, Away Team, Home Score, Away Score)")
	cmd.Flags().IntVar(&opts.rounds, "rounds", 0, "predict every fixture in rounds 1..N")
	cmd.Flags().IntVar(&opts.formWindow, "form-window", 0, "recent outcomes to show in FORM, 0 for all (default $LADDER_FORM_WINDOW)")
	cmd.Flags().BoolVar(&opts.skipInvalid, "skip-invalid", false, "skip invalid results instead of rejecting the batch")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a text table")
	return cmd
}

func runTable(cmd *cobra.Command, g *globals, opts tableOptions, out io.Writer) error {
	log := g.logger
	if opts.rounds < 0 {
		return errors.New("--rounds must be >= 0")
	}

	catalog, err := app.LoadCatalog(cmd.Context(), g.cfg, log)
	if err != nil {
		return err
	}

	var results []league.Result
	if opts.resultsPath != "" {
		results, err = fixtures.LoadResultsFile(opts.resultsPath)
		if err != nil {
			log.Error().Err(err).Str("path", opts.resultsPath).Msg("failed to read results")
			return err
		}
	}

	mode := league.RejectBatch
	if opts.skipInvalid {
		mode = league.SkipInvalid
	}

	var skipped []error
	if opts.rounds > 0 {
		if opts.rounds > catalog.Rounds() {
			log.Warn().Int("rounds", opts.rounds).Int("available", catalog.Rounds()).Msg("more rounds requested than scheduled")
		}
		p, err := catalog.Predict(opts.rounds, results, mode)
		if err != nil {
			log.Error().Err(err).Str("kind", string(league.KindOf(err))).Msg("results rejected")
			return err
		}
		for _, r := range p.Unmatched {
			log.Warn().Str("home", r.HomeTeam).Str("away", r.AwayTeam).Msg("result has no free fixture in the selected rounds, ignored")
		}
		results = p.Results
		skipped = p.Skipped
	}

	ladder, replaySkipped, err := league.Replay(catalog.Teams(), results, mode)
	if err != nil {
		log.Error().Err(err).Str("kind", string(league.KindOf(err))).Msg("results rejected")
		return err
	}
	skipped = append(skipped, replaySkipped...)
	for _, e := range skipped {
		log.Warn().Err(e).Str("kind", string(league.KindOf(e))).Msg("result skipped")
	}
	log.Debug().Int("applied", len(results)-len(replaySkipped)).Int("skipped", len(skipped)).Msg("ladder computed")

	table := ladder.Standings()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(render.Rows(table, opts.formWindow))
	}

	title := "Ladder"
	if opts.rounds > 0 {
		title = fmt.Sprintf("Ladder after round %d", opts.rounds)
	}
	return render.Table(out, table, render.Options{Title: title, FormWindow: opts.formWindow})
}
