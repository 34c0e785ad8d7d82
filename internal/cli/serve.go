package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/utakatalp/ladder-predictor/internal/app"
)

func newServeCmd(g *globals) *cobra.Command {
	var (
		source sourceFlags
		addr   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ladder API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source.apply(cmd, g.cfg)
			if cmd.Flags().Changed("addr") {
				g.cfg.Addr = addr
			}

			fxApp := app.New(g.cfg, g.logger)
			if err := fxApp.Start(cmd.Context()); err != nil {
				g.logger.Error().Err(err).Msg("failed to start")
				return err
			}

			<-fxApp.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), g.cfg.ShutdownTimeout)
			defer cancel()
			return fxApp.Stop(stopCtx)
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $LADDER_ADDR)")
	return cmd
}
