package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/utakatalp/ladder-predictor/internal/config"
	"github.com/utakatalp/ladder-predictor/internal/fixtures"
	"github.com/utakatalp/ladder-predictor/internal/httpapi"
	"github.com/utakatalp/ladder-predictor/internal/store"
)

// LoadCatalog reads the fixture list from Postgres when a database URL is
// configured and from the CSV file otherwise.
func LoadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*fixtures.Catalog, error) {
	var src fixtures.Source = fixtures.FileSource{Path: cfg.FixturesPath}
	origin := cfg.FixturesPath

	if cfg.DatabaseURL != "" {
		s, err := store.NewStore(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		src = s
		origin = "postgres"
	}

	catalog, err := fixtures.Load(ctx, src)
	if err != nil {
		logger.Error().Err(err).Str("source", origin).Msg("failed to load fixtures")
		return nil, err
	}

	logger.Info().
		Str("source", origin).
		Int("fixtures", len(catalog.Fixtures())).
		Int("teams", len(catalog.Teams())).
		Int("rounds", catalog.Rounds()).
		Msg("fixture catalog loaded")
	return catalog, nil
}

func provideCatalog(cfg *config.Config, logger zerolog.Logger) (*fixtures.Catalog, error) {
	return LoadCatalog(context.Background(), cfg, logger)
}

func provideServer(catalog *fixtures.Catalog, cfg *config.Config, logger zerolog.Logger) *httpapi.Server {
	return httpapi.NewServer(httpapi.Dependencies{
		Catalog:    catalog,
		Logger:     logger,
		FormWindow: cfg.FormWindow,
	})
}

// Module wires the HTTP entry point. Callers supply *config.Config and
// zerolog.Logger.
var Module = fx.Options(
	fx.Provide(provideCatalog),
	fx.Provide(provideServer),
	fx.Invoke(runServer),
)

func runServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, server *httpapi.Server, cfg *config.Config, logger zerolog.Logger) {
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error().Err(err).Msg("server failed")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

// New builds the fx application for serving the ladder API.
func New(cfg *config.Config, logger zerolog.Logger) *fx.App {
	return fx.New(
		fx.Supply(cfg, logger),
		fx.NopLogger,
		fx.StopTimeout(cfg.ShutdownTimeout),
		Module,
	)
}
