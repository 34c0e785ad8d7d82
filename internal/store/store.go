package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/utakatalp/ladder-predictor/internal/league"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store wraps a Postgres connection holding the fixture catalog. Ladder
// state is never written here.
type Store struct {
	DB     *sql.DB
	logger zerolog.Logger
}

// NewStore opens a Postgres connection using the given connection string.
func NewStore(ctx context.Context, connStr string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// verify early
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	logger.Info().Msg("database connection established")
	return &Store{DB: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// Migrate brings the schema up to date with the embedded migrations.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.DB, "migrations"); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}

	s.logger.Info().Msg("migrations completed successfully")
	return nil
}

// ReplaceFixtures swaps the stored catalog for list in one transaction.
func (s *Store) ReplaceFixtures(ctx context.Context, list []league.Fixture) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ReplaceFixtures tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fixtures;`); err != nil {
		return fmt.Errorf("deleting fixtures: %w", err)
	}

	const q = `
INSERT INTO fixtures (round, match_number, home_team, away_team)
VALUES ($1, $2, $3, $4)
`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range list {
		if _, err := stmt.ExecContext(ctx, f.Round, f.MatchNumber, f.HomeTeam, f.AwayTeam); err != nil {
			return fmt.Errorf("inserting fixture %d (%s v %s): %w", f.MatchNumber, f.HomeTeam, f.AwayTeam, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ReplaceFixtures tx: %w", err)
	}
	s.logger.Info().Int("fixtures", len(list)).Msg("fixtures replaced")
	return nil
}

// LoadFixtures returns the stored catalog ordered by round, match number and
// insertion order, the same order fixtures.NewCatalog gives a CSV file.
func (s *Store) LoadFixtures(ctx context.Context) ([]league.Fixture, error) {
	const q = `
SELECT round, match_number, home_team, away_team
FROM fixtures
ORDER BY round, match_number, id;
`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying fixtures: %w", err)
	}
	defer rows.Close()

	var list []league.Fixture
	for rows.Next() {
		var f league.Fixture
		if err := rows.Scan(&f.Round, &f.MatchNumber, &f.HomeTeam, &f.AwayTeam); err != nil {
			return nil, fmt.Errorf("scanning fixture: %w", err)
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fixtures rows: %w", err)
	}
	return list, nil
}
