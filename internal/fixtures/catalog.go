package fixtures

import (
	"context"
	"sort"

	"github.com/utakatalp/ladder-predictor/internal/league"
)

// Source loads the fixture list from wherever it is kept.
type Source interface {
	LoadFixtures(ctx context.Context) ([]league.Fixture, error)
}

// Catalog is an immutable, in-memory fixture list.
type Catalog struct {
	fixtures []league.Fixture
	teams    []string
	rounds   int
}

// NewCatalog copies fixtures, orders them by round and match number and
// derives the team set in order of first appearance, home side before away
// side. Fixtures sharing a round and match number keep their input order.
func NewCatalog(fixtures []league.Fixture) *Catalog {
	c := &Catalog{fixtures: append([]league.Fixture(nil), fixtures...)}
	sort.SliceStable(c.fixtures, func(i, j int) bool {
		a, b := c.fixtures[i], c.fixtures[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		return a.MatchNumber < b.MatchNumber
	})

	seen := make(map[string]bool)
	for _, f := range c.fixtures {
		for _, name := range []string{f.HomeTeam, f.AwayTeam} {
			if !seen[name] {
				seen[name] = true
				c.teams = append(c.teams, name)
			}
		}
		if f.Round > c.rounds {
			c.rounds = f.Round
		}
	}
	return c
}

// Load reads the full fixture list from src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	list, err := src.LoadFixtures(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(list), nil
}

func (c *Catalog) Fixtures() []league.Fixture {
	return append([]league.Fixture(nil), c.fixtures...)
}

func (c *Catalog) Teams() []string {
	return append([]string(nil), c.teams...)
}

// Rounds returns the highest round number in the catalog.
func (c *Catalog) Rounds() int {
	return c.rounds
}

// Round returns the fixtures of round n.
func (c *Catalog) Round(n int) []league.Fixture {
	var out []league.Fixture
	for _, f := range c.fixtures {
		if f.Round == n {
			out = append(out, f)
		}
	}
	return out
}

// Through returns the fixtures of rounds 1..k in catalog order.
func (c *Catalog) Through(k int) []league.Fixture {
	var out []league.Fixture
	for _, f := range c.fixtures {
		if f.Round >= 1 && f.Round <= k {
			out = append(out, f)
		}
	}
	return out
}

// Prediction is the result list fed to the ladder for rounds 1..k.
type Prediction struct {
	// Results holds one entry per fixture in rounds 1..k, in catalog order.
	Results []league.Result
	// Skipped reports invalid results dropped under league.SkipInvalid.
	Skipped []error
	// Unmatched lists valid results that found no free fixture, in input order.
	Unmatched []league.Result
}

// Predict builds one result per fixture in rounds 1..k. Results are first
// validated against the catalog's teams under mode. A result carrying a
// round or match number claims the first free fixture it identifies; the
// rest then claim the earliest free fixture with the same home and away
// teams, so repeated meetings take scores in order. Fixtures nobody claims
// are predicted 0-0.
func (c *Catalog) Predict(k int, results []league.Result, mode league.BatchMode) (Prediction, error) {
	valid, skipped, err := league.NewLadder(c.teams).Filter(results, mode)
	if err != nil {
		return Prediction{}, err
	}

	fixtures := c.Through(k)
	claimed := make([]int, len(fixtures))
	for i := range claimed {
		claimed[i] = -1
	}
	used := make([]bool, len(valid))

	claim := func(pinned bool) {
		for i, r := range valid {
			if pinned != (r.Round != 0 || r.MatchNumber != 0) {
				continue
			}
			for j, f := range fixtures {
				if claimed[j] < 0 && identifies(r, f) {
					claimed[j] = i
					used[i] = true
					break
				}
			}
		}
	}
	claim(true)
	claim(false)

	p := Prediction{
		Results: make([]league.Result, 0, len(fixtures)),
		Skipped: skipped,
	}
	for j, f := range fixtures {
		r := league.Result{
			Round:       f.Round,
			MatchNumber: f.MatchNumber,
			HomeTeam:    f.HomeTeam,
			AwayTeam:    f.AwayTeam,
		}
		if i := claimed[j]; i >= 0 {
			r.HomeScore = valid[i].HomeScore
			r.AwayScore = valid[i].AwayScore
		}
		p.Results = append(p.Results, r)
	}
	for i, r := range valid {
		if !used[i] {
			p.Unmatched = append(p.Unmatched, r)
		}
	}
	return p, nil
}

func identifies(r league.Result, f league.Fixture) bool {
	if r.HomeTeam != f.HomeTeam || r.AwayTeam != f.AwayTeam {
		return false
	}
	if r.Round != 0 && r.Round != f.Round {
		return false
	}
	return r.MatchNumber == 0 || r.MatchNumber == f.MatchNumber
}
