package fixtures

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/utakatalp/ladder-predictor/internal/league"
)

// Column headers of the fixture file. Matching is case-insensitive and
// extra columns such as Date or Location are ignored.
const (
	ColRound    = "Round Number"
	ColMatch    = "Match Number"
	ColHome     = "Home Team"
	ColAway     = "Away Team"
	ColHomeGoal = "Home Score"
	ColAwayGoal = "Away Score"
)

// FileSource reads fixtures from a CSV file on disk.
type FileSource struct {
	Path string
}

func (s FileSource) LoadFixtures(_ context.Context) ([]league.Fixture, error) {
	return LoadFile(s.Path)
}

// LoadFile opens path and parses it with ReadCSV.
func LoadFile(path string) ([]league.Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixtures: %w", err)
	}
	defer f.Close()

	list, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return list, nil
}

// ReadCSV parses a fixture table with Round Number, Match Number, Home Team
// and Away Team columns.
func ReadCSV(r io.Reader) ([]league.Fixture, error) {
	cr := newReader(r)
	cols, err := readHeader(cr, ColRound, ColMatch, ColHome, ColAway)
	if err != nil {
		return nil, err
	}

	var list []league.Fixture
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		if len(rec) < cols.width {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, cols.width, len(rec))
		}

		round, err := strconv.Atoi(strings.TrimSpace(cols.get(rec, ColRound)))
		if err != nil {
			return nil, fmt.Errorf("line %d: round number %q is not an integer", line, cols.get(rec, ColRound))
		}
		if round < 1 {
			return nil, fmt.Errorf("line %d: round number %d must be at least 1", line, round)
		}
		match, err := strconv.Atoi(strings.TrimSpace(cols.get(rec, ColMatch)))
		if err != nil {
			return nil, fmt.Errorf("line %d: match number %q is not an integer", line, cols.get(rec, ColMatch))
		}

		list = append(list, league.Fixture{
			Round:       round,
			MatchNumber: match,
			HomeTeam:    strings.TrimSpace(cols.get(rec, ColHome)),
			AwayTeam:    strings.TrimSpace(cols.get(rec, ColAway)),
		})
	}
	return list, nil
}

// WriteCSV writes fixtures in the format ReadCSV accepts.
func WriteCSV(w io.Writer, list []league.Fixture) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColRound, ColMatch, ColHome, ColAway}); err != nil {
		return err
	}
	for _, f := range list {
		row := []string{
			strconv.Itoa(f.Round),
			strconv.Itoa(f.MatchNumber),
			f.HomeTeam,
			f.AwayTeam,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadResults parses predicted results with Home Team, Away Team,
// Home Score and Away Score columns. Optional Round Number and Match Number
// columns pin a result to one fixture; blank cells leave it unpinned. A
// score that is not an integer is reported as league.ErrInvalidScore.
// Negative scores are left for the ladder to reject.
func ReadResults(r io.Reader) ([]league.Result, error) {
	cr := newReader(r)
	cols, err := readHeader(cr, ColHome, ColAway, ColHomeGoal, ColAwayGoal)
	if err != nil {
		return nil, err
	}

	var results []league.Result
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		if len(rec) < cols.width {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, cols.width, len(rec))
		}

		res := league.Result{
			HomeTeam: strings.TrimSpace(cols.get(rec, ColHome)),
			AwayTeam: strings.TrimSpace(cols.get(rec, ColAway)),
		}
		if res.HomeScore, err = parseScore(cols.get(rec, ColHomeGoal)); err != nil {
			return nil, fmt.Errorf("line %d: home score: %w", line, err)
		}
		if res.AwayScore, err = parseScore(cols.get(rec, ColAwayGoal)); err != nil {
			return nil, fmt.Errorf("line %d: away score: %w", line, err)
		}
		if res.Round, err = cols.optionalInt(rec, ColRound); err != nil {
			return nil, fmt.Errorf("line %d: round number: %w", line, err)
		}
		if res.MatchNumber, err = cols.optionalInt(rec, ColMatch); err != nil {
			return nil, fmt.Errorf("line %d: match number: %w", line, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// LoadResultsFile opens path and parses it with ReadResults.
func LoadResultsFile(path string) ([]league.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results: %w", err)
	}
	defer f.Close()

	results, err := ReadResults(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return results, nil
}

func parseScore(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", league.ErrInvalidScore, s)
	}
	return n, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

func readHeader(cr *csv.Reader, required ...string) (columns, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return columns{}, errors.New("missing header row")
	}
	if err != nil {
		return columns{}, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	cols := columns{index: make(map[string]int, len(required)), all: index}
	for _, name := range required {
		i, ok := index[strings.ToLower(name)]
		if !ok {
			return columns{}, fmt.Errorf("missing column %q", name)
		}
		cols.index[name] = i
		if i+1 > cols.width {
			cols.width = i + 1
		}
	}
	return cols, nil
}

type columns struct {
	index map[string]int
	all   map[string]int
	width int
}

func (c columns) get(rec []string, name string) string {
	return rec[c.index[name]]
}

// optionalInt reads a column that may be absent from the header or blank
// in the row, returning 0 in either case.
func (c columns) optionalInt(rec []string, name string) (int, error) {
	i, ok := c.all[strings.ToLower(name)]
	if !ok || i >= len(rec) {
		return 0, nil
	}
	v := strings.TrimSpace(rec[i])
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return n, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
