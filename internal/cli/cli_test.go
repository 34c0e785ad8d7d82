package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/utakatalp/ladder-predictor/internal/league"
)

const fixtureCSV = `Round Number,Match Number,Home Team,Away Team
1,1,A,B
1,2,C,D
2,3,B,C
2,4,D,A
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// --- table ---

func TestTableWorkedExample(t *testing.T) {
	fixturesFile := writeFile(t, "fixtures.csv", fixtureCSV)
	res := writeFile(t, "results.csv", "Home Team,Away Team,Home Score,Away Score\nA,B,2,1\nC,D,0,0\n")

	out, err := run(t, "table", "--fixtures", fixturesFile, "--results", res)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected title, header and 4 rows, got:\n%s", out)
	}
	var order []string
	for _, l := range lines[2:] {
		order = append(order, strings.Fields(l)[1])
	}
	if strings.Join(order, ",") != "A,C,D,B" {
		t.Fatalf("unexpected order %v\n%s", order, out)
	}
}

func TestTableRoundsJSON(t *testing.T) {
	fixturesFile := writeFile(t, "fixtures.csv", fixtureCSV)
	res := writeFile(t, "results.csv", "Home Team,Away Team,Home Score,Away Score\nD,A,4,0\n")

	out, err := run(t, "table", "--fixtures", fixturesFile, "--results", res, "--rounds", "2", "--json", "--form-window", "1")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	var rows []struct {
		Position   int    `json:"position"`
		Club       string `json:"club"`
		Played     int    `json:"played"`
		Points     int    `json:"points"`
		RecentForm string `json:"recent_form"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Club != "D" || rows[0].Points != 4 || rows[0].RecentForm != "W" {
		t.Fatalf("expected D top on 4 points, got %+v", rows[0])
	}
	for _, r := range rows {
		if r.Played != 2 {
			t.Fatalf("expected every team to play twice, got %+v", r)
		}
	}
}

func TestTableNoResultsListsEveryTeam(t *testing.T) {
	fixturesFile := writeFile(t, "fixtures.csv", fixtureCSV)
	out, err := run(t, "table", "--fixtures", fixturesFile)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	for _, club := range []string{"A", "B", "C", "D"} {
		if !strings.Contains(out, "  "+club+" ") {
			t.Errorf("expected %s in output:\n%s", club, out)
		}
	}
}

func TestTableRejectsUnknownTeam(t *testing.T) {
	fixturesFile := writeFile(t, "fixtures.csv", fixtureCSV)
	res := writeFile(t, "results.csv", "Home Team,Away Team,Home Score,Away Score\nA,Z,1,0\n")

	_, err := run(t, "table", "--fixtures", fixturesFile, "--results", res)
	if !errors.Is(err, league.ErrInvalidResult) {
		t.Fatalf("expected ErrInvalidResult, got %v", err)
	}
}

func TestTableSkipInvalid(t *testing.T) {
	fixturesFile := writeFile(t, "fixtures.csv", fixtureCSV)
	res := writeFile(t, "results.csv", "Home Team,Away Team,Home Score,Away Score\nA,Z,1,0\nA,B,-2,0\nC,D,1,0\n")

	out, err := run(t, "table", "--fixtures", fixturesFile, "--results", res, "--skip-invalid")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	first := strings.Fields(strings.Split(out, "\n")[2])
	if first[1] != "C" {
		t.Fatalf("expected C on top, got %v", first)
	}
}

func TestTableNonIntegerScore(t *testing.T) {
	fixturesFile := writeFile(t, "fixtures.csv", fixtureCSV)
	res := writeFile(t, "results.csv", "Home Team,Away Team,Home Score,Away Score\nA,B,two,0\n")

	_, err := run(t, "table", "--fixtures", fixturesFile, "--results", res)
	if !errors.Is(err, league.ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}
}

func TestTableNegativeRounds(t *testing.T) {
	fixturesFile := writeFile(t, "fixtures.csv", fixtureCSV)
	if _, err := run(t, "table", "--fixtures", fixturesFile, "--rounds", "-1"); err == nil {
		t.Fatal("expected error for negative rounds")
	}
}

func TestTableRoundsRepeatedMeetings(t *testing.T) {
	fixturesFile := writeFile(t, "fixtures.csv", "Round Number,Match Number,Home Team,Away Team\n1,1,A,B\n2,2,A,B\n")
	res := writeFile(t, "results.csv", "Home Team,Away Team,Home Score,Away Score\nA,B,3,0\nA,B,0,2\n")

	out, err := run(t, "table", "--fixtures", fixturesFile, "--results", res, "--rounds", "2", "--json")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	var rows []struct {
		Club   string `json:"club"`
		Wins   int    `json:"wins"`
		Points int    `json:"points"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	for _, r := range rows {
		if r.Wins != 1 || r.Points != 3 {
			t.Fatalf("expected one win each, got %+v", rows)
		}
	}
}

func TestTableRoundsRejectsUnknownTeam(t *testing.T) {
	fixturesFile := writeFile(t, "fixtures.csv", fixtureCSV)
	res := writeFile(t, "results.csv", "Home Team,Away Team,Home Score,Away Score\nA,Zed,1,0\n")

	_, err := run(t, "table", "--fixtures", fixturesFile, "--results", res, "--rounds", "1")
	if !errors.Is(err, league.ErrInvalidResult) {
		t.Fatalf("expected ErrInvalidResult, got %v", err)
	}
	if _, err := run(t, "table", "--fixtures", fixturesFile, "--results", res, "--rounds", "1", "--skip-invalid"); err != nil {
		t.Fatalf("expected unknown team skipped, got %v", err)
	}
}

// --- schedule ---

func TestScheduleWritesCSV(t *testing.T) {
	out, err := run(t, "schedule", "--team", "Sydney FC", "--team", "Perth Glory", "--team", "Newcastle Jets", "--double")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Round Number,Match Number,Home Team,Away Team" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if len(lines) != 7 {
		t.Fatalf("expected header and 6 fixtures, got %d lines:\n%s", len(lines), out)
	}
}

func TestScheduleOutputFeedsTable(t *testing.T) {
	out, err := run(t, "schedule", "--team", "A", "--team", "B", "--team", "C", "--team", "D")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	fixturesFile := writeFile(t, "fixtures.csv", out)
	table, err := run(t, "table", "--fixtures", fixturesFile, "--rounds", "3")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if !strings.HasPrefix(table, "Ladder after round 3\n") {
		t.Fatalf("unexpected table:\n%s", table)
	}
}

func TestScheduleNeedsTwoTeams(t *testing.T) {
	if _, err := run(t, "schedule", "--team", "Solo"); err == nil {
		t.Fatal("expected error with a single team")
	}
}

// --- import ---

func TestImportNeedsDatabase(t *testing.T) {
	t.Setenv("LADDER_DATABASE_URL", "")
	fixturesFile := writeFile(t, "fixtures.csv", fixtureCSV)
	_, err := run(t, "import", "--fixtures", fixturesFile)
	if err == nil || !strings.Contains(err.Error(), "database-url") {
		t.Fatalf("expected missing database error, got %v", err)
	}
}
