package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/utakatalp/ladder-predictor/internal/league"
)

func TestFormatForm(t *testing.T) {
	form := []league.Outcome{league.Win, league.Loss, league.Draw, league.Win, league.Win, league.Loss, league.Draw}
	cases := []struct {
		window int
		want   string
	}{
		{0, "W, L, D, W, W, L, D"},
		{-1, "W, L, D, W, W, L, D"},
		{5, "D, W, W, L, D"},
		{1, "D"},
		{10, "W, L, D, W, W, L, D"},
	}
	for _, c := range cases {
		if got := FormatForm(form, c.window); got != c.want {
			t.Errorf("FormatForm(window=%d) = %q, want %q", c.window, got, c.want)
		}
	}
	if got := FormatForm(nil, 5); got != "" {
		t.Errorf("expected empty form, got %q", got)
	}
}

func sampleStandings(t *testing.T) []league.Standing {
	t.Helper()
	l := league.NewLadder([]string{"Adelaide United", "Perth Glory", "Newcastle Jets"})
	results := []league.Result{
		{HomeTeam: "Adelaide United", AwayTeam: "Perth Glory", HomeScore: 2, AwayScore: 1},
		{HomeTeam: "Perth Glory", AwayTeam: "Newcastle Jets", HomeScore: 0, AwayScore: 0},
	}
	if _, err := l.ApplyResults(results, league.RejectBatch); err != nil {
		t.Fatal(err)
	}
	return l.Standings()
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Table(&buf, sampleStandings(t), Options{Title: "Ladder", FormWindow: 5}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title, header and 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Ladder" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "Pos") || !strings.HasSuffix(lines[1], "FORM") {
		t.Fatalf("unexpected header %q", lines[1])
	}
	first := strings.Fields(lines[2])
	if first[0] != "1" || first[1] != "Adelaide" || first[len(first)-1] != "W" {
		t.Fatalf("unexpected first row %q", lines[2])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[4]), "3  Perth Glory") || !strings.HasSuffix(lines[4], "L, D") {
		t.Fatalf("expected Perth last with form L, D: %q", lines[4])
	}
}

func TestRowsJSON(t *testing.T) {
	rows := Rows(sampleStandings(t), 1)
	data, err := json.Marshal(rows)
	if err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	perth := decoded[2]
	if perth["club"] != "Perth Glory" || perth["position"].(float64) != 3 {
		t.Fatalf("unexpected row %v", perth)
	}
	if perth["recent_form"] != "D" {
		t.Fatalf("expected windowed form D, got %v", perth["recent_form"])
	}
	if form := perth["form"].([]any); len(form) != 2 || form[0] != "L" {
		t.Fatalf("expected full form [L D], got %v", form)
	}
}
