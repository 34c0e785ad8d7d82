// Package render turns ladder standings into text tables and JSON rows.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/utakatalp/ladder-predictor/internal/league"
)

// DefaultFormWindow is the number of recent outcomes shown in the FORM column.
const DefaultFormWindow = 5

// FormatForm joins outcomes with ", ". A positive window keeps only the most
// recent window entries; zero or less renders the whole history.
func FormatForm(form []league.Outcome, window int) string {
	if window > 0 && len(form) > window {
		form = form[len(form)-window:]
	}
	parts := make([]string, len(form))
	for i, o := range form {
		parts[i] = o.String()
	}
	return strings.Join(parts, ", ")
}

// Options controls text table output.
type Options struct {
	Title      string
	FormWindow int
}

// Table writes a fixed-width ladder to w.
func Table(w io.Writer, table []league.Standing, opts Options) error {
	width := len("Club")
	for _, s := range table {
		if n := len([]rune(s.Club)); n > width {
			width = n
		}
	}

	var b strings.Builder
	if opts.Title != "" {
		fmt.Fprintln(&b, opts.Title)
	}
	fmt.Fprintf(&b, "%3s  %-*s %3s %3s %3s %3s %4s %4s %4s %4s  %s\n",
		"Pos", width, "Club", "P", "W", "D", "L", "GF", "GA", "GD", "PTS", "FORM")
	for _, s := range table {
		fmt.Fprintf(&b, "%3d  %-*s %3d %3d %3d %3d %4d %4d %4d %4d  %s\n",
			s.Position,
			width, s.Club,
			s.Played,
			s.Wins,
			s.Draws,
			s.Losses,
			s.GoalsFor,
			s.GoalsAgainst,
			s.GoalDifference,
			s.Points,
			FormatForm(s.Form, opts.FormWindow),
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Row is the JSON shape of one ladder line.
type Row struct {
	league.Standing
	Form       []string `json:"form"`
	RecentForm string   `json:"recent_form"`
}

// Rows converts standings to JSON rows carrying both the full form history
// and the windowed rendering.
func Rows(table []league.Standing, window int) []Row {
	rows := make([]Row, len(table))
	for i, s := range table {
		form := make([]string, len(s.Form))
		for j, o := range s.Form {
			form[j] = o.String()
		}
		rows[i] = Row{
			Standing:   s,
			Form:       form,
			RecentForm: FormatForm(s.Form, window),
		}
	}
	return rows
}
