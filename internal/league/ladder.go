package league

import "sort"

// BatchMode selects how ApplyResults treats invalid results.
type BatchMode int

const (
	// RejectBatch validates every result up front and applies none if any fails.
	RejectBatch BatchMode = iota
	// SkipInvalid applies every valid result and reports the rest.
	SkipInvalid
)

// Ladder owns one TeamRecord per club. It is not safe for concurrent use;
// build one per computation.
type Ladder struct {
	order   []string
	records map[string]*TeamRecord
}

// NewLadder creates a zeroed record for every distinct team, keeping the
// order of first appearance.
func NewLadder(teams []string) *Ladder {
	l := &Ladder{
		order:   make([]string, 0, len(teams)),
		records: make(map[string]*TeamRecord, len(teams)),
	}
	for _, name := range teams {
		if _, ok := l.records[name]; ok {
			continue
		}
		l.records[name] = &TeamRecord{Club: name}
		l.order = append(l.order, name)
	}
	return l
}

// Replay builds a fresh ladder for teams and applies results to it.
func Replay(teams []string, results []Result, mode BatchMode) (*Ladder, []error, error) {
	l := NewLadder(teams)
	skipped, err := l.ApplyResults(results, mode)
	if err != nil {
		return nil, nil, err
	}
	return l, skipped, nil
}

// Validate checks r against the ladder without mutating it.
func (l *Ladder) Validate(r Result) error {
	if _, ok := l.records[r.HomeTeam]; !ok {
		return invalidResult(r, "unknown home team %q", r.HomeTeam)
	}
	if _, ok := l.records[r.AwayTeam]; !ok {
		return invalidResult(r, "unknown away team %q", r.AwayTeam)
	}
	if r.HomeTeam == r.AwayTeam {
		return invalidResult(r, "team %q cannot play itself", r.HomeTeam)
	}
	if r.HomeScore < 0 {
		return invalidScore(r, "home score %d is negative", r.HomeScore)
	}
	if r.AwayScore < 0 {
		return invalidScore(r, "away score %d is negative", r.AwayScore)
	}
	return nil
}

// ApplyResult folds one result into the two teams' records. An invalid
// result leaves the ladder untouched.
func (l *Ladder) ApplyResult(r Result) error {
	if err := l.Validate(r); err != nil {
		return err
	}

	home := l.records[r.HomeTeam]
	away := l.records[r.AwayTeam]

	home.Played++
	away.Played++

	home.GoalsFor += r.HomeScore
	home.GoalsAgainst += r.AwayScore
	away.GoalsFor += r.AwayScore
	away.GoalsAgainst += r.HomeScore

	switch {
	case r.HomeScore > r.AwayScore:
		home.record(Win)
		away.record(Loss)
	case r.HomeScore < r.AwayScore:
		home.record(Loss)
		away.record(Win)
	default:
		home.record(Draw)
		away.record(Draw)
	}

	home.GoalDifference = home.GoalsFor - home.GoalsAgainst
	away.GoalDifference = away.GoalsFor - away.GoalsAgainst
	return nil
}

func (t *TeamRecord) record(o Outcome) {
	switch o {
	case Win:
		t.Wins++
		t.Points += PointsWin
	case Draw:
		t.Draws++
		t.Points += PointsDraw
	case Loss:
		t.Losses++
		t.Points += PointsLoss
	}
	t.Form = append(t.Form, o)
}

// ApplyResults applies results in order. Under RejectBatch the returned
// error is the first invalid result and nothing is applied. Under
// SkipInvalid the returned slice lists every skipped result.
func (l *Ladder) ApplyResults(results []Result, mode BatchMode) ([]error, error) {
	if mode == RejectBatch {
		if _, _, err := l.Filter(results, RejectBatch); err != nil {
			return nil, err
		}
	}

	var skipped []error
	for i, r := range results {
		if err := l.ApplyResult(r); err != nil {
			if mode == RejectBatch {
				return nil, withIndex(err, i)
			}
			skipped = append(skipped, withIndex(err, i))
		}
	}
	return skipped, nil
}

// Filter validates results without applying them. Under RejectBatch the
// first invalid result is returned as the error. Under SkipInvalid the
// valid results come back in order and the rest are reported.
func (l *Ladder) Filter(results []Result, mode BatchMode) ([]Result, []error, error) {
	valid := make([]Result, 0, len(results))
	var skipped []error
	for i, r := range results {
		if err := l.Validate(r); err != nil {
			if mode == RejectBatch {
				return nil, nil, withIndex(err, i)
			}
			skipped = append(skipped, withIndex(err, i))
			continue
		}
		valid = append(valid, r)
	}
	return valid, skipped, nil
}

func withIndex(err error, i int) error {
	if re, ok := err.(*ResultError); ok {
		cp := *re
		cp.Index = i
		return &cp
	}
	return err
}

// Teams returns club names in insertion order.
func (l *Ladder) Teams() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Record returns a snapshot of one club's record.
func (l *Ladder) Record(club string) (TeamRecord, bool) {
	t, ok := l.records[club]
	if !ok {
		return TeamRecord{}, false
	}
	return t.snapshot(), true
}

func (t *TeamRecord) snapshot() TeamRecord {
	cp := *t
	cp.Form = append([]Outcome(nil), t.Form...)
	return cp
}

// Standings returns every team ranked by points, goal difference, goals
// for and wins, all descending. Teams tied on all four keep insertion
// order; there is no head-to-head or alphabetical fallback.
func (l *Ladder) Standings() []Standing {
	table := make([]Standing, 0, len(l.order))
	for _, name := range l.order {
		table = append(table, Standing{TeamRecord: l.records[name].snapshot()})
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Wins > b.Wins
	})

	for i := range table {
		table[i].Position = i + 1
	}
	return table
}
