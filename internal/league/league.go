package league

import "fmt"

// Outcome is a single match result from one team's point of view.
type Outcome byte

const (
	Win  Outcome = 'W'
	Draw Outcome = 'D'
	Loss Outcome = 'L'
)

func (o Outcome) String() string {
	switch o {
	case Win, Draw, Loss:
		return string(rune(o))
	}
	return "?"
}

// Points awarded per outcome.
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// TeamRecord holds the aggregate statistics for one club on the ladder.
type TeamRecord struct {
	Club           string    `json:"club"`
	Played         int       `json:"played"`
	Wins           int       `json:"wins"`
	Draws          int       `json:"draws"`
	Losses         int       `json:"losses"`
	GoalsFor       int       `json:"goals_for"`
	GoalsAgainst   int       `json:"goals_against"`
	GoalDifference int       `json:"goal_difference"`
	Points         int       `json:"points"`
	Form           []Outcome `json:"-"`
}

// Fixture represents a scheduled match between two teams.
type Fixture struct {
	Round       int    `json:"round"`
	MatchNumber int    `json:"match_number"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
}

// Result is a predicted score for one fixture. Round and MatchNumber are
// optional and only pin the result to a fixture when predicting by round;
// the ladder ignores them.
type Result struct {
	Round       int    `json:"round,omitempty"`
	MatchNumber int    `json:"match_number,omitempty"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	HomeScore   int    `json:"home_score"`
	AwayScore   int    `json:"away_score"`
}

func (r Result) ScoreLine() string {
	return fmt.Sprintf("%s %d - %d %s",
		r.HomeTeam, r.HomeScore,
		r.AwayScore, r.AwayTeam,
	)
}

// Standing is one ranked row of the ladder.
type Standing struct {
	Position int `json:"position"`
	TeamRecord
}
