// Package league models tournaments, match results, standings, and round
// scheduling.
package league

import "sort"

// Result codes for a reported match.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

// Points awarded per match outcome.
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// Tournament is one organized event within a season.
type Tournament struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SeasonID string `json:"season_id,omitempty"`
	Rounds   int    `json:"rounds"`
}

// Match records one reported pairing result. Result is from PlayerA's
// perspective. An empty PlayerB marks a bye, which scores as a win for
// PlayerA.
type Match struct {
	TournamentID string `json:"tournament_id"`
	Round        int    `json:"round"`
	PlayerA      string `json:"player_a"`
	PlayerB      string `json:"player_b,omitempty"`
	Result       string `json:"result"`
}

// Standing is one player's accumulated record.
type Standing struct {
	Player  string `json:"player"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Draws   int    `json:"draws"`
	Byes    int    `json:"byes"`
	Points  int    `json:"points"`
	Played  int    `json:"played"`
}

// ComputeStandings folds reported matches into a points table, sorted by
// descending points then ascending player name. Unknown result strings are
// skipped rather than guessed at.
func ComputeStandings(matches []Match) []Standing {
	byPlayer := make(map[string]*Standing)

	record := func(player string) *Standing {
		if s, ok := byPlayer[player]; ok {
			return s
		}
		s := &Standing{Player: player}
		byPlayer[player] = s
		return s
	}

	for _, m := range matches {
		if m.PlayerA == "" {
			continue
		}

		if m.PlayerB == "" {
			// Bye: free win, no opponent record.
			a := record(m.PlayerA)
			a.Wins++
			a.Byes++
			a.Played++
			continue
		}

		a := record(m.PlayerA)
		b := record(m.PlayerB)

		switch m.Result {
		case ResultWin:
			a.Wins++
			b.Losses++
		case ResultLoss:
			a.Losses++
			b.Wins++
		case ResultDraw:
			a.Draws++
			b.Draws++
		default:
			continue
		}
		a.Played++
		b.Played++
	}

	standings := make([]Standing, 0, len(byPlayer))
	for _, s := range byPlayer {
		s.Points = s.Wins*PointsWin + s.Draws*PointsDraw
		standings = append(standings, *s)
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].Player < standings[j].Player
	})
	return standings
}
