package models

import "time"

// DateLayout is the wire format of MatchRecord.Date.
const DateLayout = "2006-01-02"

// Match categories
const (
	MatchCategoryMensSingles   = "Men's Singles"
	MatchCategoryWomensSingles = "Women's Singles"
)

// MatchCategories lists the accepted values of MatchRecord.Category.
var MatchCategories = []string{MatchCategoryMensSingles, MatchCategoryWomensSingles}

// IsMatchCategory reports whether c is a known match category.
func IsMatchCategory(c string) bool {
	return c == MatchCategoryMensSingles || c == MatchCategoryWomensSingles
}

// MatchRecord is one historical professional match.
type MatchRecord struct {
	Date       time.Time `json:"date"`
	Tournament string    `json:"tournament"`
	Category   string    `json:"category"`
	Player1    string    `json:"player1"`
	Player2    string    `json:"player2"`
	Winner     string    `json:"winner"`
}

// Involves reports whether player took part in the match.
func (m MatchRecord) Involves(player string) bool {
	return m.Player1 == player || m.Player2 == player
}

// Opponent returns the other side of the match for player, or "" if player did not play.
func (m MatchRecord) Opponent(player string) string {
	switch player {
	case m.Player1:
		return m.Player2
	case m.Player2:
		return m.Player1
	}
	return ""
}

// MatchSummary holds the headline counts of a match history snapshot.
type MatchSummary struct {
	TotalMatches      int            `json:"total_matches"`
	UniquePlayers     int            `json:"unique_players"`
	UniqueTournaments int            `json:"unique_tournaments"`
	FirstDate         string         `json:"first_date,omitempty"`
	LastDate          string         `json:"last_date,omitempty"`
	ByCategory        map[string]int `json:"by_category"`
}
