package models

// PerformanceSummary is a player's win/loss record derived from the match history.
type PerformanceSummary struct {
	Player        string  `json:"player"`
	TotalMatches  int     `json:"total_matches"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"win_percentage"` // fraction in [0,1]; 0 when no matches
}

// NewPerformanceSummary derives losses and win percentage from the raw counts.
func NewPerformanceSummary(player string, total, wins int) PerformanceSummary {
	s := PerformanceSummary{
		Player:       player,
		TotalMatches: total,
		Wins:         wins,
		Losses:       total - wins,
	}
	if total > 0 {
		s.WinPercentage = float64(wins) / float64(total)
	}
	return s
}

// HeadToHeadRecord summarizes the matches played between two players.
type HeadToHeadRecord struct {
	Player1     string        `json:"player1"`
	Player2     string        `json:"player2"`
	Player1Wins int           `json:"player1_wins"`
	Player2Wins int           `json:"player2_wins"`
	Matches     []MatchRecord `json:"matches"`
}
