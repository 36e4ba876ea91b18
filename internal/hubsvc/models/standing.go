package models

// StandingRow is one line of the league table.
type StandingRow struct {
	Position     int    `json:"posicao"`
	TeamID       FlexID `json:"time_id"`
	TeamName     string `json:"time_nome"`
	CrestURL     string `json:"escudo,omitempty"`
	Points       int    `json:"pontos"`
	Played       int    `json:"jogos"`
	Wins         int    `json:"vitorias"`
	Draws        int    `json:"empates"`
	Losses       int    `json:"derrotas"`
	GoalsFor     int    `json:"gols_pro"`
	GoalsAgainst int    `json:"gols_contra"`
	GoalDiff     int    `json:"saldo"`
	Zone         string `json:"zona,omitempty"`
}

// RankingRow is one leaderboard entry after normalization.
type RankingRow struct {
	User        string  `json:"usuario"`
	Points      int     `json:"pontos"`
	Accuracy    float64 `json:"precisao"`
	Predictions int     `json:"palpites"`
	IsYou       bool    `json:"is_you"`
}

// UserMetrics backs the dashboard header cards.
type UserMetrics struct {
	Predictions int     `json:"palpites"`
	Accuracy    float64 `json:"precisao"`
	Points      int     `json:"pontos"`
	Stickers    int     `json:"figurinhas"`
}
