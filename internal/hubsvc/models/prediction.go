package models

import "encoding/json"

// Prediction is one user's normalized forecast ("palpite") for one match.
type Prediction struct {
	ID                 int64  `json:"id"`
	MatchID            string `json:"match_id"`
	PredictedHomeGoals int    `json:"predicted_home_goals"`
	PredictedAwayGoals int    `json:"predicted_away_goals"`
	IsCorrect          *bool  `json:"is_correct"`
}

// RawPrediction is a prediction record exactly as the backend sends it.
// Goal fields are kept raw because older records carry only the "palpite"
// string ("2x1") and numeric-ness has to be checked, not assumed.
type RawPrediction struct {
	ID        json.RawMessage `json:"id,omitempty"`
	MatchID   json.RawMessage `json:"partida_id,omitempty"`
	HomeGoals json.RawMessage `json:"palpite_gols_casa,omitempty"`
	AwayGoals json.RawMessage `json:"palpite_gols_visitante,omitempty"`
	Palpite   json.RawMessage `json:"palpite,omitempty"`
	Correct   *bool           `json:"acertou,omitempty"`
}

// PredictionRequest is the body the backend expects on POST /palpites/.
type PredictionRequest struct {
	MatchID   int64 `json:"partida_id"`
	HomeGoals int   `json:"palpite_gols_casa"`
	AwayGoals int   `json:"palpite_gols_visitante"`
}

// StatusLabel is the display verdict of a prediction.
type StatusLabel struct {
	Code string `json:"code"`
	Text string `json:"text"`
}
