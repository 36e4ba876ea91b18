package models

// Team is one side of a fixture.
type Team struct {
	ID       FlexID `json:"id,omitempty"`
	Name     string `json:"nome"`
	CrestURL string `json:"escudo,omitempty"`
}

// Match is a scheduled or played fixture as returned by the hub API.
// Date is YYYY-MM-DD and Time is HH:MM:SS local to the backend.
type Match struct {
	ID         FlexID  `json:"id_partida"`
	HomeTeam   Team    `json:"time_casa"`
	AwayTeam   Team    `json:"time_fora"`
	Date       string  `json:"data"`
	Time       string  `json:"horario"`
	Status     string  `json:"status,omitempty"`
	HomeScore  *int    `json:"placar_casa,omitempty"`
	AwayScore  *int    `json:"placar_fora,omitempty"`
	Stadium    *string `json:"estadio,omitempty"`
	City       *string `json:"cidade,omitempty"`
	Attendance *int    `json:"publico,omitempty"`
}

// MatchTimeInfo is the per-tick temporal projection of a match. It is never
// persisted.
type MatchTimeInfo struct {
	IsFuture      bool    `json:"is_future"`
	IsLive        bool    `json:"is_live"`
	IsFinished    bool    `json:"is_finished"`
	CountdownText *string `json:"countdown_text"`
	IsSoon        bool    `json:"is_soon"`
	Valid         bool    `json:"valid"`
	KickoffText   string  `json:"kickoff_text"`
}

// MatchPhase is the badge shown on the match detail page.
type MatchPhase struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}
