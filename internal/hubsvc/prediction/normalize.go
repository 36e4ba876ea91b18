// Package prediction normalizes the two prediction shapes the backend
// returns and reconciles predictions with matches.
package prediction

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
)

// Kind tags the shape a raw prediction record arrived in.
type Kind int

const (
	KindUnknown Kind = iota
	KindStructured
	KindLegacyString
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindLegacyString:
		return "legacy-string"
	default:
		return "unknown"
	}
}

// Tagged is a raw record classified at the deserialization boundary.
// Home and Away are set for KindStructured, Text for KindLegacyString.
type Tagged struct {
	Kind    Kind
	ID      int64
	MatchID string
	Home    int
	Away    int
	Text    string
	Correct *bool
}

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// Decode classifies raw. It never fails: anything unrecognized is
// KindUnknown.
func Decode(raw models.RawPrediction) Tagged {
	t := Tagged{
		ID:      parseID(raw.ID),
		MatchID: models.CoerceID(raw.MatchID),
		Correct: raw.Correct,
	}

	home, okHome := number(raw.HomeGoals)
	away, okAway := number(raw.AwayGoals)
	if okHome && okAway {
		t.Kind = KindStructured
		t.Home, t.Away = home, away
		return t
	}

	if text, ok := str(raw.Palpite); ok && strings.TrimSpace(text) != "" {
		t.Kind = KindLegacyString
		t.Text = text
		return t
	}

	t.Kind = KindUnknown
	return t
}

// Prediction collapses the tagged record to the uniform shape.
func (t Tagged) Prediction() models.Prediction {
	p := models.Prediction{
		ID:        t.ID,
		MatchID:   t.MatchID,
		IsCorrect: t.Correct,
	}

	switch t.Kind {
	case KindStructured:
		p.PredictedHomeGoals = clamp(t.Home)
		p.PredictedAwayGoals = clamp(t.Away)
	case KindLegacyString:
		p.PredictedHomeGoals, p.PredictedAwayGoals = ParseScore(t.Text)
	}

	return p
}

// Normalize converts one backend record into a Prediction.
func Normalize(raw models.RawPrediction) models.Prediction {
	return Decode(raw).Prediction()
}

// NormalizeAll normalizes a whole list, keeping input order.
func NormalizeAll(raws []models.RawPrediction) []models.Prediction {
	out := make([]models.Prediction, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

// ParseScore reads a legacy "2x1" or "2-1" score. A side that does not
// start with an integer counts as 0.
func ParseScore(text string) (home, away int) {
	normalized := strings.ToLower(strings.Replace(text, "-", "x", 1))
	parts := strings.Split(normalized, "x")

	home = parseGoals(parts[0])
	if len(parts) > 1 {
		away = parseGoals(parts[1])
	}
	return home, away
}

func parseGoals(s string) int {
	digits := leadingInt.FindString(strings.TrimSpace(s))
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return clamp(n)
}

func clamp(goals int) int {
	if goals < 0 {
		return 0
	}
	return goals
}

func number(data json.RawMessage) (int, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '"' || bytes.Equal(data, []byte("null")) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

func str(data json.RawMessage) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

func parseID(data json.RawMessage) int64 {
	id, err := strconv.ParseInt(models.CoerceID(data), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
