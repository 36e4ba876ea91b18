package matchtime

import (
	"sort"
	"strings"
	"time"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
)

// FormatKickoff renders a match's date and time as "22/11/2025 16:00".
func FormatKickoff(date, clock string) string {
	t, err := Kickoff(date, clock, time.UTC)
	if err != nil {
		return InvalidText
	}
	return t.Format(displayLayout)
}

var finishedMarkers = []string{"ft", "finished", "finalizado", "final"}

// DetailPhase is the badge of the match page. A finished status wins,
// otherwise the phase comes from the kickoff window.
func DetailPhase(m models.Match, now time.Time) models.MatchPhase {
	raw := strings.ToLower(m.Status)
	for _, marker := range finishedMarkers {
		if strings.Contains(raw, marker) {
			return models.MatchPhase{Code: "finished", Label: "Finalizado"}
		}
	}

	kickoff, err := Kickoff(m.Date, m.Time, now.Location())
	if err == nil {
		switch {
		case !now.Before(kickoff) && !now.After(kickoff.Add(AssumedDuration)):
			return models.MatchPhase{Code: "live", Label: "Ao vivo"}
		case now.Before(kickoff):
			return models.MatchPhase{Code: "upcoming", Label: "Em breve"}
		}
	}

	return models.MatchPhase{Code: "unknown", Label: "Indefinido"}
}

// SortByKickoff orders matches by ascending kickoff in place. Matches whose
// kickoff cannot be parsed keep their relative order at the end.
func SortByKickoff(matches []models.Match, loc *time.Location) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, errA := Kickoff(matches[i].Date, matches[i].Time, loc)
		b, errB := Kickoff(matches[j].Date, matches[j].Time, loc)
		if errA != nil || errB != nil {
			return errA == nil && errB != nil
		}
		return a.Before(b)
	})
}
