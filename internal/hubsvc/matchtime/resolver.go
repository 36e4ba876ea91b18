// Package matchtime derives a match's lifecycle phase and kickoff countdown
// from its scheduled date and time. Everything here is a pure function of
// (match, now); the once-per-second re-evaluation is driven by the caller.
package matchtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
)

const (
	// AssumedDuration is how long a match is considered running after
	// kickoff. The upstream data carries no real duration.
	AssumedDuration = 2 * time.Hour

	// SoonThreshold marks an upcoming match as about to start.
	SoonThreshold = 10 * time.Minute

	// InvalidText is rendered in place of a kickoff that cannot be parsed.
	InvalidText = "Data inválida"

	displayLayout = "02/01/2006 15:04"
)

var kickoffLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Kickoff combines an ISO date and a time of day into an instant in loc.
func Kickoff(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("kickoff date or time missing")
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range kickoffLayouts {
		t, err := time.ParseInLocation(layout, date+" "+clock, loc)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid kickoff %q %q", date, clock)
}

// Resolve classifies m relative to now. The kickoff is read in now's
// location since no zone is transmitted with the match.
//
// Liveness is the OR of the time window and the reported status: a status
// can add liveness outside the window but never removes it. A malformed
// date or time never fails; the result is marked invalid and carries
// InvalidText.
func Resolve(m models.Match, now time.Time) models.MatchTimeInfo {
	info := models.MatchTimeInfo{
		IsLive: LiveByStatus(m.Status),
	}

	kickoff, err := Kickoff(m.Date, m.Time, now.Location())
	if err != nil {
		info.KickoffText = InvalidText
		return info
	}

	info.Valid = true
	info.KickoffText = kickoff.Format(displayLayout)

	elapsed := now.Sub(kickoff)
	info.IsFinished = elapsed > AssumedDuration
	info.IsFuture = elapsed < 0

	if !info.IsFinished && !info.IsFuture {
		info.IsLive = true
	}

	if info.IsFuture {
		remaining := -elapsed
		text := Countdown(remaining)
		info.CountdownText = &text
		info.IsSoon = remaining <= SoonThreshold
	}

	return info
}

// LiveByStatus reports whether the upstream status text says the match is
// being played.
func LiveByStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "live") || strings.Contains(s, "ao vivo")
}

// Countdown renders d as HH:MM:SS in whole seconds, truncating. Hours grow
// past two digits when needed.
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
