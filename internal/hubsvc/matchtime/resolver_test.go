package matchtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
)

func at(clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", clock, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func fixture(status string) models.Match {
	return models.Match{
		ID:     "42",
		Date:   "2025-11-22",
		Time:   "16:00:00",
		Status: status,
	}
}

func TestResolveTenMinutesBeforeKickoff(t *testing.T) {
	info := Resolve(fixture(""), at("2025-11-22T15:50:00"))

	assert.True(t, info.Valid)
	assert.True(t, info.IsFuture)
	assert.False(t, info.IsLive)
	assert.False(t, info.IsFinished)
	require.NotNil(t, info.CountdownText)
	assert.Equal(t, "00:10:00", *info.CountdownText)
	assert.True(t, info.IsSoon)
	assert.Equal(t, "22/11/2025 16:00", info.KickoffText)
}

func TestResolveInsideWindowIsLive(t *testing.T) {
	info := Resolve(fixture(""), at("2025-11-22T17:30:00"))

	assert.True(t, info.IsLive)
	assert.False(t, info.IsFuture)
	assert.False(t, info.IsFinished)
	assert.Nil(t, info.CountdownText)
	assert.False(t, info.IsSoon)
}

func TestResolveWindowBoundaries(t *testing.T) {
	kickoff := Resolve(fixture(""), at("2025-11-22T16:00:00"))
	assert.True(t, kickoff.IsLive)
	assert.False(t, kickoff.IsFuture)

	end := Resolve(fixture(""), at("2025-11-22T18:00:00"))
	assert.True(t, end.IsLive)
	assert.False(t, end.IsFinished)

	after := Resolve(fixture(""), at("2025-11-22T18:00:01"))
	assert.True(t, after.IsFinished)
	assert.False(t, after.IsLive)
}

func TestResolveAfterWindowIsFinished(t *testing.T) {
	info := Resolve(fixture(""), at("2025-11-22T18:30:00"))

	assert.True(t, info.IsFinished)
	assert.False(t, info.IsLive)
	assert.Nil(t, info.CountdownText)
}

func TestResolveStatusAddsLiveness(t *testing.T) {
	for _, status := range []string{"Live", "LIVE 2nd half", "Ao Vivo"} {
		info := Resolve(fixture(status), at("2025-11-22T18:30:00"))
		assert.True(t, info.IsFinished, status)
		assert.True(t, info.IsLive, status)
	}

	// a finished status does not take liveness away inside the window
	info := Resolve(fixture("Match Finished"), at("2025-11-22T17:00:00"))
	assert.True(t, info.IsLive)
}

func TestResolveFutureCountdownShape(t *testing.T) {
	now := at("2025-11-22T16:00:00")
	cases := []struct {
		kickoffDate string
		kickoffTime string
		want        string
		soon        bool
	}{
		{"2025-11-22", "16:00:01", "00:00:01", true},
		{"2025-11-22", "16:10:00", "00:10:00", true},
		{"2025-11-22", "16:10:01", "00:10:01", false},
		{"2025-11-23", "18:30:45", "26:30:45", false},
		{"2025-11-27", "00:00:00", "104:00:00", false},
	}

	for _, c := range cases {
		m := models.Match{ID: "1", Date: c.kickoffDate, Time: c.kickoffTime}
		info := Resolve(m, now)
		require.True(t, info.IsFuture, c.want)
		assert.False(t, info.IsLive, c.want)
		require.NotNil(t, info.CountdownText, c.want)
		assert.Equal(t, c.want, *info.CountdownText)
		assert.Equal(t, c.soon, info.IsSoon, c.want)
	}
}

func TestResolveTruncatesSubSecondRemainder(t *testing.T) {
	now := at("2025-11-22T15:59:58").Add(500 * time.Millisecond)
	info := Resolve(fixture(""), now)

	require.NotNil(t, info.CountdownText)
	assert.Equal(t, "00:00:01", *info.CountdownText)
}

func TestResolveAcceptsShortTime(t *testing.T) {
	m := fixture("")
	m.Time = "16:00"
	info := Resolve(m, at("2025-11-22T15:00:00"))

	assert.True(t, info.Valid)
	require.NotNil(t, info.CountdownText)
	assert.Equal(t, "01:00:00", *info.CountdownText)
}

func TestResolveMalformedInputDoesNotFail(t *testing.T) {
	now := at("2025-11-22T15:00:00")
	bad := []models.Match{
		{ID: "1", Date: "", Time: "16:00:00"},
		{ID: "2", Date: "22/11/2025", Time: "16:00:00"},
		{ID: "3", Date: "2025-11-22", Time: "quatro horas"},
		{ID: "4", Date: "2025-13-40", Time: "16:00:00"},
	}

	for _, m := range bad {
		info := Resolve(m, now)
		assert.False(t, info.Valid, m.ID)
		assert.Equal(t, InvalidText, info.KickoffText, m.ID)
		assert.False(t, info.IsFuture, m.ID)
		assert.False(t, info.IsFinished, m.ID)
		assert.False(t, info.IsLive, m.ID)
		assert.Nil(t, info.CountdownText, m.ID)
	}

	live := Resolve(models.Match{ID: "5", Status: "live"}, now)
	assert.False(t, live.Valid)
	assert.True(t, live.IsLive)
}

func TestResolveUsesLocationOfNow(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2025, 11, 22, 15, 50, 0, 0, saoPaulo)

	info := Resolve(fixture(""), now)
	require.NotNil(t, info.CountdownText)
	assert.Equal(t, "00:10:00", *info.CountdownText)
}

func TestCountdown(t *testing.T) {
	assert.Equal(t, "00:00:00", Countdown(0))
	assert.Equal(t, "00:00:00", Countdown(-time.Minute))
	assert.Equal(t, "01:01:01", Countdown(time.Hour+time.Minute+time.Second+999*time.Millisecond))
}
