package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
)

const predictionsBody = `[
	{"id": 11, "partida_id": 2001, "palpite_gols_casa": 2, "palpite_gols_visitante": 1, "acertou": null},
	{"id": 12, "partida_id": "2000", "palpite": "0-0", "acertou": true},
	{"id": 13, "partida_id": 1999, "acertou": false}
]`

func TestListAnonymousIsEmpty(t *testing.T) {
	f := newFixture(t, at("2025-11-22T15:50:00"))

	list := f.predictions.List(context.Background(), session.Anonymous)
	assert.Empty(t, list.Predictions)
	assert.Empty(t, list.Notice)
	assert.Zero(t, f.hub.calls("GET /palpites/"))
}

func TestListNormalizes(t *testing.T) {
	f := newFixture(t, at("2025-11-22T15:50:00"))
	f.hub.set("GET /palpites/", predictionsBody)

	list := f.predictions.List(context.Background(), session.New("tok"))
	require.Len(t, list.Predictions, 3)
	assert.Equal(t, "2001", list.Predictions[0].MatchID)
	assert.Equal(t, "2000", list.Predictions[1].MatchID)
	assert.Equal(t, 0, list.Predictions[1].PredictedAwayGoals)
	assert.Equal(t, 0, list.Predictions[2].PredictedHomeGoals)
}

func TestListSnapshotsArePerUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, at("2025-11-22T15:50:00"))
	f.hub.set("GET /palpites/", predictionsBody)
	f.predictions.List(ctx, session.New("ana"))

	f.hub.unset("GET /palpites/")

	ana := f.predictions.List(ctx, session.New("ana"))
	assert.True(t, ana.Stale)
	assert.Len(t, ana.Predictions, 3)

	bia := f.predictions.List(ctx, session.New("bia"))
	assert.False(t, bia.Stale)
	assert.Empty(t, bia.Predictions)
	assert.Equal(t, NoticePredictionsDown, bia.Notice)
}

func TestSubmitBeforeKickoff(t *testing.T) {
	f := newFixture(t, at("2025-11-22T15:50:00"))
	f.hub.set("GET /partidas/proximas", upcomingBody)
	f.hub.set("POST /palpites/", `{"ok": true}`)
	f.hub.set("GET /palpites/", predictionsBody)

	list, err := f.predictions.Submit(context.Background(), session.New("tok"), "2001", 3, 1)
	require.NoError(t, err)
	assert.Len(t, list.Predictions, 3)

	var posted map[string]int
	require.NoError(t, json.Unmarshal(f.hub.postedBody("POST /palpites/"), &posted))
	assert.Equal(t, map[string]int{"partida_id": 2001, "palpite_gols_casa": 3, "palpite_gols_visitante": 1}, posted)
}

func TestSubmitClosedAfterKickoff(t *testing.T) {
	f := newFixture(t, at("2025-11-22T16:00:00"))
	f.hub.set("GET /partidas/proximas", upcomingBody)

	_, err := f.predictions.Submit(context.Background(), session.New("tok"), "2001", 1, 0)
	assert.ErrorIs(t, err, ErrPredictionClosed)
	assert.Zero(t, f.hub.calls("POST /palpites/"))
}

func TestSubmitLooksUpMatchOffTheBoard(t *testing.T) {
	f := newFixture(t, at("2025-11-22T15:50:00"))
	f.hub.set("GET /partidas/proximas", `[]`)
	f.hub.set("GET /partidas/resultado/3000", `{"id_partida": 3000, "data": "2025-11-30", "horario": "16:00:00"}`)
	f.hub.set("GET /partidas/resultado/3001", `null`)
	f.hub.set("POST /palpites/", `{}`)
	f.hub.set("GET /palpites/", `[]`)

	_, err := f.predictions.Submit(context.Background(), session.New("tok"), "3000", 0, 0)
	assert.NoError(t, err)

	_, err = f.predictions.Submit(context.Background(), session.New("tok"), "3001", 0, 0)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, at("2025-11-22T15:50:00"))

	_, err := f.predictions.Submit(ctx, session.Anonymous, "2001", 1, 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.predictions.Submit(ctx, session.New("tok"), "2001", -1, 1)
	assert.ErrorIs(t, err, ErrInvalidGoals)

	_, err = f.predictions.Submit(ctx, session.New("tok"), "abc", 1, 1)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestHistory(t *testing.T) {
	f := newFixture(t, at("2025-11-22T17:00:00"))
	f.hub.set("POST /palpites/processar-automatico", `{}`)
	f.hub.set("GET /palpites/", predictionsBody)
	f.hub.set("GET /partidas/resultado/2001", `{"id_partida": 2001, "status": "2nd Half", "placar_casa": 1, "placar_fora": 0}`)
	f.hub.set("GET /partidas/resultado/2000", `{"id_partida": 2000, "status": "Live"}`)

	h := f.predictions.History(context.Background(), session.New("tok"))
	require.Len(t, h.Entries, 3)

	// newest first
	assert.Equal(t, int64(13), h.Entries[0].Prediction.ID)
	assert.Nil(t, h.Entries[0].Match)
	assert.Equal(t, "incorrect", h.Entries[0].Label.Code)

	// verdict wins over live status
	assert.Equal(t, int64(12), h.Entries[1].Prediction.ID)
	assert.Equal(t, "correct", h.Entries[1].Label.Code)

	assert.Equal(t, int64(11), h.Entries[2].Prediction.ID)
	require.NotNil(t, h.Entries[2].Match)
	assert.Equal(t, "live", h.Entries[2].Label.Code)

	assert.Equal(t, 33.3, h.Accuracy)
	assert.Equal(t, 1, f.hub.calls("POST /palpites/processar-automatico"))
	assert.Equal(t, 1, f.hub.calls("GET /partidas/resultado/2001"))
}

func TestHistoryIgnoresProcessingFailure(t *testing.T) {
	f := newFixture(t, at("2025-11-22T17:00:00"))
	f.hub.set("GET /palpites/", `[{"id": 1, "partida_id": 5, "palpite": "1x1"}]`)

	h := f.predictions.History(context.Background(), session.New("tok"))
	require.Len(t, h.Entries, 1)
	assert.Equal(t, "pending", h.Entries[0].Label.Code)
	assert.Equal(t, 1, h.Entries[0].Prediction.PredictedAwayGoals)
}

func TestHistoryAnonymous(t *testing.T) {
	f := newFixture(t, at("2025-11-22T17:00:00"))

	h := f.predictions.History(context.Background(), session.Anonymous)
	assert.Empty(t, h.Entries)
	assert.Zero(t, f.hub.calls("POST"))
}
