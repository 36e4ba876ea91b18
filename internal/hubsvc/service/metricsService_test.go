package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
)

func TestUserMetricsPartsFailIndependently(t *testing.T) {
	f := newFixture(t, at("2025-11-22T15:50:00"))
	f.hub.set("GET /colecao/minhas-figurinhas", `[{}, {}, {}]`)

	m := f.metrics.UserMetrics(context.Background(), session.New("tok"))
	assert.Equal(t, models.UserMetrics{Stickers: 3}, m)
}

func TestUserMetricsWithoutOwnRow(t *testing.T) {
	f := newFixture(t, at("2025-11-22T15:50:00"))
	f.hub.set("GET /ranking/geral", `[{"usuario": "bia", "pontos": 50}]`)
	f.hub.set("GET /colecao/minhas-figurinhas", `[]`)

	m := f.metrics.UserMetrics(context.Background(), session.New("tok"))
	assert.Equal(t, models.UserMetrics{}, m)
}

func TestUserMetricsAnonymous(t *testing.T) {
	f := newFixture(t, at("2025-11-22T15:50:00"))

	m := f.metrics.UserMetrics(context.Background(), session.Anonymous)
	assert.Equal(t, models.UserMetrics{}, m)
	assert.Zero(t, f.hub.calls("GET"))
}
