package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/backend"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/clock"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/store"
)

// fakeHub is an in-process stand-in for the hub API. Bodies are keyed by
// "METHOD path"; a missing key answers 500.
type fakeHub struct {
	mu       sync.Mutex
	bodies   map[string]string
	requests []string
	posted   map[string][]byte
}

func newFakeHub() *fakeHub {
	return &fakeHub{bodies: map[string]string{}, posted: map[string][]byte{}}
}

func (f *fakeHub) set(key, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[key] = body
}

func (f *fakeHub) unset(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bodies, key)
}

func (f *fakeHub) calls(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeHub) postedBody(key string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posted[key]
}

func (f *fakeHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	data, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, key)
	if r.Method == http.MethodPost {
		f.posted[key] = data
	}
	body, ok := f.bodies[key]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "boom"})
		return
	}
	io.WriteString(w, body)
}

type fixture struct {
	hub         *fakeHub
	clock       *clock.Manual
	snapshots   *store.MemorySnapshotStore
	matches     *MatchService
	predictions *PredictionService
	metrics     *MetricsService
	league      *LeagueService
	dashboard   *DashboardService
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	hub := newFakeHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	api := backend.NewClient(backend.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	c := clock.NewManual(now)
	snaps := store.NewMemorySnapshotStore(0)

	matches := NewMatchService(api, snaps, c)
	predictions := NewPredictionService(api, snaps, matches, c)
	metrics := NewMetricsService(api)

	return &fixture{
		hub:         hub,
		clock:       c,
		snapshots:   snaps,
		matches:     matches,
		predictions: predictions,
		metrics:     metrics,
		league:      NewLeagueService(api, snaps, 4351, 2025),
		dashboard:   NewDashboardService(matches, predictions, metrics, c),
	}
}

func at(clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", clock, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

const upcomingBody = `[
	{"id_partida": 2002, "time_casa": {"nome": "Bahia"}, "time_fora": {"nome": "Grêmio"}, "data": "2025-11-22", "horario": "21:00:00"},
	{"id_partida": 2001, "time_casa": {"nome": "Flamengo"}, "time_fora": {"nome": "Palmeiras"}, "data": "2025-11-22", "horario": "16:00:00"},
	{"id_partida": 2000, "time_casa": {"nome": "Cruzeiro"}, "time_fora": {"nome": "Botafogo"}, "data": "2025-11-22", "horario": "13:00:00", "status": "Live"}
]`
