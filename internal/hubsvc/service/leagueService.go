package service

import (
	"context"
	"fmt"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/backend"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/store"
	log "github.com/sirupsen/logrus"
)

type Standings struct {
	Rows   []models.StandingRow `json:"rows"`
	Stale  bool                 `json:"stale"`
	Notice string               `json:"notice,omitempty"`
}

type Ranking struct {
	Period string              `json:"period"`
	Rows   []models.RankingRow `json:"rows"`
	Notice string              `json:"notice,omitempty"`
}

type LeagueService struct {
	api       *backend.Client
	snapshots store.SnapshotStore
	leagueID  int
	season    int
}

func NewLeagueService(api *backend.Client, snapshots store.SnapshotStore, leagueID, season int) *LeagueService {
	return &LeagueService{api: api, snapshots: snapshots, leagueID: leagueID, season: season}
}

// Zone tags a table position: title/continental places and relegation.
func Zone(position int) string {
	switch {
	case position <= 0:
		return ""
	case position <= 4:
		return "g4"
	case position <= 6:
		return "pre-libertadores"
	case position >= 17:
		return "rebaixamento"
	default:
		return ""
	}
}

func (s *LeagueService) Standings(ctx context.Context) Standings {
	key := fmt.Sprintf("standings:%d:%d", s.leagueID, s.season)
	fetch := func(ctx context.Context) ([]models.StandingRow, error) {
		return s.api.Standings(ctx, s.leagueID, s.season)
	}

	rows, stale, err := fetchOrSnapshot(ctx, s.snapshots, key, fetch)
	if err != nil {
		log.Errorf("Error [LeagueService.Standings] %s", err)
		return Standings{Rows: []models.StandingRow{}, Notice: NoticeStandingsDown}
	}

	out := Standings{Rows: make([]models.StandingRow, 0, len(rows)), Stale: stale}
	for _, row := range rows {
		row.Zone = Zone(row.Position)
		out.Rows = append(out.Rows, row)
	}
	if stale {
		out.Notice = NoticeStandingsStale
	}
	return out
}

// Ranking fetches one leaderboard period. Only an unknown period is an
// error; an API failure comes back as a notice.
func (s *LeagueService) Ranking(ctx context.Context, sess session.Session, period string) (Ranking, error) {
	if !backend.ValidPeriod(period) {
		return Ranking{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	rows, err := s.api.Ranking(ctx, sess, period)
	if err != nil {
		log.Errorf("Error [LeagueService.Ranking] %s", err)
		return Ranking{Period: period, Rows: []models.RankingRow{}, Notice: NoticeRankingDown}, nil
	}
	return Ranking{Period: period, Rows: rows}, nil
}
