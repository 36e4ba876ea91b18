package service

import (
	"context"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/backend"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/clock"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/matchtime"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/store"
	log "github.com/sirupsen/logrus"
)

const upcomingKey = "matches:upcoming"

type MatchList struct {
	Matches []models.Match `json:"matches"`
	Stale   bool           `json:"stale"`
	Notice  string         `json:"notice,omitempty"`
}

type MatchDetail struct {
	Match models.Match         `json:"match"`
	Info  models.MatchTimeInfo `json:"info"`
	Phase models.MatchPhase    `json:"phase"`
}

type MatchService struct {
	api       *backend.Client
	snapshots store.SnapshotStore
	clock     clock.Clock
}

func NewMatchService(api *backend.Client, snapshots store.SnapshotStore, c clock.Clock) *MatchService {
	return &MatchService{api: api, snapshots: snapshots, clock: c}
}

// Upcoming lists the next matches by kickoff. A failing API degrades to
// the last good list, or to an empty one, with a notice.
func (s *MatchService) Upcoming(ctx context.Context) MatchList {
	matches, stale, err := fetchOrSnapshot(ctx, s.snapshots, upcomingKey, s.api.UpcomingMatches)
	if err != nil {
		log.Errorf("Error [MatchService.Upcoming] %s", err)
		return MatchList{Matches: []models.Match{}, Notice: NoticeMatchesDown}
	}

	if matches == nil {
		matches = []models.Match{}
	}
	matchtime.SortByKickoff(matches, s.clock.Now().Location())

	list := MatchList{Matches: matches, Stale: stale}
	if stale {
		log.Warnf("[MatchService.Upcoming] serving snapshot")
		list.Notice = NoticeMatchesStale
	}
	return list
}

// Find looks a match up on the upcoming board first, then asks the API.
func (s *MatchService) Find(ctx context.Context, id string) (*models.Match, error) {
	for _, m := range s.Upcoming(ctx).Matches {
		if m.ID.String() == id {
			return &m, nil
		}
	}

	m, err := s.api.MatchResult(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// Detail is the match page: the match, its timing and its badge.
func (s *MatchService) Detail(ctx context.Context, id string) (*MatchDetail, error) {
	m, err := s.api.MatchResult(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}

	now := s.clock.Now()
	return &MatchDetail{
		Match: *m,
		Info:  matchtime.Resolve(*m, now),
		Phase: matchtime.DetailPhase(*m, now),
	}, nil
}
