package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/backend"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/clock"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/matchtime"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/prediction"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/store"
	log "github.com/sirupsen/logrus"
)

// resultFetchLimit bounds concurrent match result requests.
const resultFetchLimit = 8

type PredictionList struct {
	Predictions []models.Prediction `json:"predictions"`
	Stale       bool                `json:"stale"`
	Notice      string              `json:"notice,omitempty"`
}

// HistoryEntry is one row of "Meus Palpites".
type HistoryEntry struct {
	Prediction models.Prediction  `json:"prediction"`
	Match      *models.Match      `json:"match"`
	Label      models.StatusLabel `json:"label"`
}

// History is "Meus Palpites" plus the profile hit rate in percent.
type History struct {
	Entries  []HistoryEntry `json:"entries"`
	Accuracy float64        `json:"precisao"`
	Notice   string         `json:"notice,omitempty"`
}

type PredictionService struct {
	api       *backend.Client
	snapshots store.SnapshotStore
	matches   *MatchService
	clock     clock.Clock
}

func NewPredictionService(api *backend.Client, snapshots store.SnapshotStore, matches *MatchService, c clock.Clock) *PredictionService {
	return &PredictionService{api: api, snapshots: snapshots, matches: matches, clock: c}
}

// List returns the user's normalized predictions. No token means no
// predictions, not an error.
func (s *PredictionService) List(ctx context.Context, sess session.Session) PredictionList {
	if !sess.Authenticated() {
		return PredictionList{Predictions: []models.Prediction{}}
	}

	fetch := func(ctx context.Context) ([]models.Prediction, error) {
		raws, err := s.api.Predictions(ctx, sess)
		if err != nil {
			return nil, err
		}
		return prediction.NormalizeAll(raws), nil
	}

	preds, stale, err := fetchOrSnapshot(ctx, s.snapshots, predictionsKey(sess), fetch)
	if err != nil {
		log.Errorf("Error [PredictionService.List] %s", err)
		return PredictionList{Predictions: []models.Prediction{}, Notice: NoticePredictionsDown}
	}
	if preds == nil {
		preds = []models.Prediction{}
	}

	list := PredictionList{Predictions: preds, Stale: stale}
	if stale {
		list.Notice = NoticePredictionsStale
	}
	return list
}

// Submit creates or edits the user's prediction for matchID and returns
// the refreshed list. It refuses once the match's kickoff has passed.
func (s *PredictionService) Submit(ctx context.Context, sess session.Session, matchID string, home, away int) (PredictionList, error) {
	if !sess.Authenticated() {
		return PredictionList{}, ErrUnauthenticated
	}
	if home < 0 || away < 0 {
		return PredictionList{}, ErrInvalidGoals
	}

	numericID, err := strconv.ParseInt(matchID, 10, 64)
	if err != nil {
		return PredictionList{}, fmt.Errorf("%w: %q", ErrMatchNotFound, matchID)
	}

	m, err := s.matches.Find(ctx, matchID)
	if err != nil {
		return PredictionList{}, err
	}

	info := matchtime.Resolve(*m, s.clock.Now())
	if !prediction.CanSubmit(info) {
		return PredictionList{}, ErrPredictionClosed
	}

	req := models.PredictionRequest{MatchID: numericID, HomeGoals: home, AwayGoals: away}
	if err := s.api.SubmitPrediction(ctx, sess, req); err != nil {
		return PredictionList{}, fmt.Errorf("submit prediction for match %s: %w", matchID, err)
	}

	log.Infof("prediction %dx%d saved for match %s", home, away, matchID)

	return s.List(ctx, sess), nil
}

// History builds "Meus Palpites": it asks the API to score finished
// matches, then pairs each prediction with its match result, newest
// prediction first. A result that cannot be fetched is left empty.
func (s *PredictionService) History(ctx context.Context, sess session.Session) History {
	if !sess.Authenticated() {
		return History{Entries: []HistoryEntry{}}
	}

	if err := s.api.ProcessPredictions(ctx, sess); err != nil {
		log.Warnf("[PredictionService.History] automatic processing failed: %s", err)
	}

	list := s.List(ctx, sess)
	results := s.fetchResults(ctx, uniqueMatchIDs(list.Predictions))

	preds := append([]models.Prediction(nil), list.Predictions...)
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].ID > preds[j].ID
	})

	entries := make([]HistoryEntry, 0, len(preds))
	for _, p := range preds {
		m := results[p.MatchID]
		status := ""
		if m != nil {
			status = m.Status
		}
		entries = append(entries, HistoryEntry{
			Prediction: p,
			Match:      m,
			Label:      prediction.Label(p.IsCorrect, status),
		})
	}

	return History{
		Entries:  entries,
		Accuracy: prediction.Accuracy(list.Predictions).InexactFloat64(),
		Notice:   list.Notice,
	}
}

func (s *PredictionService) fetchResults(ctx context.Context, ids []string) map[string]*models.Match {
	found := make([]*models.Match, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resultFetchLimit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			m, err := s.api.MatchResult(gctx, id)
			if err != nil {
				log.Warnf("[PredictionService.History] result for match %s: %s", id, err)
				return nil
			}
			found[i] = m
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string]*models.Match, len(ids))
	for i, id := range ids {
		if found[i] != nil {
			results[id] = found[i]
		}
	}
	return results
}

func uniqueMatchIDs(preds []models.Prediction) []string {
	seen := make(map[string]bool, len(preds))
	ids := make([]string, 0, len(preds))
	for _, p := range preds {
		if p.MatchID == "" || seen[p.MatchID] {
			continue
		}
		seen[p.MatchID] = true
		ids = append(ids, p.MatchID)
	}
	return ids
}

func predictionsKey(sess session.Session) string {
	sum := sha256.Sum256([]byte(sess.Token()))
	return "predictions:" + hex.EncodeToString(sum[:8])
}
