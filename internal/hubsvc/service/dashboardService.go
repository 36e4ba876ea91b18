package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/clock"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/matchtime"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/prediction"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
)

// Card is one upcoming match on the dashboard.
type Card struct {
	Match      models.Match         `json:"match"`
	Info       models.MatchTimeInfo `json:"info"`
	Prediction *models.Prediction   `json:"prediction"`
	CanPredict bool                 `json:"can_predict"`
}

type Dashboard struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Cards       []Card             `json:"cards"`
	Metrics     models.UserMetrics `json:"metrics"`
	Notices     []string           `json:"notices"`
}

type DashboardService struct {
	matches     *MatchService
	predictions *PredictionService
	metrics     *MetricsService
	clock       clock.Clock
}

func NewDashboardService(matches *MatchService, predictions *PredictionService, metrics *MetricsService, c clock.Clock) *DashboardService {
	return &DashboardService{matches: matches, predictions: predictions, metrics: metrics, clock: c}
}

// Dashboard loads matches, predictions and metrics side by side and joins
// them into cards.
func (s *DashboardService) Dashboard(ctx context.Context, sess session.Session) Dashboard {
	var (
		matches MatchList
		preds   PredictionList
		metrics models.UserMetrics
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		matches = s.matches.Upcoming(gctx)
		return nil
	})
	g.Go(func() error {
		preds = s.predictions.List(gctx, sess)
		return nil
	})
	g.Go(func() error {
		metrics = s.metrics.UserMetrics(gctx, sess)
		return nil
	})
	_ = g.Wait()

	now := s.clock.Now()
	d := Dashboard{
		GeneratedAt: now,
		Cards:       BuildCards(matches.Matches, preds.Predictions, now),
		Metrics:     metrics,
		Notices:     []string{},
	}
	for _, notice := range []string{matches.Notice, preds.Notice} {
		if notice != "" {
			d.Notices = append(d.Notices, notice)
		}
	}
	return d
}

// BuildCards resolves every match at now and attaches the user's current
// prediction. Prediction is only possible before kickoff.
func BuildCards(matches []models.Match, preds []models.Prediction, now time.Time) []Card {
	cards := make([]Card, 0, len(matches))
	for _, m := range matches {
		info := matchtime.Resolve(m, now)
		card := Card{
			Match:      m,
			Info:       info,
			CanPredict: prediction.CanSubmit(info),
		}
		if p, ok := prediction.FindForMatch(preds, m.ID.String()); ok {
			card.Prediction = &p
		}
		cards = append(cards, card)
	}
	return cards
}
