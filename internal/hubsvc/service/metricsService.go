package service

import (
	"context"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/backend"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
	log "github.com/sirupsen/logrus"
)

type MetricsService struct {
	api *backend.Client
}

func NewMetricsService(api *backend.Client) *MetricsService {
	return &MetricsService{api: api}
}

// UserMetrics gathers the dashboard header: the user's own row of the
// overall ranking and the number of stickers collected. Each part falls
// back to zero on its own.
func (s *MetricsService) UserMetrics(ctx context.Context, sess session.Session) models.UserMetrics {
	var metrics models.UserMetrics
	if !sess.Authenticated() {
		return metrics
	}

	rows, err := s.api.Ranking(ctx, sess, "geral")
	if err != nil {
		log.Warnf("[MetricsService.UserMetrics] ranking unavailable: %s", err)
	}
	for _, row := range rows {
		if row.IsYou {
			metrics.Predictions = row.Predictions
			metrics.Accuracy = row.Accuracy
			metrics.Points = row.Points
			break
		}
	}

	stickers, err := s.api.StickerCount(ctx, sess)
	if err != nil {
		log.Warnf("[MetricsService.UserMetrics] stickers unavailable: %s", err)
	}
	metrics.Stickers = stickers

	return metrics
}
