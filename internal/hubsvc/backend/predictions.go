package backend

import (
	"context"
	"net/http"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
)

// Predictions returns the user's prediction records as sent by the API.
// An anonymous session yields no records and no error.
func (c *Client) Predictions(ctx context.Context, s session.Session) ([]models.RawPrediction, error) {
	if !s.Authenticated() {
		return nil, nil
	}

	var raws []models.RawPrediction
	if err := c.getJSON(ctx, "/palpites/", nil, s, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// SubmitPrediction creates or updates the user's prediction for a match.
func (c *Client) SubmitPrediction(ctx context.Context, s session.Session, req models.PredictionRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/palpites/", nil, s, req)
	return err
}

// ProcessPredictions asks the API to score finished matches for the user.
func (c *Client) ProcessPredictions(ctx context.Context, s session.Session) error {
	if !s.Authenticated() {
		return nil
	}
	_, err := c.do(ctx, http.MethodPost, "/palpites/processar-automatico", nil, s, struct{}{})
	return err
}
