package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
)

// UpcomingMatches lists the next fixtures. Order is whatever the API
// returns.
func (c *Client) UpcomingMatches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := c.getJSON(ctx, "/partidas/proximas", nil, session.Anonymous, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// MatchResult fetches one match with its score. A null body yields nil.
func (c *Client) MatchResult(ctx context.Context, id string) (*models.Match, error) {
	data, err := c.do(ctx, http.MethodGet, "/partidas/resultado/"+url.PathEscape(id), nil, session.Anonymous, nil)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var m models.Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode match %s: %w", id, err)
	}
	if m.ID == "" {
		m.ID = models.FlexID(id)
	}
	return &m, nil
}

// Standings fetches the league table sorted by position.
func (c *Client) Standings(ctx context.Context, leagueID, season int) ([]models.StandingRow, error) {
	params := url.Values{}
	params.Set("league_id", strconv.Itoa(leagueID))
	params.Set("season", strconv.Itoa(season))

	var rows []models.StandingRow
	if err := c.getJSON(ctx, "/partidas/tabela", params, session.Anonymous, &rows); err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position < rows[j].Position
	})
	return rows, nil
}
