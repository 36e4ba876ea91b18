package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/service"
)

// hubClient talks to the hub service's /v1 API.
type hubClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type envelope struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newHubClient(baseURL, token string) *hubClient {
	return &hubClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *hubClient) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rsp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hub service unreachable: %w", err)
	}
	defer rsp.Body.Close()

	var env envelope
	if err := json.NewDecoder(rsp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected response (%d): %w", rsp.StatusCode, err)
	}
	if rsp.StatusCode >= 400 {
		if env.Error != "" {
			return fmt.Errorf("%s", env.Error)
		}
		return fmt.Errorf("%s", env.Message)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (c *hubClient) Dashboard(ctx context.Context) (service.Dashboard, error) {
	var d service.Dashboard
	err := c.call(ctx, http.MethodGet, "/v1/dashboard", nil, &d)
	return d, err
}

func (c *hubClient) History(ctx context.Context) (service.History, error) {
	var h service.History
	err := c.call(ctx, http.MethodGet, "/v1/predictions", nil, &h)
	return h, err
}

func (c *hubClient) Submit(ctx context.Context, matchID string, home, away int) error {
	in := map[string]any{"match_id": matchID, "home_goals": home, "away_goals": away}
	return c.call(ctx, http.MethodPost, "/v1/predictions", in, nil)
}

func (c *hubClient) Standings(ctx context.Context) (service.Standings, error) {
	var s service.Standings
	err := c.call(ctx, http.MethodGet, "/v1/standings", nil, &s)
	return s, err
}

func (c *hubClient) Ranking(ctx context.Context, period string) (service.Ranking, error) {
	var r service.Ranking
	err := c.call(ctx, http.MethodGet, "/v1/ranking/"+period, nil, &r)
	return r, err
}
