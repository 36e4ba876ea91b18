package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
)

// Ranking periods accepted by the API.
var Periods = []string{"semanal", "mensal", "geral"}

func ValidPeriod(period string) bool {
	for _, p := range Periods {
		if p == period {
			return true
		}
	}
	return false
}

// Ranking fetches a leaderboard. The API answers either {"ranking": [...]}
// or a bare list.
func (c *Client) Ranking(ctx context.Context, s session.Session, period string) ([]models.RankingRow, error) {
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("invalid ranking period %q", period)
	}

	data, err := c.do(ctx, http.MethodGet, "/ranking/"+period, nil, s, nil)
	if err != nil {
		return nil, err
	}
	return DecodeRanking(data)
}

// DecodeRanking normalizes a leaderboard body into rows.
func DecodeRanking(data []byte) ([]models.RankingRow, error) {
	var items []map[string]any

	var wrapped struct {
		Ranking []map[string]any `json:"ranking"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Ranking != nil {
		items = wrapped.Ranking
	} else if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode ranking: %w", err)
	}

	rows := make([]models.RankingRow, 0, len(items))
	for i, item := range items {
		rows = append(rows, models.RankingRow{
			User:        rankingUser(item, i),
			Points:      int(toFloat(item["pontos"])),
			Accuracy:    toFloat(item["precisao"]),
			Predictions: int(toFloat(item["palpites"])),
			IsYou:       toBool(item["is_you"]),
		})
	}
	return rows, nil
}

func rankingUser(item map[string]any, i int) string {
	for _, key := range []string{"usuario", "nome"} {
		if s, ok := item[key].(string); ok && s != "" {
			return s
		}
	}
	return "Usuário " + strconv.Itoa(i+1)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err == nil {
			return f
		}
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return b != ""
	}
	return false
}
