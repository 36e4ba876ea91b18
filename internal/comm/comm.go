package comm

import (
	"encoding/json"
	"time"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
)

// Message types carried in WSMessage.Type.
const (
	TypeWatchMatches   = "watch-matches"
	TypeUnwatchMatches = "unwatch-matches"
	TypeMatchTimeTick  = "match-time-tick"
	TypeError          = "error"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "watch-matches", "match-time-tick"
	Data     json.RawMessage `json:"data,omitempty"`
	SocketId string          `json:"socketid"`
	Instance string          `json:"instance,omitempty"` // socket service instance holding the socket
}

// MatchTick is the timing of one match at a tick.
type MatchTick struct {
	MatchID    string               `json:"match_id"`
	Info       models.MatchTimeInfo `json:"info"`
	CanPredict bool                 `json:"can_predict"`
}

type TickPayload struct {
	At      time.Time   `json:"at"`
	Matches []MatchTick `json:"matches"`
	Notice  string      `json:"notice,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
