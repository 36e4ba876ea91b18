package prediction

import (
	"strings"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
)

// FindForMatch returns the active prediction for matchID. Ids compare as
// strings. The backend is expected to keep one prediction per match; if it
// does not, the first one in input order wins.
func FindForMatch(preds []models.Prediction, matchID string) (models.Prediction, bool) {
	matchID = strings.TrimSpace(matchID)
	for _, p := range preds {
		if p.MatchID == matchID {
			return p, true
		}
	}
	return models.Prediction{}, false
}

// CanSubmit reports whether a prediction may still be created or edited:
// only while kickoff is in the future.
func CanSubmit(info models.MatchTimeInfo) bool {
	return info.IsFuture
}
