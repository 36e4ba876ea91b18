package prediction

import (
	"regexp"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
)

const (
	LabelCorrect   = "correct"
	LabelIncorrect = "incorrect"
	LabelFinished  = "finished"
	LabelLive      = "live"
	LabelPending   = "pending"
)

var (
	finishedPattern = regexp.MustCompile(`(?i)match finished|full time|finished`)
	livePattern     = regexp.MustCompile(`(?i)live|in play|half|1st|2nd|ao vivo`)
)

// Label derives the display verdict of a prediction. A correctness verdict
// always beats the raw status text, which can lag behind scoring.
func Label(isCorrect *bool, status string) models.StatusLabel {
	switch {
	case isCorrect != nil && *isCorrect:
		return models.StatusLabel{Code: LabelCorrect, Text: "Você acertou!"}
	case isCorrect != nil:
		return models.StatusLabel{Code: LabelIncorrect, Text: "Não foi dessa vez!"}
	case status != "" && finishedPattern.MatchString(status):
		return models.StatusLabel{Code: LabelFinished, Text: "Finalizado"}
	case status != "" && livePattern.MatchString(status):
		return models.StatusLabel{Code: LabelLive, Text: "Ao vivo"}
	default:
		return models.StatusLabel{Code: LabelPending, Text: "Aguardando"}
	}
}
