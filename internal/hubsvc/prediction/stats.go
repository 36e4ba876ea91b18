package prediction

import (
	"github.com/shopspring/decimal"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
)

// Accuracy is the share of correct predictions as a percentage rounded to
// one decimal place. Pending predictions count in the total.
func Accuracy(preds []models.Prediction) decimal.Decimal {
	if len(preds) == 0 {
		return decimal.Zero
	}

	hits := 0
	for _, p := range preds {
		if p.IsCorrect != nil && *p.IsCorrect {
			hits++
		}
	}

	return decimal.NewFromInt(int64(hits)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(len(preds)))).
		Round(1)
}
