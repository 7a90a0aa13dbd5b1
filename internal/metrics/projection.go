package metrics

import (
	"fmt"
	"math"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// Project applies the cumulative ROI at the end of the full history to a
// hypothetical investment of amount, answering what that investment would
// be worth had it followed the account from the first entry.
func Project(series model.Series, amount float64) (model.Projection, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.Projection{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, amount)
	}
	if amount < 0 {
		return model.Projection{}, apperrors.ErrNegativeAmount
	}
	last, ok := series.Last()
	if !ok {
		return model.Projection{}, apperrors.ErrEmptyInput
	}

	current := amount * (1 + last.ROIPct/100)
	return model.Projection{
		Amount:       amount,
		ROIPct:       last.ROIPct,
		CurrentValue: current,
		Profit:       current - amount,
		PortfolioPct: 100 + last.ROIPct,
		AsOf:         last.Date,
	}, nil
}
