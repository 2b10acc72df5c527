package calculator

import (
	"github.com/iwvelando/finance-calculator/pkg/mathutil"
)

// InflationInput describes an amount held through a period of inflation.
type InflationInput struct {
	Amount        float64 `json:"amount"`
	InflationRate float64 `json:"inflationRate"` // percent
	Years         float64 `json:"years"`
}

// InflationResult describes the erosion of purchasing power.
type InflationResult struct {
	// PurchasingPower is what Amount will be worth in today's money.
	PurchasingPower float64 `json:"purchasingPower"`
	// FutureAmount is the nominal amount needed to match today's Amount.
	FutureAmount float64 `json:"futureAmount"`
	// LossPercent is only meaningful when HasLoss is true.
	LossPercent float64   `json:"lossPercent,omitempty"`
	HasLoss     bool      `json:"hasLoss"`
	Breakdown   Breakdown `json:"breakdown"`
}

func inflationValid(amount, rate, years float64) bool {
	return positive(amount, years) && nonNegative(rate)
}

// PurchasingPower returns A / (1 + r/100)^t.
func PurchasingPower(amount, rate, years float64) (float64, bool) {
	if !inflationValid(amount, rate, years) {
		return 0, false
	}
	pp := amount / mathutil.GrowthFactor(rate, years)
	if !mathutil.IsFinite(pp) {
		return 0, false
	}
	return pp, true
}

// FutureAmount returns A × (1 + r/100)^t.
func FutureAmount(amount, rate, years float64) (float64, bool) {
	if !inflationValid(amount, rate, years) {
		return 0, false
	}
	fa := amount * mathutil.GrowthFactor(rate, years)
	if !mathutil.IsFinite(fa) {
		return 0, false
	}
	return fa, true
}

// Inflation computes purchasing power, the inflation-matched future amount
// and the percentage of purchasing power lost.
func Inflation(in InflationInput) (InflationResult, bool) {
	pp, ok := PurchasingPower(in.Amount, in.InflationRate, in.Years)
	if !ok {
		return InflationResult{}, false
	}
	fa, ok := FutureAmount(in.Amount, in.InflationRate, in.Years)
	if !ok {
		return InflationResult{}, false
	}

	result := InflationResult{
		PurchasingPower: pp,
		FutureAmount:    fa,
		Breakdown:       newBreakdown(LabelRemainingPower, pp, LabelLostToInflation, in.Amount-pp),
	}
	if pp > 0 {
		if loss := (in.Amount - pp) / in.Amount * 100; loss > 0 {
			result.LossPercent = loss
			result.HasLoss = true
		}
	}
	return result, true
}
