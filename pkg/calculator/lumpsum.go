package calculator

import (
	"github.com/iwvelando/finance-calculator/pkg/mathutil"
)

// LumpsumInput describes a one-time investment left to compound.
type LumpsumInput struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annualRate"` // percent
	Years      float64 `json:"years"`
}

// LumpsumResult is the future value of a lumpsum investment.
type LumpsumResult struct {
	FutureValue float64   `json:"futureValue"`
	Invested    float64   `json:"invested"`
	Profit      float64   `json:"profit"`
	Breakdown   Breakdown `json:"breakdown"`
}

// Lumpsum computes FV = P × (1 + r/100)^t.
func Lumpsum(in LumpsumInput) (LumpsumResult, bool) {
	if !positive(in.Principal, in.Years) || !nonNegative(in.AnnualRate) {
		return LumpsumResult{}, false
	}

	fv := in.Principal * mathutil.GrowthFactor(in.AnnualRate, in.Years)
	if !mathutil.IsFinite(fv) {
		return LumpsumResult{}, false
	}

	profit := mathutil.ClampNonNegative(fv - in.Principal)
	return LumpsumResult{
		FutureValue: fv,
		Invested:    in.Principal,
		Profit:      profit,
		Breakdown:   newBreakdown(LabelInvested, in.Principal, LabelProfit, profit),
	}, true
}
