package calculator

import (
	"math"

	"github.com/iwvelando/finance-calculator/pkg/mathutil"
)

// CAGRInput holds the start and end values of an investment.
type CAGRInput struct {
	Initial float64 `json:"initial"`
	Final   float64 `json:"final"`
	Years   float64 `json:"years"`
}

// CAGRResult is the compound annual growth rate in percent. The rate keeps
// its sign; the breakdown never goes negative.
type CAGRResult struct {
	RatePercent float64   `json:"ratePercent"`
	Breakdown   Breakdown `json:"breakdown"`
}

// CAGR computes ((F/I)^(1/t) − 1) × 100.
func CAGR(in CAGRInput) (CAGRResult, bool) {
	if !positive(in.Initial, in.Final, in.Years) {
		return CAGRResult{}, false
	}

	rate := (math.Pow(in.Final/in.Initial, 1/in.Years) - 1) * 100
	if !mathutil.IsFinite(rate) {
		return CAGRResult{}, false
	}

	invested := mathutil.Min(in.Initial, in.Final)
	return CAGRResult{
		RatePercent: rate,
		Breakdown:   newBreakdown(LabelInvested, invested, LabelProfit, in.Final-invested),
	}, true
}
