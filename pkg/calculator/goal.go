package calculator

import (
	"math"

	"github.com/iwvelando/finance-calculator/pkg/mathutil"
)

// GoalInput describes a savings target to be reached through a SIP.
type GoalInput struct {
	Goal          float64   `json:"goal"`
	Years         float64   `json:"years"`
	AnnualRate    float64   `json:"annualRate"`    // percent
	InflationRate float64   `json:"inflationRate"` // percent
	Frequency     Frequency `json:"frequency"`
}

// GoalResult is the periodic contribution needed to reach a goal.
type GoalResult struct {
	RequiredContribution  float64   `json:"requiredContribution"`
	InflationAdjustedGoal float64   `json:"inflationAdjustedGoal"`
	TotalInvested         float64   `json:"totalInvested"`
	Returns               float64   `json:"returns"`
	Breakdown             Breakdown `json:"breakdown"`
}

// Goal inflates the goal to the horizon and solves the end-of-period annuity
// formula for the contribution.
func Goal(in GoalInput) (GoalResult, bool) {
	if !positive(in.Goal, in.Years) || !nonNegative(in.AnnualRate, in.InflationRate) {
		return GoalResult{}, false
	}

	adjusted := in.Goal * mathutil.GrowthFactor(in.InflationRate, in.Years)

	n := in.Frequency.PeriodsPerYear()
	i := mathutil.PercentToDecimal(in.AnnualRate) / n
	periods := in.Years * n

	var contribution float64
	if i == 0 {
		contribution = adjusted / periods
	} else {
		contribution = adjusted * i / (math.Pow(1+i, periods) - 1)
	}
	if !mathutil.IsFinite(contribution) || contribution <= 0 || !mathutil.IsFinite(adjusted) {
		return GoalResult{}, false
	}

	invested := contribution * n * in.Years
	returns := mathutil.ClampNonNegative(adjusted - invested)
	return GoalResult{
		RequiredContribution:  contribution,
		InflationAdjustedGoal: adjusted,
		TotalInvested:         invested,
		Returns:               returns,
		Breakdown:             newBreakdown(LabelInvested, invested, LabelReturns, returns),
	}, true
}
