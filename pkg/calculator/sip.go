package calculator

import (
	"math"

	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/mathutil"
)

// StepUp raises the periodic contribution by Percentage every time a period
// of Frequency elapses. An empty Frequency means yearly.
type StepUp struct {
	Enabled    bool      `json:"enabled"`
	Frequency  Frequency `json:"frequency,omitempty"`
	Percentage float64   `json:"percentage,omitempty"`
}

// SIPInput describes a systematic investment plan.
type SIPInput struct {
	Amount     float64   `json:"amount"`
	Frequency  Frequency `json:"frequency"`
	Years      float64   `json:"years"`
	AnnualRate float64   `json:"annualRate"` // percent
	Timing     Timing    `json:"timing"`
	StepUp     StepUp    `json:"stepUp"`
}

// SIPResult is the future value of a SIP.
type SIPResult struct {
	FutureValue  float64 `json:"futureValue"`
	Invested     float64 `json:"invested"`
	Profit       float64 `json:"profit"`
	Periods      float64 `json:"periods"`
	PeriodicRate float64 `json:"periodicRate"`
	// FinalContribution is the contribution paid in the last period; it only
	// differs from the input amount when a step-up applied.
	FinalContribution float64   `json:"finalContribution"`
	Breakdown         Breakdown `json:"breakdown"`
}

// StepUpInterval returns how many contribution periods pass between two
// step-ups, round(n/m). A result below one means the step-up never fires:
// the step-up cadence is finer than the contribution cadence.
func StepUpInterval(contribution, stepUp Frequency) int {
	return int(math.Round(contribution.PeriodsPerYear() / stepUp.PeriodsPerYear()))
}

// SIP computes the future value of periodic contributions. Without a step-up
// the annuity closed form is used; with one every period is compounded
// individually. Plans longer than constants.MaxPeriods have no result.
func SIP(in SIPInput) (SIPResult, bool) {
	if !positive(in.Amount, in.Years) || !nonNegative(in.AnnualRate) {
		return SIPResult{}, false
	}
	if in.StepUp.Enabled && !nonNegative(in.StepUp.Percentage) {
		return SIPResult{}, false
	}

	n := in.Frequency.PeriodsPerYear()
	i := mathutil.PercentToDecimal(in.AnnualRate) / n
	periods := in.Years * n
	if periods > constants.MaxPeriods {
		return SIPResult{}, false
	}
	beginning := in.Timing == Beginning

	var fv, invested, last float64
	if in.StepUp.Enabled && in.StepUp.Percentage != 0 {
		stepUpFrequency := in.StepUp.Frequency
		if stepUpFrequency == "" {
			stepUpFrequency = Yearly
		}
		factor := 1 + mathutil.PercentToDecimal(in.StepUp.Percentage)
		interval := StepUpInterval(in.Frequency, stepUpFrequency)
		fv, invested, last = accumulateStepUp(in.Amount, i, periods, interval, factor, beginning)
	} else {
		fv = sipClosedForm(in.Amount, i, periods, beginning)
		invested = in.Amount * periods
		last = in.Amount
	}

	if !mathutil.AllFinite(fv, invested, last) {
		return SIPResult{}, false
	}

	profit := mathutil.ClampNonNegative(fv - invested)
	return SIPResult{
		FutureValue:       fv,
		Invested:          invested,
		Profit:            profit,
		Periods:           periods,
		PeriodicRate:      i,
		FinalContribution: last,
		Breakdown:         newBreakdown(LabelInvested, invested, LabelProfit, profit),
	}, true
}

func sipClosedForm(amount, i, periods float64, beginning bool) float64 {
	if i == 0 {
		return amount * periods
	}
	fv := amount * (math.Pow(1+i, periods) - 1) / i
	if beginning {
		fv *= 1 + i
	}
	return fv
}

// accumulateStepUp walks every period once, compounding that period's
// contribution to the horizon and summing raw contributions alongside. The
// step-up is applied after the boundary period has been accumulated and
// never after the last period. It stops early once a value overflows.
func accumulateStepUp(amount, i, periods float64, interval int, factor float64, beginning bool) (fv, total, contribution float64) {
	contribution = amount
	shift := 0.0
	if beginning {
		shift = 1
	}

	for k := 1; float64(k) <= periods; k++ {
		if i == 0 {
			fv += contribution
		} else {
			fv += contribution * math.Pow(1+i, periods-float64(k)+shift)
		}
		total += contribution
		if !mathutil.AllFinite(fv, contribution) {
			break
		}

		if interval >= 1 && k%interval == 0 && float64(k) < periods {
			contribution *= factor
		}
	}
	return fv, total, contribution
}
