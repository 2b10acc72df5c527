package calculator

import (
	"math"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/mathutil"
)

// MultiplierMode selects what the multiplier calculator solves for.
type MultiplierMode string

const (
	// ModeTime solves for the years needed to reach a multiple.
	ModeTime MultiplierMode = "time"
	// ModeMultiplier solves for the multiple between two amounts.
	ModeMultiplier MultiplierMode = "multiplier"
)

// ParseMultiplierMode maps a raw value onto a mode. The bool is false for
// unknown values, which fall back to ModeTime.
func ParseMultiplierMode(raw string) (MultiplierMode, bool) {
	switch m := MultiplierMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeTime, ModeMultiplier:
		return m, true
	default:
		return ModeTime, false
	}
}

// MultiplierInput carries the fields of both modes; only the ones relevant to
// Mode are read.
type MultiplierInput struct {
	Mode        MultiplierMode `json:"mode"`
	Principal   float64        `json:"principal"`
	AnnualRate  float64        `json:"annualRate,omitempty"` // percent, time mode
	Multiplier  float64        `json:"multiplier,omitempty"` // time mode
	FinalAmount float64        `json:"finalAmount,omitempty"`
}

// MultiplierResult holds the output of the selected mode. The field owned by
// the other mode is always zero.
type MultiplierResult struct {
	Mode        MultiplierMode `json:"mode"`
	Years       float64        `json:"years,omitempty"`
	Multiplier  float64        `json:"multiplier,omitempty"`
	FutureValue float64        `json:"futureValue"`
	Growth      float64        `json:"growth"`
	Breakdown   Breakdown      `json:"breakdown"`
}

// TimeToMultiply returns ln(m) / ln(1 + r/100), the years for principal to
// grow m-fold. The principal does not change the answer but must be valid.
func TimeToMultiply(principal, rate, multiple float64) (float64, bool) {
	if !positive(principal, rate, multiple) || multiple <= 1 {
		return 0, false
	}
	years := math.Log(multiple) / math.Log1p(mathutil.PercentToDecimal(rate))
	if !mathutil.IsFinite(years) || years <= 0 {
		return 0, false
	}
	return years, true
}

// MultiplierFromAmounts returns final / principal for a growing investment.
func MultiplierFromAmounts(principal, final float64) (float64, bool) {
	if !positive(principal, final) || final <= principal {
		return 0, false
	}
	m := final / principal
	if !mathutil.IsFinite(m) {
		return 0, false
	}
	return m, true
}

// Multiplier dispatches on in.Mode.
func Multiplier(in MultiplierInput) (MultiplierResult, bool) {
	switch in.Mode {
	case ModeMultiplier:
		m, ok := MultiplierFromAmounts(in.Principal, in.FinalAmount)
		if !ok {
			return MultiplierResult{}, false
		}
		growth := in.FinalAmount - in.Principal
		return MultiplierResult{
			Mode:        ModeMultiplier,
			Multiplier:  m,
			FutureValue: in.FinalAmount,
			Growth:      growth,
			Breakdown:   newBreakdown(LabelInitialAmount, in.Principal, LabelFinalAmount, growth),
		}, true
	default:
		years, ok := TimeToMultiply(in.Principal, in.AnnualRate, in.Multiplier)
		if !ok {
			return MultiplierResult{}, false
		}
		fv := in.Principal * in.Multiplier
		growth := mathutil.ClampNonNegative(fv - in.Principal)
		return MultiplierResult{
			Mode:        ModeTime,
			Years:       years,
			FutureValue: fv,
			Growth:      growth,
			Breakdown:   newBreakdown(LabelInitial, in.Principal, LabelGrowth, growth),
		}, true
	}
}
