// Package calculator implements the personal-finance formulas behind every
// calculator: lumpsum, CAGR, inflation, SIP (with optional step-up), goal and
// multiplier. All functions are pure and safe for concurrent use.
//
// Every formula follows the comma-ok idiom: it returns its result and a bool
// that is false when the inputs cannot produce a result (missing, non-finite
// or out-of-domain values). A false result must be shown as a placeholder and
// never displayed as a number.
package calculator

import (
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/mathutil"
)

// Frequency is how often a contribution or step-up happens.
type Frequency string

// Supported frequencies.
const (
	Monthly     Frequency = "monthly"
	Weekly      Frequency = "weekly"
	Quarterly   Frequency = "quarterly"
	Yearly      Frequency = "yearly"
	Fortnightly Frequency = "15-days"
)

// Frequencies lists the supported frequencies in display order.
var Frequencies = []Frequency{Monthly, Weekly, Quarterly, Yearly, Fortnightly}

var frequencyLabels = map[Frequency]string{
	Monthly:     "Monthly",
	Weekly:      "Weekly",
	Quarterly:   "Quarterly",
	Yearly:      "Yearly",
	Fortnightly: "15 Days",
}

// ParseFrequency maps a raw value onto a Frequency. The bool is false for
// unknown values.
func ParseFrequency(raw string) (Frequency, bool) {
	f := Frequency(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := frequencyLabels[f]
	return f, ok
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	_, ok := frequencyLabels[f]
	return ok
}

// PeriodsPerYear returns the number of periods per year. Unknown frequencies
// fall back to monthly.
func (f Frequency) PeriodsPerYear() float64 {
	switch f {
	case Weekly:
		return constants.WeeklyPeriods
	case Quarterly:
		return constants.QuarterlyPeriods
	case Yearly:
		return constants.YearlyPeriods
	case Fortnightly:
		return constants.FortnightlyPeriods
	default:
		return constants.MonthlyPeriods
	}
}

// Label returns the human readable name of the frequency.
func (f Frequency) Label() string {
	if label, ok := frequencyLabels[f]; ok {
		return label
	}
	return frequencyLabels[Monthly]
}

// Timing is when in a period a contribution is paid.
type Timing string

// Supported payment timings.
const (
	End       Timing = "end"
	Beginning Timing = "beginning"
)

// ParseTiming maps a raw value onto a Timing. The bool is false for unknown
// values.
func ParseTiming(raw string) (Timing, bool) {
	switch t := Timing(strings.ToLower(strings.TrimSpace(raw))); t {
	case End, Beginning:
		return t, true
	default:
		return End, false
	}
}

// Slice is one labelled segment of a two-part breakdown chart.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Breakdown is the two-slice split of a result: the base amount (invested,
// remaining) first and the growth or loss second.
type Breakdown [2]Slice

func newBreakdown(baseName string, base float64, growthName string, growth float64) Breakdown {
	return Breakdown{
		{Name: baseName, Value: mathutil.ClampNonNegative(base)},
		{Name: growthName, Value: mathutil.ClampNonNegative(growth)},
	}
}

// Base returns the first slice.
func (b Breakdown) Base() Slice {
	return b[0]
}

// Growth returns the second slice.
func (b Breakdown) Growth() Slice {
	return b[1]
}

// Total returns the sum of both slices.
func (b Breakdown) Total() float64 {
	return b[0].Value + b[1].Value
}

// Slices returns the breakdown as a slice for rendering.
func (b Breakdown) Slices() []Slice {
	return []Slice{b[0], b[1]}
}

// Breakdown slice labels.
const (
	LabelInvested        = "Invested"
	LabelProfit          = "Profit"
	LabelReturns         = "Returns"
	LabelRemainingPower  = "Remaining Purchasing Power"
	LabelLostToInflation = "Lost to Inflation"
	LabelInitial         = "Initial"
	LabelGrowth          = "Growth"
	LabelInitialAmount   = "Initial Amount"
	LabelFinalAmount     = "Final Amount"
)

// positive reports whether every value is finite and strictly positive.
func positive(vals ...float64) bool {
	for _, v := range vals {
		if !mathutil.IsFinite(v) || v <= 0 {
			return false
		}
	}
	return true
}

// nonNegative reports whether every value is finite and zero or above.
func nonNegative(vals ...float64) bool {
	for _, v := range vals {
		if !mathutil.IsFinite(v) || v < 0 {
			return false
		}
	}
	return true
}
