// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-calculator/pkg/constants"
	"gonum.org/v1/gonum/floats/scalar"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return scalar.Round(val, constants.DecimalPrecision)
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// AllFinite reports whether every value is finite.
func AllFinite(vals ...float64) bool {
	for _, v := range vals {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// WithinTolerance checks if two values are within a specified absolute
// tolerance or within a relative tolerance of each other. The relative check
// keeps comparisons sane for results in the crores.
func WithinTolerance(val1, val2, tolerance float64) bool {
	return scalar.EqualWithinAbsOrRel(val1, val2, tolerance, constants.RelativeTolerance)
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// ClampNonNegative returns val, or zero when val is negative or NaN.
func ClampNonNegative(val float64) float64 {
	if !(val > 0) {
		return 0
	}
	return val
}

// PercentToDecimal converts a percentage such as 12.5 into 0.125.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// GrowthFactor returns (1 + percent/100)^periods.
func GrowthFactor(percent, periods float64) float64 {
	return math.Pow(1+PercentToDecimal(percent), periods)
}
