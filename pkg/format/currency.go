// Package format renders calculator values for display: rupee amounts with
// Indian digit grouping, percentages, years and multiples.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Placeholder is shown in place of a value that could not be computed.
const Placeholder = "-"

// Unit says how a headline value is rendered.
type Unit string

// Supported units.
const (
	UnitCurrency Unit = "currency"
	UnitPercent  Unit = "percent"
	UnitYears    Unit = "years"
	UnitMultiple Unit = "multiple"
)

// Value renders v according to unit.
func Value(v float64, unit Unit) string {
	switch unit {
	case UnitPercent:
		return Percent(v)
	case UnitYears:
		return Years(v)
	case UnitMultiple:
		return Multiple(v)
	default:
		return Currency(v)
	}
}

// Currency returns a rupee amount with Indian grouping and at most two
// decimals, e.g. "₹1,23,456.7". Trailing fractional zeros are dropped.
func Currency(amount float64) string {
	if !finite(amount) {
		return Placeholder
	}
	d := decimal.NewFromFloat(amount).Round(constants.DecimalPrecision)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + constants.CurrencySymbol + groupIndian(d.String())
}

// NumericCurrency returns the amount with Indian grouping and exactly two
// decimals and no symbol, e.g. "-1,23,456.70".
func NumericCurrency(amount float64) string {
	if !finite(amount) {
		return Placeholder
	}
	d := decimal.NewFromFloat(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + groupIndian(d.StringFixed(constants.DecimalPrecision))
}

// Percent returns v with two decimals and a percent sign.
func Percent(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return fmt.Sprintf("%.2f%%", v)
}

// Years returns a duration such as "7.27 years".
func Years(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return fmt.Sprintf("%.2f years", v)
}

// Multiple returns a multiple such as "3.50x".
func Multiple(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return fmt.Sprintf("%.2fx", v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// groupIndian inserts separators in the lakh/crore pattern: the last three
// integer digits form a group and every two digits before that another.
func groupIndian(value string) string {
	intPart, fracPart, hasFrac := strings.Cut(value, ".")
	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var builder strings.Builder
		for i, digit := range head {
			if i > 0 && (len(head)-i)%2 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String() + "," + tail
	}
	if hasFrac {
		return intPart + "." + fracPart
	}
	return intPart
}
