package params

import (
	"fmt"
	"math"
	"net/url"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/constants"
)

// DecodeLumpsum reads amount, duration and return.
func DecodeLumpsum(values url.Values) (calculator.LumpsumInput, []string) {
	d := newDecoder(values)
	in := calculator.LumpsumInput{
		Principal:  d.number(KeyAmount, positive),
		Years:      d.number(KeyDuration, positive),
		AnnualRate: d.number(KeyReturn, nonNegative),
	}
	return in, d.warnings
}

// EncodeLumpsum is the inverse of DecodeLumpsum.
func EncodeLumpsum(in calculator.LumpsumInput) url.Values {
	e := newEncoder()
	e.number(KeyAmount, in.Principal)
	e.number(KeyDuration, in.Years)
	e.number(KeyReturn, in.AnnualRate)
	return e.values
}

// DecodeCAGR reads initial, final and duration.
func DecodeCAGR(values url.Values) (calculator.CAGRInput, []string) {
	d := newDecoder(values)
	in := calculator.CAGRInput{
		Initial: d.number(KeyInitial, positive),
		Final:   d.number(KeyFinal, positive),
		Years:   d.number(KeyDuration, positive),
	}
	return in, d.warnings
}

// EncodeCAGR is the inverse of DecodeCAGR.
func EncodeCAGR(in calculator.CAGRInput) url.Values {
	e := newEncoder()
	e.number(KeyInitial, in.Initial)
	e.number(KeyFinal, in.Final)
	e.number(KeyDuration, in.Years)
	return e.values
}

// DecodeInflation reads amount, inflation and duration.
func DecodeInflation(values url.Values) (calculator.InflationInput, []string) {
	d := newDecoder(values)
	in := calculator.InflationInput{
		Amount:        d.number(KeyAmount, positive),
		InflationRate: d.number(KeyInflation, nonNegative),
		Years:         d.number(KeyDuration, positive),
	}
	return in, d.warnings
}

// EncodeInflation is the inverse of DecodeInflation.
func EncodeInflation(in calculator.InflationInput) url.Values {
	e := newEncoder()
	e.number(KeyAmount, in.Amount)
	e.number(KeyInflation, in.InflationRate)
	e.number(KeyDuration, in.Years)
	return e.values
}

// DecodeSIP reads the contribution, its schedule and the optional step-up.
// The step-up frequency defaults to yearly.
func DecodeSIP(values url.Values) (calculator.SIPInput, []string) {
	d := newDecoder(values)
	in := calculator.SIPInput{
		Amount:     d.number(KeyAmount, positive),
		Frequency:  choice(d, KeyFrequency, calculator.Monthly, calculator.ParseFrequency),
		Years:      d.number(KeyDuration, positive),
		AnnualRate: d.number(KeyReturn, nonNegative),
		Timing:     choice(d, KeyTiming, calculator.End, calculator.ParseTiming),
	}
	if d.flag(KeyStepUp) {
		in.StepUp = calculator.StepUp{
			Enabled:    true,
			Frequency:  choice(d, KeyStepUpFrequency, calculator.Yearly, calculator.ParseFrequency),
			Percentage: d.number(KeyStepUpPercentage, nonNegative),
		}
	}
	if periods := in.Years * in.Frequency.PeriodsPerYear(); periods > constants.MaxPeriods {
		raw, _ := d.raw(KeyDuration)
		d.warn(KeyDuration, raw, fmt.Sprintf("exceeds the maximum of %d installments", constants.MaxPeriods))
		in.Years = math.NaN()
	}
	return in, d.warnings
}

// EncodeSIP is the inverse of DecodeSIP. Step-up keys are only written when
// the step-up is enabled.
func EncodeSIP(in calculator.SIPInput) url.Values {
	e := newEncoder()
	e.number(KeyAmount, in.Amount)
	e.text(KeyFrequency, string(in.Frequency))
	e.number(KeyDuration, in.Years)
	e.number(KeyReturn, in.AnnualRate)
	e.text(KeyTiming, string(in.Timing))
	if in.StepUp.Enabled {
		e.text(KeyStepUp, "true")
		e.text(KeyStepUpFrequency, string(in.StepUp.Frequency))
		e.number(KeyStepUpPercentage, in.StepUp.Percentage)
	}
	return e.values
}

// DecodeGoal reads goal, frequency, duration, return and inflation.
func DecodeGoal(values url.Values) (calculator.GoalInput, []string) {
	d := newDecoder(values)
	in := calculator.GoalInput{
		Goal:          d.number(KeyGoal, positive),
		Frequency:     choice(d, KeyFrequency, calculator.Monthly, calculator.ParseFrequency),
		Years:         d.number(KeyDuration, positive),
		AnnualRate:    d.number(KeyReturn, nonNegative),
		InflationRate: d.number(KeyInflation, nonNegative),
	}
	return in, d.warnings
}

// EncodeGoal is the inverse of DecodeGoal.
func EncodeGoal(in calculator.GoalInput) url.Values {
	e := newEncoder()
	e.number(KeyGoal, in.Goal)
	e.text(KeyFrequency, string(in.Frequency))
	e.number(KeyDuration, in.Years)
	e.number(KeyReturn, in.AnnualRate)
	e.number(KeyInflation, in.InflationRate)
	return e.values
}

// DecodeMultiplier reads the fields of both modes. Only the ones the mode
// uses need to be present.
func DecodeMultiplier(values url.Values) (calculator.MultiplierInput, []string) {
	d := newDecoder(values)
	in := calculator.MultiplierInput{
		Mode:        choice(d, KeyMode, calculator.ModeTime, calculator.ParseMultiplierMode),
		Principal:   d.number(KeyPrincipal, positive),
		AnnualRate:  d.number(KeyReturn, positive),
		Multiplier:  d.number(KeyMultiplier, aboveOne),
		FinalAmount: d.number(KeyFinal, positive),
	}
	return in, d.warnings
}

// EncodeMultiplier is the inverse of DecodeMultiplier. Zero fields belong
// to the other mode and are left out.
func EncodeMultiplier(in calculator.MultiplierInput) url.Values {
	e := newEncoder()
	e.text(KeyMode, string(in.Mode))
	e.number(KeyPrincipal, in.Principal)
	for key, v := range map[string]float64{
		KeyReturn:     in.AnnualRate,
		KeyMultiplier: in.Multiplier,
		KeyFinal:      in.FinalAmount,
	} {
		if v != 0 {
			e.number(key, v)
		}
	}
	return e.values
}
