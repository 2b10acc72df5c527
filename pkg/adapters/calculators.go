package adapters

import (
	"net/url"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/format"
	"github.com/iwvelando/finance-calculator/pkg/params"
)

// Calculator names.
const (
	NameSIP        = "sip"
	NameLumpsum    = "lumpsum"
	NameCAGR       = "cagr"
	NameInflation  = "inflation"
	NameMultiplier = "multiplier"
	NameGoal       = "goal"
)

var order = map[string]int{
	NameSIP:        0,
	NameLumpsum:    1,
	NameCAGR:       2,
	NameInflation:  3,
	NameMultiplier: 4,
	NameGoal:       5,
}

func init() {
	register(sipAdapter{})
	register(lumpsumAdapter{})
	register(cagrAdapter{})
	register(inflationAdapter{})
	register(multiplierAdapter{})
	register(goalAdapter{})
}

type sipAdapter struct{}

func (sipAdapter) Info() Info {
	return Info{
		Name:        NameSIP,
		Title:       "SIP Calculator",
		Description: "Future value of regular investments, with optional step-up",
		Params: []string{params.KeyAmount, params.KeyFrequency, params.KeyDuration, params.KeyReturn,
			params.KeyTiming, params.KeyStepUp, params.KeyStepUpFrequency, params.KeyStepUpPercentage},
	}
}

func (sipAdapter) Evaluate(values url.Values) Evaluation {
	in, warnings := params.DecodeSIP(values)
	res, ok := calculator.SIP(in)
	return finish(NameSIP, params.EncodeSIP(in), warnings, ok,
		Headline{Label: "Future Value", Value: res.FutureValue, Unit: format.UnitCurrency},
		res, res.Breakdown)
}

type lumpsumAdapter struct{}

func (lumpsumAdapter) Info() Info {
	return Info{
		Name:        NameLumpsum,
		Title:       "Lumpsum Calculator",
		Description: "Future value of a one-time investment",
		Params:      []string{params.KeyAmount, params.KeyDuration, params.KeyReturn},
	}
}

func (lumpsumAdapter) Evaluate(values url.Values) Evaluation {
	in, warnings := params.DecodeLumpsum(values)
	res, ok := calculator.Lumpsum(in)
	return finish(NameLumpsum, params.EncodeLumpsum(in), warnings, ok,
		Headline{Label: "Future Value", Value: res.FutureValue, Unit: format.UnitCurrency},
		res, res.Breakdown)
}

type cagrAdapter struct{}

func (cagrAdapter) Info() Info {
	return Info{
		Name:        NameCAGR,
		Title:       "CAGR Calculator",
		Description: "Compound annual growth rate between two values",
		Params:      []string{params.KeyInitial, params.KeyFinal, params.KeyDuration},
	}
}

func (cagrAdapter) Evaluate(values url.Values) Evaluation {
	in, warnings := params.DecodeCAGR(values)
	res, ok := calculator.CAGR(in)
	return finish(NameCAGR, params.EncodeCAGR(in), warnings, ok,
		Headline{Label: "CAGR", Value: res.RatePercent, Unit: format.UnitPercent},
		res, res.Breakdown)
}

type inflationAdapter struct{}

func (inflationAdapter) Info() Info {
	return Info{
		Name:        NameInflation,
		Title:       "Inflation Calculator",
		Description: "Purchasing power of money after years of inflation",
		Params:      []string{params.KeyAmount, params.KeyInflation, params.KeyDuration},
	}
}

func (inflationAdapter) Evaluate(values url.Values) Evaluation {
	in, warnings := params.DecodeInflation(values)
	res, ok := calculator.Inflation(in)
	return finish(NameInflation, params.EncodeInflation(in), warnings, ok,
		Headline{Label: "Future Purchasing Power", Value: res.PurchasingPower, Unit: format.UnitCurrency},
		res, res.Breakdown)
}

type multiplierAdapter struct{}

func (multiplierAdapter) Info() Info {
	return Info{
		Name:        NameMultiplier,
		Title:       "Money Multiplier Calculator",
		Description: "Time to multiply an investment, or the multiple between two amounts",
		Params: []string{params.KeyMode, params.KeyPrincipal, params.KeyReturn,
			params.KeyMultiplier, params.KeyFinal},
	}
}

func (multiplierAdapter) Evaluate(values url.Values) Evaluation {
	in, warnings := params.DecodeMultiplier(values)
	res, ok := calculator.Multiplier(in)
	headline := Headline{Label: "Time Required", Value: res.Years, Unit: format.UnitYears}
	if in.Mode == calculator.ModeMultiplier {
		headline = Headline{Label: "Multiplier", Value: res.Multiplier, Unit: format.UnitMultiple}
	}
	return finish(NameMultiplier, params.EncodeMultiplier(in), warnings, ok, headline, res, res.Breakdown)
}

type goalAdapter struct{}

func (goalAdapter) Info() Info {
	return Info{
		Name:        NameGoal,
		Title:       "Goal Calculator",
		Description: "Regular investment needed to reach an inflation-adjusted goal",
		Params: []string{params.KeyGoal, params.KeyFrequency, params.KeyDuration,
			params.KeyReturn, params.KeyInflation},
	}
}

func (goalAdapter) Evaluate(values url.Values) Evaluation {
	in, warnings := params.DecodeGoal(values)
	res, ok := calculator.Goal(in)
	return finish(NameGoal, params.EncodeGoal(in), warnings, ok,
		Headline{Label: "Required " + in.Frequency.Label() + " SIP", Value: res.RequiredContribution, Unit: format.UnitCurrency},
		res, res.Breakdown)
}
