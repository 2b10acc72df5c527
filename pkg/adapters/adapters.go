// Package adapters binds each calculator in pkg/calculator to its query
// string codec so callers can evaluate any calculator by name from raw
// parameters.
package adapters

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/format"
)

// ErrUnknownCalculator is returned for names that are not registered.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Headline is the primary figure of an evaluation.
type Headline struct {
	Label string      `json:"label"`
	Value float64     `json:"value"`
	Unit  format.Unit `json:"unit"`
}

// Text renders the headline value for display.
func (h Headline) Text() string {
	return format.Value(h.Value, h.Unit)
}

// Evaluation is the outcome of running one calculator on a set of
// parameters. When OK is false, Result is nil and Breakdown is empty.
type Evaluation struct {
	Calculator string
	// Query is the canonical form of the accepted parameters.
	Query     url.Values
	Warnings  []string
	OK        bool
	Headline  Headline
	Result    any
	Breakdown []calculator.Slice
}

// Info describes a registered calculator.
type Info struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}

// Adapter evaluates one calculator from query values.
type Adapter interface {
	Info() Info
	Evaluate(values url.Values) Evaluation
}

var registry = map[string]Adapter{}

func register(a Adapter) {
	registry[a.Info().Name] = a
}

// Lookup returns the adapter registered under name. Names are matched
// case-insensitively.
func Lookup(name string) (Adapter, error) {
	a, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
	}
	return a, nil
}

// Evaluate runs the named calculator against values.
func Evaluate(name string, values url.Values) (Evaluation, error) {
	a, err := Lookup(name)
	if err != nil {
		return Evaluation{}, err
	}
	return a.Evaluate(values), nil
}

// Calculators lists every registered calculator in the order of the home
// page.
func Calculators() []Info {
	infos := make([]Info, 0, len(registry))
	for _, a := range registry {
		infos = append(infos, a.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return order[infos[i].Name] < order[infos[j].Name]
	})
	return infos
}

// Names returns the registered calculator names in display order.
func Names() []string {
	infos := Calculators()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

// finish fills the fields shared by every evaluation.
func finish(name string, query url.Values, warnings []string, ok bool, headline Headline, result any, breakdown calculator.Breakdown) Evaluation {
	e := Evaluation{
		Calculator: name,
		Query:      query,
		Warnings:   warnings,
		OK:         ok,
	}
	if ok {
		e.Headline = headline
		e.Result = result
		e.Breakdown = breakdown.Slices()
	} else {
		e.Headline = Headline{Label: headline.Label, Unit: headline.Unit}
	}
	return e
}
