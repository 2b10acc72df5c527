// Package params converts calculator inputs to and from URL query values so
// that every calculation can be shared as a link.
//
// Decoding never fails. A missing number decodes to NaN, which the engine
// rejects as "no result". A present value that cannot be parsed, or that
// breaks the field's acceptance rule, also decodes to NaN and is reported
// as a warning, so a bad link shows a placeholder instead of a wrong number.
package params

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Query keys shared by the calculators.
const (
	KeyAmount           = "amount"
	KeyFrequency        = "frequency"
	KeyDuration         = "duration"
	KeyReturn           = "return"
	KeyTiming           = "timing"
	KeyStepUp           = "stepup"
	KeyStepUpFrequency  = "stepup_frequency"
	KeyStepUpPercentage = "stepup_percentage"
	KeyInitial          = "initial"
	KeyFinal            = "final"
	KeyInflation        = "inflation"
	KeyGoal             = "goal"
	KeyMode             = "mode"
	KeyPrincipal        = "principal"
	KeyMultiplier       = "multiplier"
)

// rule is an acceptance check for a decoded number.
type rule struct {
	desc  string
	check func(float64) bool
}

var (
	positive    = rule{"must be greater than 0", func(v float64) bool { return v > 0 }}
	nonNegative = rule{"must be 0 or more", func(v float64) bool { return v >= 0 }}
	aboveOne    = rule{"must be greater than 1", func(v float64) bool { return v > 1 }}
)

// decoder accumulates warnings while reading a set of values.
type decoder struct {
	values   url.Values
	warnings []string
}

func newDecoder(values url.Values) *decoder {
	return &decoder{values: values}
}

func (d *decoder) warn(key, raw, reason string) {
	d.warnings = append(d.warnings, fmt.Sprintf("ignoring %s=%q: %s", key, raw, reason))
}

func (d *decoder) raw(key string) (string, bool) {
	raw := strings.TrimSpace(d.values.Get(key))
	return raw, raw != ""
}

// number returns the value under key, or NaN when it is missing, malformed
// or fails r.
func (d *decoder) number(key string, r rule) float64 {
	raw, ok := d.raw(key)
	if !ok {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		d.warn(key, raw, "not a number")
		return math.NaN()
	}
	if !r.check(v) {
		d.warn(key, raw, r.desc)
		return math.NaN()
	}
	return v
}

// choice returns the value under key when parse accepts it, otherwise def.
func choice[T any](d *decoder, key string, def T, parse func(string) (T, bool)) T {
	raw, ok := d.raw(key)
	if !ok {
		return def
	}
	v, ok := parse(raw)
	if !ok {
		d.warn(key, raw, "unsupported value")
		return def
	}
	return v
}

func (d *decoder) flag(key string) bool {
	raw, ok := d.raw(key)
	if !ok {
		return false
	}
	v, err := cast.ToBoolE(strings.ToLower(raw))
	if err != nil {
		d.warn(key, raw, "not a boolean")
		return false
	}
	return v
}

// encoder writes only the fields that carry a value.
type encoder struct {
	values url.Values
}

func newEncoder() *encoder {
	return &encoder{values: url.Values{}}
}

func (e *encoder) number(key string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	e.values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
}

func (e *encoder) text(key, v string) {
	if v == "" {
		return
	}
	e.values.Set(key, v)
}

// FromMap converts loosely typed values, as found in YAML configuration or a
// JSON request body, into query values. Nil entries are skipped.
func FromMap(m map[string]interface{}) (url.Values, error) {
	values := url.Values{}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if m[k] == nil {
			continue
		}
		s, err := cast.ToStringE(m[k])
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", k, err)
		}
		values.Set(strings.ToLower(k), s)
	}
	return values, nil
}

// ShareURL builds the shareable link for a calculator page.
func ShareURL(base, calculator string, values url.Values) string {
	u := strings.TrimRight(base, "/") + "/" + calculator
	if q := values.Encode(); q != "" {
		u += "?" + q
	}
	return u
}
