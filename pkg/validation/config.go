// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"
	"strings"
)

// ValidateRange checks that value is finite and within [minInclusive, maxInclusive].
func ValidateRange(name string, value, minInclusive, maxInclusive float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s: value is not a finite number", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: value must be >= %g, got %g", name, minInclusive, value)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: value must be <= %g, got %g", name, maxInclusive, value)
	}
	return nil
}

// ValidateOneOf checks that value is one of allowed.
func ValidateOneOf(name, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: expected one of [%s], got %q", name, strings.Join(allowed, ", "), value)
}

// CalculationConfig is the part of a configured calculation that can be
// checked without evaluating it.
type CalculationConfig struct {
	Name       string
	Calculator string
	Active     bool
}

// ConfigValidator checks a batch configuration against the known calculators.
type ConfigValidator struct {
	Calculations []CalculationConfig
	Known        []string
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	seen := make(map[string]bool)
	active := 0
	for i, calc := range cv.Calculations {
		label := calc.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("Calculation %s has no name", label))
		} else if seen[calc.Name] {
			warnings = append(warnings, fmt.Sprintf("Calculation '%s' is defined more than once", calc.Name))
		}
		seen[calc.Name] = true

		if err := ValidateOneOf(fmt.Sprintf("Calculation '%s' calculator", label), strings.ToLower(calc.Calculator), cv.Known); err != nil {
			warnings = append(warnings, err.Error())
		}
		if calc.Active {
			active++
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active calculations configured")
	}

	return warnings
}
