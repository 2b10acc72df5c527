package validation

import (
	"math"
	"strings"
	"testing"
)

var known = []string{"sip", "lumpsum", "cagr", "inflation", "multiplier", "goal"}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		expectErr bool
	}{
		{"Lower bound", 1, false},
		{"Upper bound", 100, false},
		{"Inside", 42.5, false},
		{"Below", 0.99, true},
		{"Above", 100.01, true},
		{"NaN", math.NaN(), true},
		{"Infinity", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("ttl", tt.value, 1, 100)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateRange(%v) expected error but got none", tt.value)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateRange(%v) unexpected error = %v", tt.value, err)
			}
		})
	}
}

func TestValidateOneOf(t *testing.T) {
	if err := ValidateOneOf("backend", "redis", []string{"memory", "redis"}); err != nil {
		t.Errorf("unexpected error = %v", err)
	}
	err := ValidateOneOf("backend", "memcached", []string{"memory", "redis"})
	if err == nil {
		t.Fatal("expected error for unsupported value")
	}
	if !strings.Contains(err.Error(), "memory, redis") {
		t.Errorf("error should list allowed values: %s", err)
	}
}

func TestConfigValidatorValidateAll(t *testing.T) {
	tests := []struct {
		name         string
		calculations []CalculationConfig
		expectWarns  []string
	}{
		{
			name: "Clean configuration",
			calculations: []CalculationConfig{
				{Name: "Retirement SIP", Calculator: "sip", Active: true},
				{Name: "House goal", Calculator: "Goal", Active: false},
			},
		},
		{
			name: "Unknown calculator",
			calculations: []CalculationConfig{
				{Name: "Mortgage", Calculator: "emi", Active: true},
			},
			expectWarns: []string{"Calculation 'Mortgage' calculator"},
		},
		{
			name: "Duplicate names",
			calculations: []CalculationConfig{
				{Name: "Plan", Calculator: "sip", Active: true},
				{Name: "Plan", Calculator: "lumpsum", Active: true},
			},
			expectWarns: []string{"'Plan' is defined more than once"},
		},
		{
			name: "Missing name and nothing active",
			calculations: []CalculationConfig{
				{Calculator: "cagr"},
			},
			expectWarns: []string{"#1 has no name", "No active calculations"},
		},
		{
			name:        "Empty configuration",
			expectWarns: []string{"No active calculations"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := &ConfigValidator{Calculations: tt.calculations, Known: known}
			warnings := cv.ValidateAll()

			if len(warnings) != len(tt.expectWarns) {
				t.Fatalf("ValidateAll() returned %d warnings %v, expected %d", len(warnings), warnings, len(tt.expectWarns))
			}
			for i, want := range tt.expectWarns {
				if !strings.Contains(warnings[i], want) {
					t.Errorf("warning[%d] = %q, expected it to contain %q", i, warnings[i], want)
				}
			}
		})
	}
}
