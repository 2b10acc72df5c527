package format

import (
	"math"
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{16105.1, "₹16,105.1"},
		{123456.789, "₹1,23,456.79"},
		{1000000, "₹10,00,000"},
		{387185.3623, "₹3,87,185.36"},
		{123456789.005, "₹12,34,56,789.01"},
		{-25000.5, "-₹25,000.5"},
		{math.NaN(), Placeholder},
		{math.Inf(1), Placeholder},
	}

	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.expected {
			t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "0.00"},
		{4347.0946, "4,347.09"},
		{-123456.7, "-1,23,456.70"},
		{10000000, "1,00,00,000.00"},
	}

	for _, tt := range tests {
		if got := NumericCurrency(tt.amount); got != tt.expected {
			t.Errorf("NumericCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		v        float64
		unit     Unit
		expected string
	}{
		{8.44717, UnitPercent, "8.45%"},
		{7.272540897, UnitYears, "7.27 years"},
		{3.5, UnitMultiple, "3.50x"},
		{6139.1325, UnitCurrency, "₹6,139.13"},
		{math.NaN(), UnitYears, Placeholder},
	}

	for _, tt := range tests {
		if got := Value(tt.v, tt.unit); got != tt.expected {
			t.Errorf("Value(%v, %s) = %q, expected %q", tt.v, tt.unit, got, tt.expected)
		}
	}
}
