package report

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/iwvelando/finance-calculator/pkg/adapters"
	"go.uber.org/zap"
)

func TestGetReports(t *testing.T) {
	conf := config.Configuration{
		BaseURL: "http://localhost:3000/",
		Calculations: []config.Calculation{
			{
				Name:       "lumpsum",
				Calculator: "lumpsum",
				Active:     true,
				Params:     map[string]interface{}{"amount": 10000, "duration": 5, "return": 10},
			},
			{
				Name:       "inactive",
				Calculator: "sip",
				Active:     false,
				Params:     map[string]interface{}{"amount": 1000},
			},
			{
				Name:       "invalid",
				Calculator: "cagr",
				Active:     true,
				Params:     map[string]interface{}{"initial": 0, "final": 100, "duration": 2},
			},
		},
	}

	logger, _ := zap.NewDevelopment()
	reports, err := GetReports(logger, conf)
	if err != nil {
		t.Fatalf("GetReports() error = %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}

	lumpsum := Find(reports, "lumpsum")
	if lumpsum == nil {
		t.Fatal("lumpsum report not found")
	}
	if !lumpsum.Evaluation.OK {
		t.Fatal("Expected lumpsum to have a result")
	}
	if math.Abs(lumpsum.Evaluation.Headline.Value-16105.10) > 0.01 {
		t.Errorf("Expected future value 16105.10, got %.2f", lumpsum.Evaluation.Headline.Value)
	}
	if lumpsum.ShareURL != "http://localhost:3000/lumpsum?amount=10000&duration=5&return=10" {
		t.Errorf("Unexpected share URL %s", lumpsum.ShareURL)
	}

	if Find(reports, "inactive") != nil {
		t.Error("Inactive calculation should be skipped")
	}

	invalid := Find(reports, "invalid")
	if invalid == nil {
		t.Fatal("invalid report not found")
	}
	if invalid.Evaluation.OK {
		t.Error("Expected no result for a zero initial value")
	}
	if len(invalid.Evaluation.Warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", invalid.Evaluation.Warnings)
	}
}

func TestGetReportsUnknownCalculator(t *testing.T) {
	conf := config.Configuration{
		Calculations: []config.Calculation{
			{Name: "loan", Calculator: "emi", Active: true},
		},
	}

	_, err := GetReports(nil, conf)
	if !errors.Is(err, adapters.ErrUnknownCalculator) {
		t.Errorf("Expected ErrUnknownCalculator, got %v", err)
	}
}

func TestGetReportsDefaultBaseURL(t *testing.T) {
	conf := config.Configuration{
		Calculations: []config.Calculation{
			{Name: "doubling", Calculator: "multiplier", Active: true,
				Params: map[string]interface{}{"principal": 10000, "return": 10, "multiplier": 2}},
		},
	}

	reports, err := GetReports(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("GetReports() error = %v", err)
	}
	want := "https://finance.zytact.com/multiplier?mode=time&multiplier=2&principal=10000&return=10"
	if reports[0].ShareURL != want {
		t.Errorf("ShareURL = %s, expected %s", reports[0].ShareURL, want)
	}
}

func TestGetReportsFromTestConfig(t *testing.T) {
	conf, err := config.LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	reports, err := GetReports(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("GetReports() error = %v", err)
	}
	if len(reports) != 7 {
		t.Fatalf("Expected 7 active reports, got %d", len(reports))
	}

	expected := map[string]float64{
		"retirement sip":     463889.38,
		"fixed deposit":      16105.10,
		"portfolio growth":   8.45,
		"cost of waiting":    6139.13,
		"house down payment": 4347.09,
		"doubling time":      7.27,
	}
	for name, want := range expected {
		r := Find(reports, name)
		if r == nil {
			t.Errorf("report %s not found", name)
			continue
		}
		if !r.Evaluation.OK {
			t.Errorf("report %s has no result", name)
			continue
		}
		if math.Abs(r.Evaluation.Headline.Value-want) > 0.01 {
			t.Errorf("report %s headline = %.4f, expected %.2f", name, r.Evaluation.Headline.Value, want)
		}
	}

	if bad := Find(reports, "bad link"); bad == nil || bad.Evaluation.OK {
		t.Error("Expected bad link report without a result")
	}
}
