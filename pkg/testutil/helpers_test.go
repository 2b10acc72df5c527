package testutil

import (
	"testing"

	"github.com/iwvelando/finance-calculator/internal/report"
	"github.com/iwvelando/finance-calculator/pkg/adapters"
)

func TestMustFind(t *testing.T) {
	reports := []report.Report{
		{Name: "first"},
		{Name: "second", ShareURL: "https://example.test/cagr"},
	}

	got := MustFind(t, reports, "second")
	if got.ShareURL != "https://example.test/cagr" {
		t.Errorf("Expected second report, got %+v", got)
	}
}

func TestMustFindReturnsFirstDuplicate(t *testing.T) {
	reports := []report.Report{
		{Name: "dup", ShareURL: "a"},
		{Name: "dup", ShareURL: "b"},
	}

	if got := MustFind(t, reports, "dup"); got.ShareURL != "a" {
		t.Errorf("Expected first duplicate, got %q", got.ShareURL)
	}
}

func TestAssertHeadline(t *testing.T) {
	r := report.Report{
		Name: "fd",
		Evaluation: adapters.Evaluation{
			OK:       true,
			Headline: adapters.Headline{Label: "Future Value", Value: 16105.1},
		},
	}

	AssertHeadline(t, r, 16105.10, 0.01)
}

func TestLoadReports(t *testing.T) {
	reports := LoadReports(t, "../../test/test_config.yaml")
	if len(reports) != 7 {
		t.Fatalf("Expected 7 active reports, got %d", len(reports))
	}
}
