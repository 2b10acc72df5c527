// Package testutil holds helpers shared by the integration tests.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/iwvelando/finance-calculator/internal/report"
	"go.uber.org/zap"
)

// LoadReports loads the batch configuration at path and evaluates it the
// same way the CLI does.
func LoadReports(tb testing.TB, path string) []report.Report {
	tb.Helper()

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		tb.Fatalf("LoadConfiguration() error = %v", err)
	}

	reports, err := report.GetReports(zap.NewNop(), *conf)
	if err != nil {
		tb.Fatalf("GetReports() error = %v", err)
	}
	return reports
}

// MustFind returns the named report or fails the test.
func MustFind(tb testing.TB, reports []report.Report, name string) report.Report {
	tb.Helper()

	r := report.Find(reports, name)
	if r == nil {
		tb.Fatalf("report %q not found", name)
		return report.Report{}
	}
	return *r
}

// AssertHeadline checks that the report has a result whose headline value
// is within tolerance of want.
func AssertHeadline(tb testing.TB, r report.Report, want, tolerance float64) {
	tb.Helper()

	if !r.Evaluation.OK {
		tb.Errorf("%s: expected a result, got none (warnings %v)", r.Name, r.Evaluation.Warnings)
		return
	}
	if got := r.Evaluation.Headline.Value; math.Abs(got-want) > tolerance {
		tb.Errorf("%s: %s = %.4f, expected %.4f", r.Name, r.Evaluation.Headline.Label, got, want)
	}
}
