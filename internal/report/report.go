// Package report defines the data structures related to a batch report and
// includes functions for evaluating every configured calculation.
package report

import (
	"fmt"

	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/iwvelando/finance-calculator/pkg/adapters"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/params"
	"go.uber.org/zap"
)

// Report holds the evaluation of one configured calculation.
type Report struct {
	Name       string
	Evaluation adapters.Evaluation
	ShareURL   string
}

// GetReports evaluates all active Calculations in order.
func GetReports(logger *zap.Logger, conf config.Configuration) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	var results []Report
	for _, calc := range conf.Calculations {
		if !calc.Active {
			logger.Debug(fmt.Sprintf("skipping calculation %s because it is inactive", calc.Name),
				zap.String("op", "report.GetReports"),
			)
			continue
		}

		values, err := calc.Values()
		if err != nil {
			return results, err
		}

		evaluation, err := adapters.Evaluate(calc.Calculator, values)
		if err != nil {
			return results, fmt.Errorf("calculation %s: %w", calc.Name, err)
		}

		for _, warning := range evaluation.Warnings {
			logger.Warn(warning,
				zap.String("op", "report.GetReports"),
				zap.String("calculation", calc.Name),
			)
		}
		if !evaluation.OK {
			logger.Info(fmt.Sprintf("calculation %s has no result for the given params", calc.Name),
				zap.String("op", "report.GetReports"),
			)
		}

		results = append(results, Report{
			Name:       calc.Name,
			Evaluation: evaluation,
			ShareURL:   params.ShareURL(baseURL, evaluation.Calculator, evaluation.Query),
		})
	}

	return results, nil
}

// Find returns the report with the given name, or nil.
func Find(reports []Report, name string) *Report {
	for i := range reports {
		if reports[i].Name == name {
			return &reports[i]
		}
	}
	return nil
}
