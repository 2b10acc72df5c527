// Package output provides utilities for formatting and displaying calculation reports.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/finance-calculator/internal/report"
	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/format"
	"github.com/iwvelando/finance-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders results in the named output format.
func Write(w io.Writer, outputFormat string, results []report.Report) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	default:
		return PrettyFormat(w, results)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []report.Report) error {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		e := result.Evaluation
		headline := format.Placeholder
		if e.OK {
			headline = e.Headline.Text()
		}

		rows := [][2]string{{e.Headline.Label, headline}}
		for _, slice := range e.Breakdown {
			rows = append(rows, [2]string{slice.Name, format.Currency(slice.Value)})
		}
		if sip, ok := e.Result.(calculator.SIPResult); ok {
			rows = append(rows, [2]string{"Installments", p.Sprintf("%d", int(sip.Periods))})
			if !mathutil.WithinTolerance(sip.FinalContribution*sip.Periods, sip.Invested, constants.CurrencyTolerance) {
				rows = append(rows, [2]string{"Final Installment", format.Currency(sip.FinalContribution)})
			}
		}
		for _, warning := range e.Warnings {
			rows = append(rows, [2]string{"Warning", warning})
		}
		rows = append(rows, [2]string{"Share", result.ShareURL})

		width := 0
		for _, row := range rows {
			if n := len([]rune(row[0])); n > width {
				width = n
			}
		}

		if _, err := p.Fprintf(w, "--- Results for calculation %s (%s) ---\n", result.Name, e.Calculator); err != nil {
			return err
		}
		for _, row := range rows {
			pad := strings.Repeat(" ", width-len([]rune(row[0])))
			if _, err := p.Fprintf(w, "%s%s | %s\n", row[0], pad, row[1]); err != nil {
				return err
			}
		}
		if i < len(results)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, results []report.Report) error {
	cw := csv.NewWriter(w)
	header := []string{"name", "calculator", "ok", "headline", "value",
		"base", "base value", "growth", "growth value", "warnings", "share url"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		e := result.Evaluation
		value := ""
		if e.OK {
			value = strconv.FormatFloat(e.Headline.Value, 'f', constants.DecimalPrecision, 64)
		}
		record := []string{result.Name, e.Calculator, strconv.FormatBool(e.OK), e.Headline.Label, value}
		for i := 0; i < 2; i++ {
			if i < len(e.Breakdown) {
				record = append(record, e.Breakdown[i].Name,
					strconv.FormatFloat(e.Breakdown[i].Value, 'f', constants.DecimalPrecision, 64))
			} else {
				record = append(record, "", "")
			}
		}
		record = append(record, strings.Join(e.Warnings, "; "), result.ShareURL)
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonReport struct {
	Name       string             `json:"name"`
	Calculator string             `json:"calculator"`
	OK         bool               `json:"ok"`
	Headline   jsonHeadline       `json:"headline"`
	Result     any                `json:"result"`
	Breakdown  []calculator.Slice `json:"breakdown"`
	Warnings   []string           `json:"warnings,omitempty"`
	ShareURL   string             `json:"shareUrl"`
}

type jsonHeadline struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
	Text  string   `json:"text"`
}

// JSONFormat outputs the reports as an indented JSON array.
func JSONFormat(w io.Writer, results []report.Report) error {
	out := make([]jsonReport, 0, len(results))
	for _, result := range results {
		e := result.Evaluation
		headline := jsonHeadline{Label: e.Headline.Label, Text: format.Placeholder}
		if e.OK {
			v := e.Headline.Value
			headline.Value = &v
			headline.Text = e.Headline.Text()
		}
		breakdown := e.Breakdown
		if breakdown == nil {
			breakdown = []calculator.Slice{}
		}
		out = append(out, jsonReport{
			Name:       result.Name,
			Calculator: e.Calculator,
			OK:         e.OK,
			Headline:   headline,
			Result:     e.Result,
			Breakdown:  breakdown,
			Warnings:   e.Warnings,
			ShareURL:   result.ShareURL,
		})
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding reports: %w", err)
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
