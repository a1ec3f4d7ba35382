// Package output provides utilities for formatting and displaying amortization results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Result labels used in headers and the CSV "result" column.
const (
	LabelOriginal = "original"
	LabelCustom   = "custom"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, cmp amortization.Comparison, symbol string) error {
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}
	p := message.NewPrinter(language.English)

	if err := prettyResult(w, p, LabelOriginal, cmp.Original, symbol); err != nil {
		return err
	}
	if cmp.Custom != nil {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := prettyResult(w, p, LabelCustom, *cmp.Custom, symbol); err != nil {
			return err
		}
	}
	if cmp.Difference != nil {
		if _, err := fmt.Fprintf(w, "\n--- Savings with custom payment ---\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Total payments saved: %s\n", format.CurrencyWithSymbol(symbol, cmp.Difference.TotalPaymentsDiff)); err != nil {
			return err
		}
		if _, err := p.Fprintf(w, "Months saved:         %d\n", cmp.Difference.MonthsDiff); err != nil {
			return err
		}
	}
	return nil
}

func prettyResult(w io.Writer, p *message.Printer, label string, result amortization.Result, symbol string) error {
	s := result.Summary
	if _, err := fmt.Fprintf(w, "--- Results for %s schedule ---\n", label); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "Monthly payment: %s\nTotal payments:  %s\nTotal interest:  %s\nPayoff date:     %s\n\n",
		format.CurrencyWithSymbol(symbol, s.MonthlyPayment), format.CurrencyWithSymbol(symbol, s.TotalPayments),
		format.CurrencyWithSymbol(symbol, s.TotalInterest), s.PayoffDate.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "#   | Date       | Payment | Principal | Interest | Balance\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "___ | __________ | _______ | _________ | ________ | _______\n"); err != nil {
		return err
	}
	for _, row := range result.Schedule {
		if _, err := p.Fprintf(w, "%d | %s | %s | %s | %s | %s\n",
			row.Number, row.Date.String(), format.CurrencyWithSymbol(symbol, row.Payment),
			format.CurrencyWithSymbol(symbol, row.Principal), format.CurrencyWithSymbol(symbol, row.Interest),
			format.CurrencyWithSymbol(symbol, row.Balance)); err != nil {
			return err
		}
	}
	return nil
}

// CsvHeader is the header row written by CsvFormat.
var CsvHeader = []string{"result", "payment_number", "date", "payment", "principal", "interest", "balance"}

// CsvFormat writes every schedule row of the comparison in comma-separated
// value format, labelled by the result it belongs to.
func CsvFormat(w io.Writer, cmp amortization.Comparison) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CsvHeader); err != nil {
		return err
	}
	if err := csvRows(writer, LabelOriginal, cmp.Original); err != nil {
		return err
	}
	if cmp.Custom != nil {
		if err := csvRows(writer, LabelCustom, *cmp.Custom); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRows(writer *csv.Writer, label string, result amortization.Result) error {
	for _, row := range result.Schedule {
		record := []string{
			label,
			strconv.Itoa(row.Number),
			row.Date.String(),
			money(row.Payment),
			money(row.Principal),
			money(row.Interest),
			money(row.Balance),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// CsvString returns the CSV output as a string.
func CsvString(cmp amortization.Comparison) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, cmp); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// YAMLString returns the full comparison serialised as YAML.
func YAMLString(cmp amortization.Comparison) (string, error) {
	data, err := yaml.Marshal(cmp)
	if err != nil {
		return "", fmt.Errorf("failed to encode comparison: %w", err)
	}
	return string(data), nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', constants.CentPlaces, 64)
}
