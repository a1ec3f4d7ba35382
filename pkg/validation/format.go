// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/loan-amortization/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatYAML:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatYAML, format)
}

// ValidateExportFormat checks if the format can be offered as a file download.
func ValidateExportFormat(format string) error {
	if format != constants.OutputFormatCSV && format != constants.OutputFormatYAML {
		return fmt.Errorf("expected export format of %s or %s, got %s",
			constants.OutputFormatCSV, constants.OutputFormatYAML, format)
	}
	return nil
}
