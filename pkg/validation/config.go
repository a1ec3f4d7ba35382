// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
)

// HighInterestRateWarning is the annual rate above which a warning is raised.
const HighInterestRateWarning = 25.0

// ValidateLoan returns non-fatal warnings about a loan that is otherwise
// valid. Inputs rejected by amortization.Validate produce no warnings.
func ValidateLoan(in amortization.Input) []string {
	if amortization.Validate(in) != nil {
		return nil
	}

	var warnings []string

	if in.TermYears > constants.LongTermWarningYears {
		warnings = append(warnings, fmt.Sprintf("Loan term of %d years is unusually long (more than %d years)",
			in.TermYears, constants.LongTermWarningYears))
	}

	if in.InterestRate > HighInterestRateWarning {
		warnings = append(warnings, fmt.Sprintf("Interest rate of %.2f%% is unusually high (more than %.0f%%)",
			in.InterestRate, HighInterestRateWarning))
	}

	if in.CustomPayment != nil {
		minimum := amortization.MinimumPayment(in.Principal(), in.InterestRate, in.Periods())
		if amortization.EffectivePayment(minimum, in.CustomPayment) == minimum {
			warnings = append(warnings, fmt.Sprintf("Custom payment %s does not exceed the minimum payment %s and will be ignored",
				format.NumericCurrency(*in.CustomPayment), format.NumericCurrency(mathutil.Round(minimum))))
		}
	}

	return warnings
}
