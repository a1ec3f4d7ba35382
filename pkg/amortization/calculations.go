package amortization

import (
	"context"
	"math"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// residualBalance is the largest balance left over by floating-point drift
// that is treated as fully repaid.
const residualBalance = 0.5 / constants.DecimalPrecision

// MinimumPayment calculates the monthly payment that amortizes principal over
// the given number of periods using the standard amortization formula.
func MinimumPayment(principal, annualInterestRate float64, periods int) float64 {
	monthlyRate := annualInterestRate / constants.PercentageMultiplier / constants.MonthsPerYear
	if monthlyRate == 0 {
		return principal / float64(periods)
	}

	// P*r / (1 - (1+r)^-n). The denominator goes through Log1p and Expm1 so a
	// tiny rate does not cancel to zero.
	return principal * monthlyRate / -math.Expm1(-float64(periods)*math.Log1p(monthlyRate))
}

// EffectivePayment returns the custom payment when one is given and it is
// strictly greater than the minimum; otherwise the minimum is used.
func EffectivePayment(minimum float64, custom *float64) float64 {
	if custom != nil && *custom > minimum {
		return *custom
	}
	return minimum
}

// Validate checks that the loan can be amortized.
func Validate(in Input) error {
	if !mathutil.IsFinite(in.PurchasePrice) {
		return NewInvalidInputError("purchase_price", "must be a finite number")
	}
	if !mathutil.IsFinite(in.DownPayment) {
		return NewInvalidInputError("down_payment", "must be a finite number")
	}
	if !mathutil.IsFinite(in.InterestRate) {
		return NewInvalidInputError("interest_rate", "must be a finite number")
	}
	if in.CustomPayment != nil && !mathutil.IsFinite(*in.CustomPayment) {
		return NewInvalidInputError("custom_repayment", "must be a finite number")
	}
	if in.DownPayment < 0 {
		return NewInvalidInputError("down_payment", "must not be negative, got %.2f", in.DownPayment)
	}
	if in.Principal() <= 0 {
		return NewInvalidInputError("principal", "purchase price %.2f minus down payment %.2f must be positive",
			in.PurchasePrice, in.DownPayment)
	}
	if in.TermYears <= 0 {
		return NewInvalidInputError("loan_term", "must be a positive number of years, got %d", in.TermYears)
	}
	if in.TermYears > constants.MaxLoanTermYears {
		return NewInvalidInputError("loan_term", "must not exceed %d years, got %d",
			constants.MaxLoanTermYears, in.TermYears)
	}
	if in.InterestRate < 0 {
		return NewInvalidInputError("interest_rate", "must not be negative, got %.2f", in.InterestRate)
	}
	if in.StartDate.IsZero() {
		return NewInvalidInputError("start_date", "is required")
	}
	if minimum := MinimumPayment(in.Principal(), in.InterestRate, in.Periods()); !mathutil.IsFinite(minimum) {
		return NewInvalidInputError("interest_rate", "%g%% gives no finite monthly payment", in.InterestRate)
	}
	return nil
}

// Calculate builds the amortization schedule and summary for a loan. The
// schedule runs until the balance is repaid, which with a custom payment above
// the minimum happens before the end of the term.
func Calculate(in Input) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}

	monthlyRate := in.MonthlyRate()
	periods := in.Periods()
	minimum := MinimumPayment(in.Principal(), in.InterestRate, periods)
	monthlyPayment := EffectivePayment(minimum, in.CustomPayment)

	schedule := make([]Payment, 0, periods)
	totalPayments := decimal.Zero
	totalInterest := decimal.Zero
	balance := in.Principal()

	for period := 1; balance > 0; period++ {
		interest := balance * monthlyRate
		principalPaid := mathutil.Min(monthlyPayment-interest, balance)
		if period >= periods {
			// The minimum payment retires the loan in the final period.
			principalPaid = balance
		}
		payment := principalPaid + interest

		balance -= principalPaid
		if balance < residualBalance {
			balance = 0
		}

		entry := Payment{
			Number:    period,
			Date:      datetime.PeriodDate(in.StartDate, period),
			Payment:   mathutil.Round(payment),
			Principal: mathutil.Round(principalPaid),
			Interest:  mathutil.Round(interest),
			Balance:   mathutil.Round(mathutil.Max(balance, 0)),
		}
		schedule = append(schedule, entry)

		// Totals are sums of the emitted, already rounded amounts.
		totalPayments = totalPayments.Add(decimal.NewFromFloat(entry.Payment))
		totalInterest = totalInterest.Add(decimal.NewFromFloat(entry.Interest))
	}

	return Result{
		Schedule: schedule,
		Summary: Summary{
			TotalPayments:  totalPayments.Round(constants.CentPlaces).InexactFloat64(),
			TotalInterest:  totalInterest.Round(constants.CentPlaces).InexactFloat64(),
			PayoffDate:     schedule[len(schedule)-1].Date,
			MonthlyPayment: mathutil.Round(monthlyPayment),
		},
	}, nil
}

// Compare calculates the minimum-payment schedule and, when the input carries
// a custom payment above the minimum, the custom schedule and the savings it
// produces. The two schedules are computed concurrently.
func Compare(ctx context.Context, in Input) (Comparison, error) {
	if err := Validate(in); err != nil {
		return Comparison{}, err
	}

	minimum := MinimumPayment(in.Principal(), in.InterestRate, in.Periods())
	useCustom := in.CustomPayment != nil && *in.CustomPayment > minimum

	var original, custom Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		original, err = Calculate(in.WithoutCustom())
		return err
	})
	if useCustom {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var err error
			custom, err = Calculate(in)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	comparison := Comparison{Original: original}
	if useCustom {
		comparison.Custom = &custom
		comparison.Difference = Diff(original, custom)
	}
	return comparison, nil
}

// Diff reports the total payments and months saved by custom over original.
func Diff(original, custom Result) *Difference {
	saved := decimal.NewFromFloat(original.Summary.TotalPayments).
		Sub(decimal.NewFromFloat(custom.Summary.TotalPayments)).
		Round(constants.CentPlaces)
	return &Difference{
		TotalPaymentsDiff: saved.InexactFloat64(),
		MonthsDiff:        original.Months() - custom.Months(),
	}
}
