// Package amortization computes fixed-rate loan amortization schedules and
// compares a minimum-payment schedule against a custom monthly repayment.
package amortization

import (
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
)

// Input holds the parameters of a single loan.
type Input struct {
	PurchasePrice float64
	InterestRate  float64 // annual percentage
	DownPayment   float64
	TermYears     int
	StartDate     datetime.Date
	CustomPayment *float64 // nil when no custom repayment was given
}

// Principal is the amount owed at period 0.
func (in Input) Principal() float64 {
	return in.PurchasePrice - in.DownPayment
}

// MonthlyRate is the annual percentage rate expressed as a monthly fraction.
func (in Input) MonthlyRate() float64 {
	return in.InterestRate / constants.PercentageMultiplier / constants.MonthsPerYear
}

// Periods is the number of scheduled monthly payments for the term.
func (in Input) Periods() int {
	return in.TermYears * constants.MonthsPerYear
}

// WithoutCustom returns a copy of the input with the custom payment removed.
func (in Input) WithoutCustom() Input {
	in.CustomPayment = nil
	return in
}

// WithCustom returns a copy of the input using the given custom payment.
func (in Input) WithCustom(payment float64) Input {
	in.CustomPayment = &payment
	return in
}

// Payment holds the values for a single scheduled payment.
type Payment struct {
	Number    int           `json:"payment_number" yaml:"paymentNumber"`
	Date      datetime.Date `json:"date" yaml:"date"`
	Payment   float64       `json:"payment" yaml:"payment"`
	Principal float64       `json:"principal" yaml:"principal"`
	Interest  float64       `json:"interest" yaml:"interest"`
	Balance   float64       `json:"balance" yaml:"balance"`
}

// Summary aggregates a schedule.
type Summary struct {
	TotalPayments  float64       `json:"total_payments" yaml:"totalPayments"`
	TotalInterest  float64       `json:"total_interest" yaml:"totalInterest"`
	PayoffDate     datetime.Date `json:"payoff_date" yaml:"payoffDate"`
	MonthlyPayment float64       `json:"monthly_payment" yaml:"monthlyPayment"`
}

// Result is a schedule together with its summary.
type Result struct {
	Schedule []Payment `json:"schedule" yaml:"schedule"`
	Summary  Summary   `json:"summary" yaml:"summary"`
}

// Months returns the number of payments in the schedule.
func (r Result) Months() int {
	return len(r.Schedule)
}

// Difference reports how much a custom repayment saves over the original.
type Difference struct {
	TotalPaymentsDiff float64 `json:"total_payments_diff" yaml:"totalPaymentsDiff"`
	MonthsDiff        int     `json:"months_diff" yaml:"monthsDiff"`
}

// Comparison pairs the minimum-payment result with an optional custom one.
// Custom and Difference are set only when a custom payment above the
// minimum was supplied.
type Comparison struct {
	Original   Result      `json:"original" yaml:"original"`
	Custom     *Result     `json:"custom" yaml:"custom,omitempty"`
	Difference *Difference `json:"difference" yaml:"difference,omitempty"`
}
