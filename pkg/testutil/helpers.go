// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/loan-amortization/pkg/amortization"
)

// FindPayment finds a payment by its 1-based number in a result's schedule.
// Returns a pointer to the payment if found, nil otherwise.
func FindPayment(result amortization.Result, number int) *amortization.Payment {
	for i := range result.Schedule {
		if result.Schedule[i].Number == number {
			return &result.Schedule[i]
		}
	}
	return nil
}

// Float64Ptr returns a pointer to v, for optional inputs such as custom payments.
func Float64Ptr(v float64) *float64 {
	return &v
}
