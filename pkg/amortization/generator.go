package amortization

import (
	"context"

	"go.uber.org/zap"
)

// Generator runs amortization calculations and logs what it computed.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new generator instance
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Calculate is Calculate with logging.
func (g *Generator) Calculate(in Input) (Result, error) {
	result, err := Calculate(in)
	if err != nil {
		g.logger.Debug("rejected loan input",
			zap.String("op", "amortization.Calculate"),
			zap.Error(err),
		)
		return Result{}, err
	}

	g.logger.Debug("computed amortization schedule",
		zap.String("op", "amortization.Calculate"),
		zap.Float64("principal", in.Principal()),
		zap.Float64("monthly_payment", result.Summary.MonthlyPayment),
		zap.Int("periods", result.Months()),
		zap.String("payoff_date", result.Summary.PayoffDate.String()),
	)
	return result, nil
}

// Compare is Compare with logging.
func (g *Generator) Compare(ctx context.Context, in Input) (Comparison, error) {
	comparison, err := Compare(ctx, in)
	if err != nil {
		g.logger.Debug("amortization comparison failed",
			zap.String("op", "amortization.Compare"),
			zap.Error(err),
		)
		return Comparison{}, err
	}

	if in.CustomPayment != nil && comparison.Custom == nil {
		g.logger.Debug("custom payment does not exceed the minimum payment, using the minimum",
			zap.String("op", "amortization.Compare"),
			zap.Float64("custom_payment", *in.CustomPayment),
			zap.Float64("minimum_payment", comparison.Original.Summary.MonthlyPayment),
		)
	}

	fields := []zap.Field{
		zap.String("op", "amortization.Compare"),
		zap.Int("original_periods", comparison.Original.Months()),
		zap.Float64("original_total", comparison.Original.Summary.TotalPayments),
	}
	if comparison.Difference != nil {
		fields = append(fields,
			zap.Int("custom_periods", comparison.Custom.Months()),
			zap.Float64("total_payments_diff", comparison.Difference.TotalPaymentsDiff),
			zap.Int("months_diff", comparison.Difference.MonthsDiff),
		)
	}
	g.logger.Debug("computed amortization comparison", fields...)
	return comparison, nil
}
