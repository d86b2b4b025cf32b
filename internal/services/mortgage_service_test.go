package services

import (
	"testing"

	"github.com/homescope/homescope/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMortgageCalculation(t *testing.T) {
	service := NewMortgageService()

	t.Run("Standard 30 year loan", func(t *testing.T) {
		result, err := service.Calculate(&models.MortgageRequest{
			Price:       500000,
			DownPayment: 100000,
			AnnualRate:  6,
			TermYears:   30,
		})
		require.NoError(t, err)

		assert.Equal(t, "400000.00", result.LoanAmount)
		assert.Equal(t, "2398.20", result.MonthlyPayment)
		assert.Empty(t, result.Schedule)

		// Totals must reconcile: paid = principal + interest
		paid, _ := decimal.NewFromString(result.TotalPaid)
		interest, _ := decimal.NewFromString(result.TotalInterest)
		loan, _ := decimal.NewFromString(result.LoanAmount)
		assert.True(t, paid.Equal(loan.Add(interest)),
			"total paid %s != loan %s + interest %s", result.TotalPaid, result.LoanAmount, result.TotalInterest)
	})

	t.Run("Zero interest loan", func(t *testing.T) {
		result, err := service.Calculate(&models.MortgageRequest{
			Price:       150000,
			DownPayment: 30000,
			AnnualRate:  0,
			TermYears:   10,
		})
		require.NoError(t, err)

		assert.Equal(t, "120000.00", result.LoanAmount)
		assert.Equal(t, "1000.00", result.MonthlyPayment)
		assert.Equal(t, "0.00", result.TotalInterest)
		assert.Equal(t, "120000.00", result.TotalPaid)
	})

	t.Run("Schedule ends at zero balance", func(t *testing.T) {
		result, err := service.Calculate(&models.MortgageRequest{
			Price:           300000,
			DownPayment:     60000,
			AnnualRate:      5.5,
			TermYears:       15,
			IncludeSchedule: true,
		})
		require.NoError(t, err)

		require.NotEmpty(t, result.Schedule)
		assert.LessOrEqual(t, len(result.Schedule), 15*12)

		last := result.Schedule[len(result.Schedule)-1]
		assert.Equal(t, "0.00", last.Balance)

		// Principal parts must sum back to the loan amount
		sum := decimal.Zero
		for _, entry := range result.Schedule {
			principal, perr := decimal.NewFromString(entry.Principal)
			require.NoError(t, perr)
			sum = sum.Add(principal)
		}
		assert.Equal(t, "240000.00", sum.StringFixed(2))
	})
}

func TestMortgageValidation(t *testing.T) {
	service := NewMortgageService()

	cases := []struct {
		name    string
		request *models.MortgageRequest
	}{
		{"zero price", &models.MortgageRequest{Price: 0, TermYears: 30}},
		{"negative down payment", &models.MortgageRequest{Price: 100000, DownPayment: -1, TermYears: 30}},
		{"down payment at price", &models.MortgageRequest{Price: 100000, DownPayment: 100000, TermYears: 30}},
		{"negative rate", &models.MortgageRequest{Price: 100000, AnnualRate: -1, TermYears: 30}},
		{"zero term", &models.MortgageRequest{Price: 100000, TermYears: 0}},
		{"absurd term", &models.MortgageRequest{Price: 100000, TermYears: 99}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Calculate(tc.request)
			require.Error(t, err)
			assert.True(t, models.IsValidationError(err))
		})
	}
}
