package services

import (
	"github.com/homescope/homescope/internal/models"
	"github.com/shopspring/decimal"
)

// MortgageService computes fixed-rate amortization. All money math runs on
// decimals; results are rounded to cents.
type MortgageService struct{}

func NewMortgageService() *MortgageService {
	return &MortgageService{}
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Calculate computes the monthly payment and totals for a fixed-rate loan.
// The amortization schedule is always walked so the totals reflect the
// final-month rounding adjustment; it is returned only when requested.
func (s *MortgageService) Calculate(request *models.MortgageRequest) (*models.MortgageResult, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	principal := decimal.NewFromFloat(request.Price).Sub(decimal.NewFromFloat(request.DownPayment))
	monthlyRate := decimal.NewFromFloat(request.AnnualRate).Div(hundred).Div(twelve)
	months := request.TermYears * 12

	payment := monthlyPayment(principal, monthlyRate, months)

	balance := principal
	totalPaid := decimal.Zero
	totalInterest := decimal.Zero
	var schedule []models.AmortizationEntry

	for month := 1; month <= months; month++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)

		// Final month absorbs accumulated rounding drift
		if month == months || principalPart.GreaterThan(balance) {
			principalPart = balance
		}

		balance = balance.Sub(principalPart)
		paid := principalPart.Add(interest)
		totalPaid = totalPaid.Add(paid)
		totalInterest = totalInterest.Add(interest)

		if request.IncludeSchedule {
			schedule = append(schedule, models.AmortizationEntry{
				Month:     month,
				Principal: principalPart.StringFixed(2),
				Interest:  interest.StringFixed(2),
				Balance:   balance.StringFixed(2),
			})
		}

		if balance.IsZero() {
			break
		}
	}

	return &models.MortgageResult{
		LoanAmount:     principal.StringFixed(2),
		MonthlyPayment: payment.StringFixed(2),
		TotalPaid:      totalPaid.StringFixed(2),
		TotalInterest:  totalInterest.StringFixed(2),
		Schedule:       schedule,
	}, nil
}

// monthlyPayment solves P*r*(1+r)^n / ((1+r)^n - 1), or P/n at zero rate
func monthlyPayment(principal, monthlyRate decimal.Decimal, months int) decimal.Decimal {
	n := decimal.NewFromInt(int64(months))
	if monthlyRate.IsZero() {
		return principal.Div(n).Round(2)
	}

	growth := monthlyRate.Add(decimal.NewFromInt(1)).Pow(n)
	payment := principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	return payment.Round(2)
}
