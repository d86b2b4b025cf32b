package models

// MortgageRequest is the payload for a mortgage calculation
type MortgageRequest struct {
	Price           float64 `json:"price"`
	DownPayment     float64 `json:"down_payment"`
	AnnualRate      float64 `json:"annual_rate"`
	TermYears       int     `json:"term_years"`
	IncludeSchedule bool    `json:"include_schedule"`
}

// Validate checks the calculation inputs
func (r *MortgageRequest) Validate() error {
	if r.Price <= 0 {
		return &ValidationError{Field: "price", Message: "price must be positive"}
	}
	if r.DownPayment < 0 {
		return &ValidationError{Field: "down_payment", Message: "down payment must not be negative"}
	}
	if r.DownPayment >= r.Price {
		return &ValidationError{Field: "down_payment", Message: "down payment must be less than price"}
	}
	if r.AnnualRate < 0 {
		return &ValidationError{Field: "annual_rate", Message: "annual rate must not be negative"}
	}
	if r.TermYears <= 0 || r.TermYears > 50 {
		return &ValidationError{Field: "term_years", Message: "term must be between 1 and 50 years"}
	}
	return nil
}

// MortgageResult holds calculation output. Monetary amounts are decimal
// strings rounded to cents.
type MortgageResult struct {
	LoanAmount     string              `json:"loan_amount"`
	MonthlyPayment string              `json:"monthly_payment"`
	TotalPaid      string              `json:"total_paid"`
	TotalInterest  string              `json:"total_interest"`
	Schedule       []AmortizationEntry `json:"schedule,omitempty"`
}

// AmortizationEntry is one month of an amortization schedule
type AmortizationEntry struct {
	Month     int    `json:"month"`
	Principal string `json:"principal"`
	Interest  string `json:"interest"`
	Balance   string `json:"balance"`
}
