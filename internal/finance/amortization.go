package finance

import "math"

// MonthlyPayment is the fixed annuity payment that retires principal over
// amortYears at annualRate (fraction) compounded monthly.
// amortYears <= 0 falls back to termYears. A zero rate pays principal/n and
// a non-positive period count pays nothing.
func MonthlyPayment(principal, annualRate float64, termYears, amortYears int) float64 {
	years := amortYears
	if years <= 0 {
		years = termYears
	}
	n := years * 12
	if n <= 0 {
		return 0
	}
	r := annualRate / 12
	if math.Abs(r) < 1e-12 {
		return principal / float64(n)
	}
	g := math.Pow(1+r, float64(n))
	return principal * r * g / (g - 1)
}

// ScheduleRow is one period of an amortization table.
type ScheduleRow struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// Schedule expands the payment from MonthlyPayment into per-period interest
// and principal. The final balance is zero up to floating error.
func Schedule(principal, annualRate float64, amortYears int) []ScheduleRow {
	n := amortYears * 12
	if n <= 0 || principal <= 0 {
		return nil
	}
	pmt := MonthlyPayment(principal, annualRate, amortYears, amortYears)
	r := annualRate / 12

	rows := make([]ScheduleRow, 0, n)
	balance := principal
	for p := 1; p <= n; p++ {
		interest := balance * r
		princ := pmt - interest
		balance -= princ
		rows = append(rows, ScheduleRow{
			Period:    p,
			Payment:   pmt,
			Interest:  interest,
			Principal: princ,
			Balance:   balance,
		})
	}
	return rows
}
