package main

import (
	"flag"
	"fmt"

	"realestate-sim/internal/config"
	"realestate-sim/internal/model"
	"realestate-sim/internal/simulation"
)

// Demo:
// - Build a sample property (or load a preset via --preset)
// - Run one seeded projection
// - Print the first months of the ledger to show how the pieces fit together
func main() {
	presetPath := flag.String("preset", "", "Path to a property preset YAML (optional)")
	seed := flag.Uint64("seed", 42, "Random seed")
	n := flag.Int("n", 12, "Number of months to print")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/monthly.csv)")
	flag.Parse()

	// Defaults (can be overridden via --preset).
	prop := model.DefaultProperty()
	prop.Name = "Demo SFH"
	prop.PurchasePrice = 250000
	prop.MonthlyRent = 2100
	prop.MonthlyExpenses = 250
	prop.TaxesInsuranceMonthly = 300
	prop.CapexReserveMonthly = 100
	prop.HoldYears = 10
	prop.Loan = &model.Loan{LoanAmount: 200000, InterestRate: 0.065, TermYears: 30}

	if *presetPath != "" {
		loaded, err := config.LoadPreset(*presetPath)
		if err != nil {
			panic(err)
		}
		prop = loaded
	}
	prop, err := model.NewProperty(prop)
	if err != nil {
		panic(err)
	}

	result := simulation.New().SimulateProperty(prop, seed)
	ledger := simulation.Ledger(result)

	fmt.Printf("Property=%s  price=$%.0f  hold=%dy  seed=%d\n", prop.Name, prop.PurchasePrice, prop.HoldYears, *seed)
	fmt.Printf("Monthly debt=$%.2f\n\n", result.MonthlyDebt)

	for i := 0; i < min(*n, len(ledger)); i++ {
		r := ledger[i]
		fmt.Printf(
			"m%03d rent=%8.2f  vac=%7.2f  opex=%7.2f  maint=%8.2f  debt=%8.2f  cf=%9.2f  cum=%10.2f\n",
			r.Month,
			r.Income,
			r.VacancyLoss,
			r.Expenses,
			r.Maintenance,
			r.DebtService,
			r.CashFlow,
			r.CumulativeCF,
		)
	}

	if *outCSV != "" {
		if err := simulation.WriteLedgerCSV(*outCSV, ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Sale value=$%.2f  Net cash flow=$%.2f  IRR=%.2f%%\n", result.SaleValue, result.TotalNetCashflow, result.IRRAnnual*100)
}
