package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"realestate-sim/internal/analysis"
	"realestate-sim/internal/config"
	"realestate-sim/internal/data"
	"realestate-sim/internal/finance"
	"realestate-sim/internal/model"
	"realestate-sim/internal/simulation"
	"realestate-sim/internal/stochastic"

	"github.com/Rhymond/go-money"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "portfolio":
		cmdPortfolio(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	case "amortize":
		cmdAmortize(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate  --config examples/scenarios/starter.yaml [--property NAME] --seed 42 --out results/monthly.csv")
	fmt.Println("  cli portfolio --config examples/scenarios/starter.yaml --sims 500 --seed 42 --workers 4 --out results/bands.csv")
	fmt.Println("  cli rank      --config examples/scenarios/starter.yaml --runs 200 --seed 42")
	fmt.Println("  cli amortize  --amount 200000 --rate 6.5 --years 30")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - --data portfolio.json may replace --config (request-shaped JSON)")
	fmt.Println("  - simulate writes the monthly ledger; the last month includes sale proceeds")
	fmt.Println("  - portfolio writes expected/p10/p90 monthly cash flow bands")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario")
	dataPath := fs.String("data", "", "Path to JSON portfolio (alternative to --config)")
	name := fs.String("property", "", "Property name to simulate (default: first)")
	seed := fs.Uint64("seed", 0, "Random seed (default: from clock)")
	outPath := fs.String("out", "", "Optional path to write the monthly ledger CSV")
	_ = fs.Parse(args)

	props, scen := mustLoadProperties(*cfgPath, *dataPath)
	prop, err := pickProperty(props, *name)
	if err != nil {
		fatal(err)
	}
	s := resolveSeed(fs, *seed, scen)

	res := simulation.New().SimulateProperty(prop, &s)
	ledger := simulation.Ledger(res)

	fmt.Printf("%s (seed %d)\n", prop.Name, s)
	fmt.Printf("  hold:          %d years (%d months)\n", prop.HoldYears, prop.Months())
	fmt.Printf("  purchase:      %s\n", usd(prop.PurchasePrice))
	fmt.Printf("  monthly debt:  %s\n", usd(res.MonthlyDebt))
	fmt.Printf("  sale value:    %s\n", usd(res.SaleValue))
	fmt.Printf("  net cash flow: %s\n", usd(res.TotalNetCashflow))
	if res.IRRMonthly == 0 {
		fmt.Println("  IRR:           undefined")
	} else {
		fmt.Printf("  IRR:           %.2f%% annual (%.4f%% monthly)\n", res.IRRAnnual*100, res.IRRMonthly*100)
	}

	if *outPath != "" {
		mustMkdirFor(*outPath)
		if err := simulation.WriteLedgerCSV(*outPath, ledger); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(ledger), *outPath)
	}
}

func cmdPortfolio(args []string) {
	fs := flag.NewFlagSet("portfolio", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario")
	dataPath := fs.String("data", "", "Path to JSON portfolio (alternative to --config)")
	sims := fs.Int("sims", 0, "Monte Carlo trials (default: scenario value or 500)")
	seed := fs.Uint64("seed", 0, "Random seed (default: scenario value or clock)")
	workers := fs.Int("workers", 0, "Concurrent trial workers (result is identical for any value)")
	outPath := fs.String("out", "", "Optional path to write the bands CSV")
	_ = fs.Parse(args)

	props, scen := mustLoadProperties(*cfgPath, *dataPath)
	n := *sims
	if n == 0 && scen != nil {
		n = scen.Simulations
	}
	if n == 0 {
		n = simulation.DefaultSimulations
	}
	if n < 1 || n > simulation.MaxSimulations {
		fatal(fmt.Errorf("--sims must be between 1 and %d", simulation.MaxSimulations))
	}
	w := *workers
	if w == 0 && scen != nil {
		w = scen.Workers
	}
	s := resolveSeed(fs, *seed, scen)

	res := simulation.New().SimulatePortfolio(props, simulation.PortfolioOptions{
		Simulations: n,
		Seed:        &s,
		Workers:     w,
	})
	bands := simulation.Bands(res)

	fmt.Printf("%d properties, %d trials, seed %d, horizon %d months\n", len(props), res.Simulations, res.Seed, res.HorizonMonths)
	fmt.Printf("%-6s %-16s %-16s %-16s\n", "month", "p10", "expected", "p90")
	for _, b := range bands {
		// first year, then every twelfth month
		if b.Month > 12 && b.Month%12 != 0 {
			continue
		}
		fmt.Printf("%-6d %-16s %-16s %-16s\n", b.Month, usd(b.P10), usd(b.Expected), usd(b.P90))
	}

	if *outPath != "" {
		mustMkdirFor(*outPath)
		if err := simulation.WriteBandsCSV(*outPath, bands); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(bands), *outPath)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario")
	dataPath := fs.String("data", "", "Path to JSON portfolio (alternative to --config)")
	runs := fs.Int("runs", 200, "Simulations per property")
	seed := fs.Uint64("seed", 0, "Random seed (default: scenario value or clock)")
	_ = fs.Parse(args)

	props, scen := mustLoadProperties(*cfgPath, *dataPath)
	s := resolveSeed(fs, *seed, scen)
	ranked := analysis.RankByIRR(simulation.New(), props, *runs, &s)

	fmt.Printf("seed %d, %d runs per property\n", s, *runs)
	fmt.Printf("%-4s %-28s %-8s %-8s %-8s %-8s %-6s %-14s\n", "rank", "property", "p10", "median", "p90", "spread", "undef", "sale value")
	for _, r := range ranked {
		fmt.Printf(
			"%-4d %-28s %-8s %-8s %-8s %-8s %-6d %-14s\n",
			r.Rank,
			truncate(r.Name, 28),
			pct(r.P10IRR),
			pct(r.MedianIRR),
			pct(r.P90IRR),
			pct(r.SpreadP90P10),
			r.Undefined,
			usd(r.SaleValue),
		)
	}
}

func cmdAmortize(args []string) {
	fs := flag.NewFlagSet("amortize", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "Loan amount")
	rate := fs.Float64("rate", 0.05, "Annual rate (fraction, or percent if > 1)")
	years := fs.Int("years", 30, "Amortization years")
	monthly := fs.Bool("monthly", false, "Print every month instead of year ends")
	_ = fs.Parse(args)

	loan := model.Loan{LoanAmount: *amount, InterestRate: *rate, TermYears: *years}.Normalized()
	if err := loan.Validate(); err != nil {
		fatal(err)
	}
	rows := finance.Schedule(loan.LoanAmount, loan.InterestRate, loan.AmortYears())
	if len(rows) == 0 {
		fatal(errors.New("nothing to amortize: --amount must be > 0"))
	}

	fmt.Printf("%s at %.3f%% over %d years: %s/month\n", usd(loan.LoanAmount), loan.InterestRate*100, loan.AmortYears(), usd(rows[0].Payment))
	fmt.Printf("%-6s %-14s %-14s %-14s\n", "period", "interest", "principal", "balance")
	for _, r := range rows {
		if !*monthly && r.Period%12 != 0 {
			continue
		}
		fmt.Printf("%-6d %-14s %-14s %-14s\n", r.Period, usd(r.Interest), usd(r.Principal), usd(r.Balance))
	}
}

// mustLoadProperties reads either a YAML scenario or a JSON portfolio.
// The scenario is nil for JSON input.
func mustLoadProperties(cfgPath, dataPath string) ([]model.PropertyInput, *config.Scenario) {
	switch {
	case cfgPath != "":
		scen, props, err := config.LoadScenario(cfgPath)
		if err != nil {
			fatal(err)
		}
		return props, scen
	case dataPath != "":
		in, err := data.LoadPortfolioJSON(dataPath)
		if err != nil {
			fatal(err)
		}
		props, err := data.NormalizeProperties(in.Properties)
		if err != nil {
			fatal(err)
		}
		return props, nil
	default:
		fmt.Println("--config or --data is required")
		os.Exit(2)
		return nil, nil
	}
}

func pickProperty(props []model.PropertyInput, name string) (model.PropertyInput, error) {
	if name == "" {
		return props[0], nil
	}
	for _, p := range props {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return model.PropertyInput{}, fmt.Errorf("property %q not found", name)
}

// resolveSeed prefers --seed, then the scenario's seed, then the clock.
func resolveSeed(fs *flag.FlagSet, seed uint64, scen *config.Scenario) uint64 {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			set = true
		}
	})
	if set {
		return seed
	}
	if scen != nil && scen.Seed != nil {
		return *scen.Seed
	}
	return stochastic.ResolveSeed(nil)
}

func usd(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func mustMkdirFor(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
