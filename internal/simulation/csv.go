package simulation

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteLedgerCSV writes the monthly ledger of a property run to path.
func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeLedgerCSV(f, ledger)
}

func EncodeLedgerCSV(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"month",
		"year",
		"income",
		"vacancy_loss",
		"expenses",
		"maintenance",
		"noi",
		"debt_service",
		"operating_cf",
		"sale_proceeds",
		"cash_flow",
		"cumulative_cf",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Year),
			fmtFloat(r.Income),
			fmtFloat(r.VacancyLoss),
			fmtFloat(r.Expenses),
			fmtFloat(r.Maintenance),
			fmtFloat(r.NOI),
			fmtFloat(r.DebtService),
			fmtFloat(r.OperatingCF),
			fmtFloat(r.SaleProceeds),
			fmtFloat(r.CashFlow),
			fmtFloat(r.CumulativeCF),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteBandsCSV writes expected/p10/p90 portfolio bands to path.
func WriteBandsCSV(path string, bands []BandRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeBandsCSV(f, bands)
}

func EncodeBandsCSV(out io.Writer, bands []BandRow) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"month", "expected_cf", "p10_cf", "p90_cf"}); err != nil {
		return err
	}
	for _, b := range bands {
		row := []string{
			strconv.Itoa(b.Month),
			fmtFloat(b.Expected),
			fmtFloat(b.P10),
			fmtFloat(b.P90),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
