package sim

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, ledger []StepRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"run",
		"step",
		"total_borrows",
		"total_supply",
		"lender_apy",
		"borrower_rate",
		"utilization_rate",
		"exchange_rate",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Run),
			strconv.Itoa(r.Step),
			r.TotalBorrows.String(),
			r.TotalSupply.String(),
			r.LenderAPY.String(),
			r.BorrowerRate.String(),
			r.UtilizationRate.String(),
			r.ExchangeRate.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
