package sim

import (
	"lendsim/internal/model"

	"github.com/shopspring/decimal"
)

// StepRow is one step of simulation output.
// This is the primary artifact for "what happened" in a run.
type StepRow struct {
	Run  int
	Step int

	// Inputs from the market row.
	TotalBorrows decimal.Decimal
	TotalSupply  decimal.Decimal

	// State after the step.
	LenderAPY       decimal.Decimal
	BorrowerRate    decimal.Decimal
	UtilizationRate decimal.Decimal
	ExchangeRate    decimal.Decimal
}

type Result struct {
	Ledger []StepRow

	// Steps is the number of steps per run; it always equals the number of
	// input rows.
	Steps int
	Runs  int

	FinalState model.State
}

// RunLedger returns the ledger rows belonging to one run (1-based).
func (r *Result) RunLedger(run int) []StepRow {
	out := make([]StepRow, 0, r.Steps)
	for _, row := range r.Ledger {
		if row.Run == run {
			out = append(out, row)
		}
	}
	return out
}
