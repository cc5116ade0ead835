package sim

import (
	"fmt"

	"lendsim/internal/model"
	"lendsim/internal/policy"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes a simulation over a market snapshot table: one step per row,
// in row order, replayed for the requested number of runs. Each step applies
// the policy to the current row and overwrites the whole state with its
// signals.
func (e *Engine) Run(markets []model.Market, pol policy.Policy, runs int) (*Result, error) {
	if pol == nil {
		return nil, fmt.Errorf("policy is nil")
	}
	if len(markets) == 0 {
		return nil, fmt.Errorf("no market rows")
	}
	if runs < 1 {
		return nil, fmt.Errorf("runs must be >= 1, got %d", runs)
	}

	ledger := make([]StepRow, 0, runs*len(markets))
	var final model.State

	for run := 1; run <= runs; run++ {
		var state model.State
		for step, m := range markets {
			sig, err := pol.Apply(policy.Context{
				Run:    run,
				Step:   step,
				Market: m,
				Prev:   state,
			})
			if err != nil {
				return nil, fmt.Errorf("run %d step %d: %w", run, step, err)
			}

			state = model.State{
				LenderAPY:       sig.LenderAPY,
				BorrowerRate:    sig.BorrowerRate,
				UtilizationRate: sig.UtilizationRate,
				ExchangeRate:    sig.ExchangeRate,
			}

			ledger = append(ledger, StepRow{
				Run:  run,
				Step: step,

				TotalBorrows: m.TotalBorrows,
				TotalSupply:  m.TotalSupply,

				LenderAPY:       state.LenderAPY,
				BorrowerRate:    state.BorrowerRate,
				UtilizationRate: state.UtilizationRate,
				ExchangeRate:    state.ExchangeRate,
			})
		}
		final = state
	}

	return &Result{
		Ledger:     ledger,
		Steps:      len(markets),
		Runs:       runs,
		FinalState: final,
	}, nil
}
