// Package policy defines per-step rate policies for the simulation.
package policy

import (
	"lendsim/internal/model"

	"github.com/shopspring/decimal"
)

// Context is everything a policy can see for one step.
type Context struct {
	Run  int
	Step int

	// Market is the input row whose index equals the current step.
	Market model.Market

	// Prev is the state left by the previous step (zero at step 0).
	Prev model.State
}

// Signals is the set of rate signals a policy emits for one step. The engine
// writes them into the next state verbatim.
type Signals struct {
	LenderAPY       decimal.Decimal
	BorrowerRate    decimal.Decimal
	UtilizationRate decimal.Decimal
	ExchangeRate    decimal.Decimal
}

// Policy produces rate signals from a step context.
type Policy interface {
	Name() string
	Apply(ctx Context) (Signals, error)
}
