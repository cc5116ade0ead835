package policy

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Observed replays the rates reported by the data source: lender APY from
// the supply rate, borrower rate from the borrow rate, exchange rate
// verbatim, and a utilization rate derived from totalBorrows/totalSupply
// expressed as a percentage. A market with zero total supply reports zero
// utilization rather than failing.
type Observed struct{}

func (Observed) Name() string { return "observed" }

func (Observed) Apply(ctx Context) (Signals, error) {
	m := ctx.Market

	utilization := decimal.Zero
	if !m.TotalSupply.IsZero() {
		utilization = m.TotalBorrows.Div(m.TotalSupply).Mul(hundred)
	}

	return Signals{
		LenderAPY:       m.SupplyRate,
		BorrowerRate:    m.BorrowRate,
		UtilizationRate: utilization,
		ExchangeRate:    m.ExchangeRate,
	}, nil
}
