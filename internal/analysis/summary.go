// Package analysis computes aggregate statistics over a market table.
package analysis

import (
	"lendsim/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary aggregates a reshaped market table for display alongside the raw
// rows.
type Summary struct {
	Markets        int             `json:"markets"`
	TotalBorrows   decimal.Decimal `json:"total_borrows"`
	TotalSupply    decimal.Decimal `json:"total_supply"`
	AvgUtilization decimal.Decimal `json:"avg_utilization"`
	MaxUtilization decimal.Decimal `json:"max_utilization"`
}

// Summarize computes totals and utilization stats. Utilization uses the same
// zero-supply guard as the simulation: a market with zero supply counts as 0%.
func Summarize(markets []model.Market) Summary {
	s := Summary{Markets: len(markets)}
	if len(markets) == 0 {
		return s
	}

	sumUtil := decimal.Zero
	for _, m := range markets {
		s.TotalBorrows = s.TotalBorrows.Add(m.TotalBorrows)
		s.TotalSupply = s.TotalSupply.Add(m.TotalSupply)

		util := decimal.Zero
		if !m.TotalSupply.IsZero() {
			util = m.TotalBorrows.Div(m.TotalSupply).Mul(hundred)
		}
		sumUtil = sumUtil.Add(util)
		if util.GreaterThan(s.MaxUtilization) {
			s.MaxUtilization = util
		}
	}
	s.AvgUtilization = sumUtil.Div(decimal.NewFromInt(int64(len(markets))))
	return s
}
