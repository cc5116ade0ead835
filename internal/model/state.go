package model

import "github.com/shopspring/decimal"

// State holds the four simulated variables. Each step overwrites every field
// from the current market row; nothing accumulates across steps.
type State struct {
	LenderAPY       decimal.Decimal `json:"lender_apy"`
	BorrowerRate    decimal.Decimal `json:"borrower_rate"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
}
