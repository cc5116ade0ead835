package models

import (
	"time"

	"lendsim/internal/analysis"
	"lendsim/internal/model"
	"lendsim/internal/sim"

	"github.com/shopspring/decimal"
)

// SimulateResponse is returned by POST /api/v1/simulate and GET /api/v1/runs/:id.
type SimulateResponse struct {
	ID      string      `json:"id"`
	Status  string      `json:"status"`
	Summary RunSummary  `json:"summary"`
	Ledger  []LedgerRow `json:"ledger,omitempty"`
}

// RunSummary describes a finished simulation.
type RunSummary struct {
	Steps      int         `json:"steps"`
	Runs       int         `json:"runs"`
	CreatedAt  time.Time   `json:"created_at"`
	FinalState model.State `json:"final_state"`
}

// LedgerRow is one simulation step in wire form. Decimal fields marshal as
// strings, matching the subgraph's own representation.
type LedgerRow struct {
	Run  int `json:"run"`
	Step int `json:"step"`

	TotalBorrows decimal.Decimal `json:"total_borrows"`
	TotalSupply  decimal.Decimal `json:"total_supply"`

	LenderAPY       decimal.Decimal `json:"lender_apy"`
	BorrowerRate    decimal.Decimal `json:"borrower_rate"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
}

// LedgerRowFromSim converts an engine ledger row to its wire form.
func LedgerRowFromSim(r sim.StepRow) LedgerRow {
	return LedgerRow{
		Run:             r.Run,
		Step:            r.Step,
		TotalBorrows:    r.TotalBorrows,
		TotalSupply:     r.TotalSupply,
		LenderAPY:       r.LenderAPY,
		BorrowerRate:    r.BorrowerRate,
		UtilizationRate: r.UtilizationRate,
		ExchangeRate:    r.ExchangeRate,
	}
}

// LedgerResponse is returned by GET /api/v1/runs/:id/ledger.
type LedgerResponse struct {
	ID     string      `json:"id"`
	Ledger []LedgerRow `json:"ledger"`
}

// StreamMessage is one websocket frame of the ledger replay.
type StreamMessage struct {
	Type     string     `json:"type"` // "row" or "done"
	Progress float64    `json:"progress"`
	Row      *LedgerRow `json:"row,omitempty"`
}

// MarketRow is one market snapshot in wire form.
type MarketRow struct {
	Index           int             `json:"index"`
	BorrowRate      decimal.Decimal `json:"borrow_rate"`
	SupplyRate      decimal.Decimal `json:"supply_rate"`
	TotalBorrows    decimal.Decimal `json:"total_borrows"`
	TotalSupply     decimal.Decimal `json:"total_supply"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
}

// MarketsResponse is returned by GET /api/v1/markets.
type MarketsResponse struct {
	Markets []MarketRow      `json:"markets"`
	Summary analysis.Summary `json:"summary"`
}

// PolicyInfo describes a rate policy.
type PolicyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
