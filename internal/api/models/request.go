package models

// SimulateRequest is the body of POST /api/v1/simulate. An empty body runs
// with the server defaults against the configured subgraph.
type SimulateRequest struct {
	Source  SourceConfig    `json:"source,omitempty"`
	Runs    int             `json:"runs,omitempty"`          // default: server config
	Limit   int             `json:"limit_markets,omitempty"` // 0 = all rows
	Options SimulateOptions `json:"options,omitempty"`
}

// SourceConfig defines where the market table comes from.
type SourceConfig struct {
	// Type is "subgraph" (default) or "inline".
	Type string `json:"type,omitempty"`

	// Endpoint overrides the configured subgraph endpoint.
	Endpoint string `json:"endpoint,omitempty"`

	// Markets supplies the table directly when Type is "inline". Values are
	// strings, matching the subgraph wire format.
	Markets []InlineMarket `json:"markets,omitempty"`
}

// InlineMarket mirrors the raw subgraph market row.
type InlineMarket struct {
	BorrowRate   string `json:"borrowRate"`
	SupplyRate   string `json:"supplyRate"`
	TotalBorrows string `json:"totalBorrows"`
	TotalSupply  string `json:"totalSupply"`
	ExchangeRate string `json:"exchangeRate"`
}

// SimulateOptions contains optional simulate parameters.
type SimulateOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}
