package model

import "github.com/shopspring/decimal"

// RawMarket is one market row exactly as the subgraph returns it.
// Every numeric column arrives as a JSON string.
//
// Example:
// {
//   "borrowRate": "0.051673657442699",
//   "supplyRate": "0.026040361837621",
//   "totalBorrows": "142569211.364243",
//   "totalSupply": "1287491283.01742",
//   "exchangeRate": "0.020089764805056"
// }
type RawMarket struct {
	BorrowRate   string `json:"borrowRate"`
	SupplyRate   string `json:"supplyRate"`
	TotalBorrows string `json:"totalBorrows"`
	TotalSupply  string `json:"totalSupply"`
	ExchangeRate string `json:"exchangeRate"`
}

// MarketsResponse matches the GraphQL response envelope for the markets query.
type MarketsResponse struct {
	Data struct {
		Markets []RawMarket `json:"markets"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// GraphQLError is one entry of the GraphQL-level errors array. A 200 response
// can still carry these instead of data.
type GraphQLError struct {
	Message string `json:"message"`
}

// Market is a reshaped snapshot with all numeric columns parsed.
// Index is the row's position in the response and doubles as its identity.
type Market struct {
	Index int

	BorrowRate   decimal.Decimal
	SupplyRate   decimal.Decimal
	TotalBorrows decimal.Decimal
	TotalSupply  decimal.Decimal
	ExchangeRate decimal.Decimal
}
