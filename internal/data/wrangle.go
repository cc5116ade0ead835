package data

import (
	"errors"
	"fmt"
	"strings"

	"lendsim/internal/model"

	"github.com/shopspring/decimal"
)

// Reshape converts the string-typed numeric columns of a raw subgraph
// response into parsed Market rows. A column that does not parse as a number
// is a hard error naming the row and field.
func Reshape(resp *model.MarketsResponse) ([]model.Market, error) {
	if resp == nil {
		return nil, errors.New("nil response")
	}
	if len(resp.Data.Markets) == 0 {
		return nil, errors.New("subgraph returned no markets")
	}

	markets := make([]model.Market, 0, len(resp.Data.Markets))
	for i, raw := range resp.Data.Markets {
		m, err := parseMarket(i, raw)
		if err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, nil
}

func parseMarket(index int, raw model.RawMarket) (model.Market, error) {
	m := model.Market{Index: index}

	cols := []struct {
		field string
		value string
		dst   *decimal.Decimal
	}{
		{"borrowRate", raw.BorrowRate, &m.BorrowRate},
		{"supplyRate", raw.SupplyRate, &m.SupplyRate},
		{"totalBorrows", raw.TotalBorrows, &m.TotalBorrows},
		{"totalSupply", raw.TotalSupply, &m.TotalSupply},
		{"exchangeRate", raw.ExchangeRate, &m.ExchangeRate},
	}
	for _, col := range cols {
		d, err := decimal.NewFromString(strings.TrimSpace(col.value))
		if err != nil {
			return model.Market{}, fmt.Errorf("market %d: field %s: cannot parse %q as a number", index, col.field, col.value)
		}
		*col.dst = d
	}
	return m, nil
}
