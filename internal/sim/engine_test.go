package sim

import (
	"errors"
	"testing"

	"lendsim/internal/model"
	"lendsim/internal/policy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testMarkets() []model.Market {
	return []model.Market{
		{Index: 0, BorrowRate: dec("0.05"), SupplyRate: dec("0.02"), TotalBorrows: dec("500"), TotalSupply: dec("1000"), ExchangeRate: dec("0.0201")},
		{Index: 1, BorrowRate: dec("0.07"), SupplyRate: dec("0.03"), TotalBorrows: dec("200"), TotalSupply: dec("0"), ExchangeRate: dec("0.0202")},
		{Index: 2, BorrowRate: dec("0.04"), SupplyRate: dec("0.01"), TotalBorrows: dec("100"), TotalSupply: dec("400"), ExchangeRate: dec("0.0203")},
	}
}

func TestRunStepsEqualRows(t *testing.T) {
	markets := testMarkets()
	res, err := New().Run(markets, policy.Observed{}, 1)
	require.NoError(t, err)

	assert.Equal(t, len(markets), res.Steps)
	assert.Len(t, res.Ledger, len(markets))
}

func TestRunStatePassThrough(t *testing.T) {
	markets := testMarkets()
	res, err := New().Run(markets, policy.Observed{}, 1)
	require.NoError(t, err)

	for i, row := range res.Ledger {
		m := markets[i]
		assert.True(t, row.LenderAPY.Equal(m.SupplyRate), "step %d lender APY", i)
		assert.True(t, row.BorrowerRate.Equal(m.BorrowRate), "step %d borrower rate", i)
		assert.True(t, row.ExchangeRate.Equal(m.ExchangeRate), "step %d exchange rate", i)
	}

	// Zero-supply market at step 1.
	assert.True(t, res.Ledger[1].UtilizationRate.IsZero())
	assert.True(t, res.Ledger[0].UtilizationRate.Equal(dec("50")))
	assert.True(t, res.Ledger[2].UtilizationRate.Equal(dec("25")))

	// Final state matches the last row.
	last := markets[len(markets)-1]
	assert.True(t, res.FinalState.LenderAPY.Equal(last.SupplyRate))
	assert.True(t, res.FinalState.ExchangeRate.Equal(last.ExchangeRate))
}

func TestRunMultipleRunsAreIdenticalReplays(t *testing.T) {
	markets := testMarkets()
	res, err := New().Run(markets, policy.Observed{}, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Runs)
	assert.Len(t, res.Ledger, 3*len(markets))

	first := res.RunLedger(1)
	for run := 2; run <= 3; run++ {
		rows := res.RunLedger(run)
		require.Len(t, rows, len(first))
		for i := range rows {
			assert.Equal(t, first[i].Step, rows[i].Step)
			assert.True(t, rows[i].UtilizationRate.Equal(first[i].UtilizationRate))
			assert.True(t, rows[i].LenderAPY.Equal(first[i].LenderAPY))
		}
	}
}

func TestRunInputValidation(t *testing.T) {
	markets := testMarkets()

	_, err := New().Run(nil, policy.Observed{}, 1)
	assert.Error(t, err)

	_, err = New().Run(markets, nil, 1)
	assert.Error(t, err)

	_, err = New().Run(markets, policy.Observed{}, 0)
	assert.Error(t, err)
}

type failingPolicy struct{ failAt int }

func (p failingPolicy) Name() string { return "failing" }

func (p failingPolicy) Apply(ctx policy.Context) (policy.Signals, error) {
	if ctx.Step == p.failAt {
		return policy.Signals{}, errors.New("boom")
	}
	return policy.Signals{}, nil
}

func TestRunWrapsFailingStep(t *testing.T) {
	_, err := New().Run(testMarkets(), failingPolicy{failAt: 2}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")
	assert.Contains(t, err.Error(), "boom")
}
