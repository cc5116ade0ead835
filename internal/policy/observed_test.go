package policy

import (
	"testing"

	"lendsim/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestObservedPassThrough(t *testing.T) {
	m := model.Market{
		BorrowRate:   dec("0.05"),
		SupplyRate:   dec("0.02"),
		TotalBorrows: dec("500"),
		TotalSupply:  dec("1000"),
		ExchangeRate: dec("0.02008"),
	}

	sig, err := Observed{}.Apply(Context{Step: 3, Market: m})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if !sig.LenderAPY.Equal(m.SupplyRate) {
		t.Errorf("lender APY = %s, want %s", sig.LenderAPY, m.SupplyRate)
	}
	if !sig.BorrowerRate.Equal(m.BorrowRate) {
		t.Errorf("borrower rate = %s, want %s", sig.BorrowerRate, m.BorrowRate)
	}
	if !sig.ExchangeRate.Equal(m.ExchangeRate) {
		t.Errorf("exchange rate = %s, want %s", sig.ExchangeRate, m.ExchangeRate)
	}
	if !sig.UtilizationRate.Equal(dec("50")) {
		t.Errorf("utilization = %s, want 50", sig.UtilizationRate)
	}
}

func TestObservedZeroSupply(t *testing.T) {
	m := model.Market{
		BorrowRate:   dec("0.05"),
		SupplyRate:   dec("0.02"),
		TotalBorrows: dec("500"),
		TotalSupply:  decimal.Zero,
		ExchangeRate: dec("1"),
	}

	sig, err := Observed{}.Apply(Context{Market: m})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !sig.UtilizationRate.IsZero() {
		t.Errorf("utilization with zero supply = %s, want 0", sig.UtilizationRate)
	}
}

func TestObservedUtilizationPercentage(t *testing.T) {
	cases := []struct {
		borrows, supply, want string
	}{
		{"1", "4", "25"},
		{"3", "3", "100"},
		{"0", "100", "0"},
	}
	for _, tc := range cases {
		m := model.Market{
			TotalBorrows: dec(tc.borrows),
			TotalSupply:  dec(tc.supply),
		}
		sig, err := Observed{}.Apply(Context{Market: m})
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if !sig.UtilizationRate.Equal(dec(tc.want)) {
			t.Errorf("utilization(%s/%s) = %s, want %s", tc.borrows, tc.supply, sig.UtilizationRate, tc.want)
		}
	}
}
