package render

import (
	"bytes"
	"testing"

	"lendsim/internal/sim"

	"github.com/shopspring/decimal"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func row(run, step int, util string) sim.StepRow {
	u, _ := decimal.NewFromString(util)
	return sim.StepRow{
		Run:             run,
		Step:            step,
		LenderAPY:       decimal.NewFromFloat(0.02),
		BorrowerRate:    decimal.NewFromFloat(0.05),
		UtilizationRate: u,
		ExchangeRate:    decimal.NewFromFloat(0.0201),
	}
}

func TestLedgerPNG(t *testing.T) {
	res := &sim.Result{
		Ledger: []sim.StepRow{row(1, 0, "50"), row(1, 1, "25"), row(1, 2, "75")},
		Steps:  3,
		Runs:   1,
	}

	png, err := LedgerPNG(res, 1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestLedgerPNGSingleRow(t *testing.T) {
	res := &sim.Result{
		Ledger: []sim.StepRow{row(1, 0, "50")},
		Steps:  1,
		Runs:   1,
	}

	png, err := LedgerPNG(res, 1)
	if err != nil {
		t.Fatalf("render single row: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestLedgerPNGErrors(t *testing.T) {
	if _, err := LedgerPNG(nil, 1); err == nil {
		t.Error("nil result should error")
	}

	res := &sim.Result{Ledger: []sim.StepRow{row(1, 0, "50")}, Steps: 1, Runs: 1}
	if _, err := LedgerPNG(res, 2); err == nil {
		t.Error("missing run should error")
	}
}
