// Package render draws simulation output as a line chart.
package render

import (
	"bytes"
	"fmt"

	"lendsim/internal/sim"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	chart.ColorOrange,
}

// LedgerPNG renders the four state series of one run against the time step
// and returns the encoded PNG.
func LedgerPNG(res *sim.Result, run int) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("nil result")
	}
	rows := res.RunLedger(run)
	if len(rows) == 0 {
		return nil, fmt.Errorf("run %d has no ledger rows", run)
	}

	xs := make([]float64, len(rows))
	lender := make([]float64, len(rows))
	borrower := make([]float64, len(rows))
	utilization := make([]float64, len(rows))
	exchange := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(r.Step)
		lender[i] = r.LenderAPY.InexactFloat64()
		borrower[i] = r.BorrowerRate.InexactFloat64()
		utilization[i] = r.UtilizationRate.InexactFloat64()
		exchange[i] = r.ExchangeRate.InexactFloat64()
	}

	graph := chart.Chart{
		Width:  1024,
		Height: 512,
		XAxis:  chart.XAxis{Name: "Time Step"},
		YAxis:  chart.YAxis{Name: "Value"},
		Series: []chart.Series{
			lineSeries("lender_APY", xs, lender, 0),
			lineSeries("borrower_rate", xs, borrower, 1),
			lineSeries("utilization_rate", xs, utilization, 2),
			lineSeries("exchange_rate", xs, exchange, 3),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func lineSeries(name string, xs, ys []float64, color int) chart.Series {
	// go-chart needs at least two X values per series.
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: seriesColors[color%len(seriesColors)],
			StrokeWidth: 2,
		},
	}
}
