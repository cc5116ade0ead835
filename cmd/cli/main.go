package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lendsim/internal/analysis"
	"lendsim/internal/data"
	"lendsim/internal/model"
	"lendsim/internal/policy"
	"lendsim/internal/render"
	"lendsim/internal/sim"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "fetch":
		cmdFetch(os.Args[2:])
	case "simulate":
		cmdSimulate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli fetch --out markets.json")
	fmt.Println("  cli simulate --data markets.json --out results/ledger.csv --chart results/chart.png")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - fetch queries the Compound v2 subgraph and saves the raw response")
	fmt.Println("  - simulate runs the observed-rates replay over a saved or freshly fetched table")
}

func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	endpoint := fs.String("endpoint", "", "Subgraph endpoint (default: hosted compound-v2)")
	outPath := fs.String("out", "", "Optional: save the raw JSON response")
	timeout := fs.Duration("timeout", 30*time.Second, "Request timeout")
	_ = fs.Parse(args)

	client := data.NewSubgraphClient(*endpoint, *timeout, zap.NewNop())
	resp, err := client.FetchMarkets(context.Background())
	if err != nil {
		panic(err)
	}
	markets, err := data.Reshape(resp)
	if err != nil {
		panic(err)
	}

	if *outPath != "" {
		raw, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(*outPath, raw, 0o644); err != nil {
			panic(err)
		}
		fmt.Printf("Saved raw response to %s\n", *outPath)
	}

	s := analysis.Summarize(markets)
	fmt.Printf("Fetched %d markets\n", s.Markets)
	fmt.Printf("Total borrowed=%s  Total supplied=%s\n", s.TotalBorrows.StringFixed(2), s.TotalSupply.StringFixed(2))
	fmt.Printf("Utilization avg=%s%%  max=%s%%\n", s.AvgUtilization.StringFixed(2), s.MaxUtilization.StringFixed(2))
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to a saved subgraph JSON response (fetches live when empty)")
	endpoint := fs.String("endpoint", "", "Subgraph endpoint when fetching live")
	runs := fs.Int("runs", 1, "Number of monte-carlo replays")
	n := fs.Int("n", 0, "Optional: limit to first N markets (0=all)")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	chartPath := fs.String("chart", "", "Optional: output chart PNG path")
	timeout := fs.Duration("timeout", 30*time.Second, "Request timeout when fetching live")
	_ = fs.Parse(args)

	var resp *model.MarketsResponse
	var err error
	if *dataPath != "" {
		resp, err = data.LoadMarketsJSON(*dataPath)
	} else {
		client := data.NewSubgraphClient(*endpoint, *timeout, zap.NewNop())
		resp, err = client.FetchMarkets(context.Background())
	}
	if err != nil {
		panic(err)
	}

	markets, err := data.Reshape(resp)
	if err != nil {
		panic(err)
	}
	if *n > 0 && *n < len(markets) {
		markets = markets[:*n]
	}

	engine := sim.New()
	res, err := engine.Run(markets, policy.Observed{}, *runs)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := sim.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)

	if *chartPath != "" {
		png, err := render.LedgerPNG(res, 1)
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(*chartPath, png, 0o644); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote chart to %s\n", *chartPath)
	}

	fmt.Printf("Steps=%d Runs=%d\n", res.Steps, res.Runs)
	fmt.Printf("Final state: lender_APY=%s borrower_rate=%s utilization=%s%% exchange_rate=%s\n",
		res.FinalState.LenderAPY,
		res.FinalState.BorrowerRate,
		res.FinalState.UtilizationRate.StringFixed(2),
		res.FinalState.ExchangeRate)
}
