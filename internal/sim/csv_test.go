package sim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"lendsim/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLedgerCSV(t *testing.T) {
	res, err := New().Run(testMarkets(), policy.Observed{}, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, WriteLedgerCSV(path, res.Ledger))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+len(res.Ledger))

	assert.Equal(t, []string{
		"run", "step", "total_borrows", "total_supply",
		"lender_apy", "borrower_rate", "utilization_rate", "exchange_rate",
	}, records[0])

	// Step 0: utilization 50%.
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "0", records[1][1])
	assert.Equal(t, "50", records[1][6])
}
