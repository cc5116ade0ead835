package data

import (
	"encoding/json"
	"os"

	"lendsim/internal/model"
)

// LoadMarketsJSON reads a saved subgraph response from disk. Used by the CLI
// and tests to run simulations without a network fetch.
func LoadMarketsJSON(path string) (*model.MarketsResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.MarketsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
