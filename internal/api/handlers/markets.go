package handlers

import (
	"net/http"

	"lendsim/internal/analysis"
	"lendsim/internal/api/models"
	"lendsim/internal/config"
	"lendsim/internal/data"
	"lendsim/internal/policy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MarketsHandler serves the current market table.
type MarketsHandler struct {
	cfg *config.Config
	log *zap.Logger

	newFetcher func(endpoint string) Fetcher
}

// NewMarketsHandler creates a markets handler backed by the subgraph client.
func NewMarketsHandler(cfg *config.Config, log *zap.Logger) *MarketsHandler {
	h := &MarketsHandler{cfg: cfg, log: log}
	h.newFetcher = func(endpoint string) Fetcher {
		if endpoint == "" {
			endpoint = cfg.Subgraph.Endpoint
		}
		return data.NewSubgraphClient(endpoint, cfg.Subgraph.Timeout(), log)
	}
	return h
}

// ListMarkets handles GET /api/v1/markets: fetch, reshape and summarize the
// current lending-market snapshots.
func (h *MarketsHandler) ListMarkets(c *gin.Context) {
	resp, err := h.newFetcher(c.Query("endpoint")).FetchMarkets(c.Request.Context())
	if err != nil {
		writeMarketsError(c, "subgraph", err)
		return
	}
	markets, err := data.Reshape(resp)
	if err != nil {
		writeMarketsError(c, "subgraph", err)
		return
	}

	rows := make([]models.MarketRow, len(markets))
	for i, m := range markets {
		// The observed policy owns the utilization definition, including the
		// zero-supply guard.
		sig, _ := policy.Observed{}.Apply(policy.Context{Market: m})
		rows[i] = models.MarketRow{
			Index:           m.Index,
			BorrowRate:      m.BorrowRate,
			SupplyRate:      m.SupplyRate,
			TotalBorrows:    m.TotalBorrows,
			TotalSupply:     m.TotalSupply,
			ExchangeRate:    m.ExchangeRate,
			UtilizationRate: sig.UtilizationRate,
		}
	}

	c.JSON(http.StatusOK, models.MarketsResponse{
		Markets: rows,
		Summary: analysis.Summarize(markets),
	})
}
