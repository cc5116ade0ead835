package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"lendsim/internal/api/models"
	"lendsim/internal/config"
	"lendsim/internal/data"
	"lendsim/internal/metrics"
	"lendsim/internal/model"
	"lendsim/internal/policy"
	"lendsim/internal/runstore"
	"lendsim/internal/sim"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Fetcher fetches a raw market table. Satisfied by data.SubgraphClient;
// replaced by stubs in tests.
type Fetcher interface {
	FetchMarkets(ctx context.Context) (*model.MarketsResponse, error)
}

// SimulateHandler handles simulation requests.
type SimulateHandler struct {
	cfg   *config.Config
	store *runstore.Store
	log   *zap.Logger

	// newFetcher builds the upstream client; endpoint "" means the
	// configured default.
	newFetcher func(endpoint string) Fetcher
}

// NewSimulateHandler creates a simulate handler backed by the subgraph client.
func NewSimulateHandler(cfg *config.Config, store *runstore.Store, log *zap.Logger) *SimulateHandler {
	h := &SimulateHandler{cfg: cfg, store: store, log: log}
	h.newFetcher = func(endpoint string) Fetcher {
		if endpoint == "" {
			endpoint = cfg.Subgraph.Endpoint
		}
		return data.NewSubgraphClient(endpoint, cfg.Subgraph.Timeout(), log)
	}
	return h
}

// RunSimulation handles POST /api/v1/simulate.
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	runs := req.Runs
	if runs == 0 {
		runs = h.cfg.Sim.Runs
	}
	if runs < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: fmt.Sprintf("runs must be >= 1, got %d", runs),
			},
		})
		return
	}
	if req.Limit < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: fmt.Sprintf("limit_markets must be >= 0, got %d", req.Limit),
			},
		})
		return
	}

	markets, err := h.resolveMarkets(c.Request.Context(), req.Source)
	if err != nil {
		writeMarketsError(c, req.Source.Type, err)
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = h.cfg.Sim.LimitMarkets
	}
	if limit > 0 && limit < len(markets) {
		markets = markets[:limit]
	}

	engine := sim.New()
	res, err := engine.Run(markets, policy.Observed{}, runs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	metrics.SimulationsTotal.Inc()
	metrics.SimulationSteps.Observe(float64(res.Steps))

	stored := h.store.Put(res)
	h.log.Info("simulation completed",
		zap.String("run_id", stored.ID),
		zap.Int("steps", res.Steps),
		zap.Int("runs", res.Runs))

	resp := models.SimulateResponse{
		ID:      stored.ID,
		Status:  "completed",
		Summary: summaryFromRun(stored),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = convertLedger(res.Ledger)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SimulateHandler) resolveMarkets(ctx context.Context, src models.SourceConfig) ([]model.Market, error) {
	switch src.Type {
	case "", "subgraph":
		resp, err := h.newFetcher(src.Endpoint).FetchMarkets(ctx)
		if err != nil {
			return nil, err
		}
		return data.Reshape(resp)
	case "inline":
		resp := &model.MarketsResponse{}
		for _, m := range src.Markets {
			resp.Data.Markets = append(resp.Data.Markets, model.RawMarket{
				BorrowRate:   m.BorrowRate,
				SupplyRate:   m.SupplyRate,
				TotalBorrows: m.TotalBorrows,
				TotalSupply:  m.TotalSupply,
				ExchangeRate: m.ExchangeRate,
			})
		}
		return data.Reshape(resp)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", src.Type)
	}
}

// writeMarketsError maps fetch/reshape failures onto HTTP statuses: upstream
// faults are gateway errors, inline data faults are the caller's.
func writeMarketsError(c *gin.Context, sourceType string, err error) {
	var sgErr *data.SubgraphError
	if errors.As(err, &sgErr) {
		status := http.StatusBadGateway
		if sgErr.StatusCode == http.StatusTooManyRequests {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    sgErr.Code,
				Message: sgErr.Message,
				Details: map[string]interface{}{
					"status_code": sgErr.StatusCode,
					"retry_after": sgErr.RetryAfter,
				},
			},
		})
		return
	}

	if sourceType == "inline" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_MARKET_DATA",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "DATA_FETCH_ERROR",
			Message: err.Error(),
		},
	})
}

func summaryFromRun(run *runstore.StoredRun) models.RunSummary {
	return models.RunSummary{
		Steps:      run.Result.Steps,
		Runs:       run.Result.Runs,
		CreatedAt:  run.CreatedAt,
		FinalState: run.Result.FinalState,
	}
}

func convertLedger(ledger []sim.StepRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(ledger))
	for i, r := range ledger {
		out[i] = models.LedgerRowFromSim(r)
	}
	return out
}
