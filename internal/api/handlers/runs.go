package handlers

import (
	"net/http"
	"strconv"
	"time"

	"lendsim/internal/api/models"
	"lendsim/internal/config"
	"lendsim/internal/metrics"
	"lendsim/internal/render"
	"lendsim/internal/runstore"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxStreamDelay bounds the per-row delay a client may request.
const maxStreamDelay = time.Second

var upgrader = websocket.Upgrader{
	// The dashboard may be opened from file:// during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RunsHandler serves stored simulation runs.
type RunsHandler struct {
	cfg   *config.Config
	store *runstore.Store
	log   *zap.Logger
}

// NewRunsHandler creates a runs handler.
func NewRunsHandler(cfg *config.Config, store *runstore.Store, log *zap.Logger) *RunsHandler {
	return &RunsHandler{cfg: cfg, store: store, log: log}
}

// GetRun handles GET /api/v1/runs/:id.
func (h *RunsHandler) GetRun(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SimulateResponse{
		ID:      run.ID,
		Status:  "completed",
		Summary: summaryFromRun(run),
	})
}

// GetLedger handles GET /api/v1/runs/:id/ledger.
func (h *RunsHandler) GetLedger(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.LedgerResponse{
		ID:     run.ID,
		Ledger: convertLedger(run.Result.Ledger),
	})
}

// ChartPNG handles GET /api/v1/runs/:id/chart.png. It renders the four state
// series of the first run as a line chart.
func (h *RunsHandler) ChartPNG(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	png, err := render.LedgerPNG(run.Result, 1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RENDER_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// StreamLedger handles GET /api/v1/runs/:id/stream. It upgrades to a
// websocket and replays the ledger one row per delay tick, so the dashboard
// chart fills in progressively. The replay stops as soon as the client
// disconnects or the request context is cancelled.
func (h *RunsHandler) StreamLedger(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}

	delay := h.cfg.Sim.StreamDelay()
	if raw := c.Query("delay_ms"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 || time.Duration(ms)*time.Millisecond > maxStreamDelay {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "delay_ms must be an integer between 0 and 1000",
				},
			})
			return
		}
		delay = time.Duration(ms) * time.Millisecond
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	metrics.StreamClients.Inc()
	defer metrics.StreamClients.Dec()

	ledger := run.Result.Ledger
	total := len(ledger)
	ctx := c.Request.Context()

	for i, row := range ledger {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}

		wire := models.LedgerRowFromSim(row)
		msg := models.StreamMessage{
			Type:     "row",
			Progress: float64(i+1) / float64(total) * 100,
			Row:      &wire,
		}
		if err := conn.WriteJSON(msg); err != nil {
			// Client went away.
			return
		}
	}

	_ = conn.WriteJSON(models.StreamMessage{Type: "done", Progress: 100})
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *RunsHandler) lookup(c *gin.Context) (*runstore.StoredRun, bool) {
	id := c.Param("id")
	run, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_NOT_FOUND",
				Message: "no stored run with id " + id,
			},
		})
		return nil, false
	}
	return run, true
}
