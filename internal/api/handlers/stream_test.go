package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lendsim/internal/api/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamLedgerReplaysRows(t *testing.T) {
	r := setupRouter(t, stubFetcher{resp: stubResponse()})
	srv := httptest.NewServer(r)
	defer srv.Close()

	w := doJSON(r, http.MethodPost, "/api/v1/simulate", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/runs/" + created.ID + "/stream?delay_ms=0"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	var rows int
	for {
		var msg models.StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if msg.Type == "done" {
			assert.Equal(t, float64(100), msg.Progress)
			break
		}
		require.Equal(t, "row", msg.Type)
		require.NotNil(t, msg.Row)
		assert.Equal(t, rows, msg.Row.Step)
		rows++
	}
	assert.Equal(t, 2, rows)
}

func TestStreamLedgerUnknownRun(t *testing.T) {
	r := setupRouter(t, nil)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/runs/unknown/stream"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamLedgerRejectsBadDelay(t *testing.T) {
	r := setupRouter(t, stubFetcher{resp: stubResponse()})

	w := doJSON(r, http.MethodPost, "/api/v1/simulate", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodGet, "/api/v1/runs/"+created.ID+"/stream?delay_ms=5000", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
