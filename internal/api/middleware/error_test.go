package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lendsim/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		panicWith interface{}
		wantMsg   string
	}{
		{"string panic", "subgraph client not initialised", "subgraph client not initialised"},
		{"error panic", errors.New("nil run store"), "nil run store"},
		{"opaque panic", 42, "An unexpected error occurred"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler())
			router.GET("/boom", func(c *gin.Context) {
				panic(tc.panicWith)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

			require.Equal(t, http.StatusInternalServerError, w.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
			assert.Equal(t, tc.wantMsg, resp.Error.Message)
		})
	}
}
