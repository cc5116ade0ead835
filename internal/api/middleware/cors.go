package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS adapts the rs/cors handler for gin. The dashboard is served from the
// same origin; permissive CORS keeps local front-end development workable.
func CORS() gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return func(gc *gin.Context) {
		c.HandlerFunc(gc.Writer, gc.Request)
		if gc.Request.Method == http.MethodOptions {
			gc.AbortWithStatus(http.StatusNoContent)
			return
		}
		gc.Next()
	}
}
