package main

import (
	"flag"
	"fmt"
	"os"

	"lendsim/internal/api/handlers"
	"lendsim/internal/api/middleware"
	"lendsim/internal/config"
	"lendsim/internal/logging"
	"lendsim/internal/metrics"
	"lendsim/internal/runstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Environment overrides, deployment-friendly.
	if port := os.Getenv("API_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if staticDir := os.Getenv("STATIC_DIR"); staticDir != "" {
		cfg.Server.StaticDir = staticDir
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	store := runstore.NewStore(0)
	defer store.Close()

	simulateHandler := handlers.NewSimulateHandler(cfg, store, log)
	runsHandler := handlers.NewRunsHandler(cfg, store, log)
	marketsHandler := handlers.NewMarketsHandler(cfg, log)
	policiesHandler := handlers.NewPoliciesHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api/v1")
	{
		api.GET("/markets", marketsHandler.ListMarkets)
		api.GET("/policies", policiesHandler.ListPolicies)

		api.POST("/simulate", simulateHandler.RunSimulation)
		api.GET("/runs/:id", runsHandler.GetRun)
		api.GET("/runs/:id/ledger", runsHandler.GetLedger)
		api.GET("/runs/:id/chart.png", runsHandler.ChartPNG)
		api.GET("/runs/:id/stream", runsHandler.StreamLedger)
	}

	// Serve the dashboard page (if present).
	staticDir := cfg.Server.StaticDir
	if _, err := os.Stat(staticDir); err == nil {
		router.StaticFile("/", staticDir+"/index.html")
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Info("serving dashboard", zap.String("static_dir", staticDir))
	} else {
		log.Warn("static dir not found, dashboard disabled", zap.String("static_dir", staticDir))
	}

	addr := ":" + cfg.Server.Port
	log.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
