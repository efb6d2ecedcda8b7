// SPDX-License-Identifier: AGPL-3.0-only
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fluffyriot/peerbench/internal/api/handlers"
	"github.com/fluffyriot/peerbench/internal/benchmark"
	"github.com/fluffyriot/peerbench/internal/config"
	"github.com/fluffyriot/peerbench/internal/discovery"
	"github.com/fluffyriot/peerbench/internal/insights"
	"github.com/fluffyriot/peerbench/internal/middleware"
	"github.com/fluffyriot/peerbench/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalln(err)
	}

	dbQueries, dbConn, err := config.LoadDatabase(cfg)
	if err != nil {
		// The API stays up in degraded mode; handlers report the outage.
		logrus.Errorf("Database initialization failed: %v", err)
		cfg.DBInitErr = err
	}

	discoveryClient := discovery.NewClient(cfg.DiscoveryAPIURL, cfg.YouTubeAPIKey, 60*time.Second)
	insightsClient := insights.NewClient(cfg.InsightsAPIURL, cfg.InsightsAPIKey, 60*time.Second)

	store := benchmark.NewSQLStore(dbQueries)
	engine := benchmark.NewEngine(
		store,
		discoveryClient,
		insightsClient,
		time.Duration(cfg.RunTimeoutSeconds)*time.Second,
	)
	engine.SetNotifyHook(func(creatorID string, insightsByPlatform map[benchmark.Platform]*benchmark.Insight) {
		logrus.Infof("Benchmark: run for creator %s finished with %d platform insights", creatorID, len(insightsByPlatform))
	})

	w := worker.NewWorker(engine)
	if cfg.DBInitErr == nil {
		w.Start(time.Duration(cfg.SweepIntervalSeconds) * time.Second)
	}

	h := handlers.NewHandler(engine, dbConn, cfg, w)

	r := gin.New()
	r.Use(middleware.RequestLoggerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware())

	r.GET("/health", h.HealthCheckHandler)
	r.POST("/benchmark", h.TriggerBenchmarkHandler)
	r.GET("/benchmark", h.BenchmarkStatusHandler)

	if err := r.Run(cfg.Address); err != nil {
		logrus.Fatalln(err)
	}
}
