package handlers

import (
	"database/sql"

	"github.com/fluffyriot/peerbench/internal/benchmark"
	"github.com/fluffyriot/peerbench/internal/config"
	"github.com/fluffyriot/peerbench/internal/worker"
)

type Handler struct {
	Engine *benchmark.Engine
	DBConn *sql.DB
	Config *config.AppConfig
	Worker *worker.Worker
}

func NewHandler(engine *benchmark.Engine, dbConn *sql.DB, cfg *config.AppConfig, w *worker.Worker) *Handler {
	return &Handler{
		Engine: engine,
		DBConn: dbConn,
		Config: cfg,
		Worker: w,
	}
}
