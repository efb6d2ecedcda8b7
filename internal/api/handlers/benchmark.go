// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

// TriggerBenchmarkHandler kicks off a benchmarking run for a creator. The
// pipelines run in the background, so a successful trigger only promises
// that the run record exists.
func (h *Handler) TriggerBenchmarkHandler(c *gin.Context) {
	if h.Config.DBInitErr != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
		return
	}

	var req TriggerBenchmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "creator_id is required"})
		return
	}

	run, err := h.Engine.StartRun(c.Request.Context(), req.CreatorID, req.Niche, req.Force)
	if err != nil {
		switch {
		case errors.Is(err, benchmark.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, benchmark.ErrRunInProgress):
			c.JSON(http.StatusConflict, gin.H{"status": "running", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start benchmarking run"})
		}
		return
	}

	// Runs are keyed by creator, so the creator id doubles as the run id.
	c.JSON(http.StatusAccepted, gin.H{
		"status":    "accepted",
		"run_id":    run.CreatorID,
		"run_epoch": run.Epoch,
	})
}

// BenchmarkStatusHandler returns the reconciled state of a creator's run,
// including the merged competitor listings.
func (h *Handler) BenchmarkStatusHandler(c *gin.Context) {
	if h.Config.DBInitErr != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
		return
	}

	creatorID := c.Query("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "creator_id query parameter is required"})
		return
	}

	view, err := h.Engine.GetRun(c.Request.Context(), creatorID)
	if err != nil {
		if errors.Is(err, benchmark.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no benchmarking run for this creator"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load benchmarking run"})
		return
	}

	c.JSON(http.StatusOK, toBenchmarkRunResponse(view))
}
