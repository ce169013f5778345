package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hikyaku/pkg/herrors"
)

// HealthCheck answers liveness probes, including how much of the
// transfer worker pool is currently busy.
func HealthCheck(tm *TaskManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := tm.PoolStats()
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"active_workers": stats.ActiveWorkers,
			"total_workers":  stats.TotalWorkers,
			"total_tasks":    stats.TotalTasks,
			"failed_tasks":   stats.FailedTasks,
		})
	}
}

// StartTransfer handles POST /api/transfers: build both endpoints and
// enqueue the move. Builder failures (bad URI, missing credential,
// ambiguous Drive path) are reported synchronously; the transfer itself
// runs in the background and is polled via GetTransfer.
func StartTransfer(tm *TaskManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, err := tm.Submit(c.Request.Context(), req)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{"id": id})
	}
}

// GetTransfer handles GET /api/transfers/:id.
func GetTransfer(tm *TaskManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := tm.Get(c.Param("id"))
		if resp == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "transfer not found"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ListTransfers handles GET /api/transfers.
func ListTransfers(tm *TaskManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, tm.List())
	}
}

func statusForError(err error) int {
	switch herrors.KindOf(err) {
	case herrors.KindInvalidArgument, herrors.KindBuilder, herrors.KindParse, herrors.KindUnsupported:
		return http.StatusBadRequest
	case herrors.KindEnvCredential, herrors.KindOAuth2:
		return http.StatusUnauthorized
	case herrors.KindNotExistFile:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
