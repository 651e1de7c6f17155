package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type restoreRequest struct {
	FileName string `json:"fileName"`
	Version  int    `json:"version"`
}

// VersionRestore validates the requested version and echoes its metadata.
// The stored content is not rewritten, see Ledger.Restore.
func (a *API) VersionRestore(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	rec, err := a.Ledger.Restore(req.FileName, req.Version)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Version not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Version restored successfully",
		"version": rec,
	})
}
