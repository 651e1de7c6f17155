package api

import (
	"errors"
	"net/http"

	"duophone/chat-api/internal/service"

	"github.com/gin-gonic/gin"
)

// FileVersions returns the version history of a stored file, looked up by
// storage name. Every successful lookup also bumps the file's access
// counter, see Ledger.Versions.
func (a *API) FileVersions(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	meta, err := a.Ledger.Versions(c.Param("fileName"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, meta)
}
