package api

import (
	"errors"
	"net/http"

	"duophone/chat-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type convertRequest struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
}

// FileConvert mirrors a locally stored upload to the blob store and returns
// the public link. Repeat calls for the same path hit the conversion cache
// and never touch the blob store again.
func (a *API) FileConvert(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FilePath == "" || req.FileName == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "File path and name are required",
			"requestID": requestID,
		})
		return
	}

	link, err := a.Converter.Convert(c.Request.Context(), req.FilePath, req.FileName)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		var convErr *service.ConversionError
		details := ""
		if errors.As(err, &convErr) {
			details = convErr.Cause.Error()
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Error converting file",
			"details":   details,
			"requestID": requestID,
		})

		zap.L().Error("Failed to convert file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "File converted to drive link successfully",
		"driveLink": link,
	})
}
