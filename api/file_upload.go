package api

import (
	"net/http"

	"duophone/chat-api/internal/model"
	"duophone/chat-api/internal/service"
	"duophone/chat-api/pkg/util"
	"duophone/chat-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileUpload validates a single multipart file, persists it locally under a
// collision free storage name and records a new version keyed by the
// original file name.
func (a *API) FileUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file uploaded",
			"requestID": requestID,
		})
		return
	}

	userID := c.PostForm("userId")

	code, f, mimeType, err := validators.FileValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.String("requestID", requestID), zap.Error(err))

			// That's to set the error into a general one for the users
			err = validators.ErrFileTypeUnsupported
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	storageName := util.StorageName(fh.Filename)

	path, size, sum, err := a.Storage.Save(storageName, f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "File was not saved properly",
			"requestID": requestID,
		})

		zap.L().Error("Failed to persist upload", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	rec := a.Ledger.RecordVersion(fh.Filename, storageName, path, userID, size, mimeType, sum)

	var prev *model.VersionRecord
	if rec.Version > 0 {
		if p, err := a.Ledger.Restore(fh.Filename, rec.Version-1); err == nil {
			prev = &p
		}
	}

	zap.L().Info("File uploaded successfully",
		zap.String("path", path),
		zap.String("name", storageName),
		zap.String("type", mimeType),
		zap.Int("version", rec.Version),
		zap.String("changes", service.DescribeChange(prev, rec)))

	c.JSON(http.StatusOK, gin.H{
		"message":     "File uploaded successfully",
		"localPath":   path,
		"fileName":    storageName,
		"mimeType":    mimeType,
		"version":     rec.Version,
		"versionInfo": rec,
	})
}
