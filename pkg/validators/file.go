// Package validators holds request validation that runs before any state
// is touched
package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileNameTooLong     = errors.New("file name is too long")
	ErrFileTypeUnsupported = errors.New("invalid file type. Only images, PDFs, Word documents, Excel files, and text files are allowed")
	ErrNoFile              = errors.New("no file provided")
)

const maxFileNameSize = 255

// Non-image types that are still accepted
var allowedDocTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/plain",
}

func allowed(mime string) bool {
	if strings.HasPrefix(mime, "image/") {
		return true
	}
	for _, t := range allowedDocTypes {
		if mime == t || strings.HasPrefix(mime, t+";") {
			return true
		}
	}
	return false
}

// FileValidator rejects anything that isn't an image or an allow-listed
// document, or that exceeds the configured size ceiling. Returns the HTTP
// status to respond with, the opened file rewound to the start and the
// sniffed MIME type. Nothing is persisted before this passes.
func FileValidator(fh *multipart.FileHeader) (int, multipart.File, string, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, "", ErrNoFile
	}

	// Check headers first which is easy to spoof, but faster for legit clients
	if ct := fh.Header.Get("Content-Type"); ct != "" && !allowed(ct) {
		return http.StatusBadRequest, nil, "", ErrFileTypeUnsupported
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, "", ErrFileNameTooLong
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		return http.StatusRequestEntityTooLarge, nil, "", ErrFileTooLarge
	}

	// And now check the actual content to catch malicious clients
	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, "", err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	if !allowed(mime.String()) {
		f.Close()
		return http.StatusBadRequest, nil, "", ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	return 0, f, mime.String(), nil
}
