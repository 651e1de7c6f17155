package service

import (
	"path"
	"strings"
)

// Fixed extension table used for drive conversions. Uploads get their type
// sniffed from content instead, this table only covers names of files that
// already passed validation.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".txt":  "text/plain",
}

// MimeFromName resolves a MIME type from a file name's extension, falling
// back to a generic binary type for anything unknown.
func MimeFromName(fileName string) string {
	if t, ok := mimeTypes[strings.ToLower(path.Ext(fileName))]; ok {
		return t
	}
	return "application/octet-stream"
}
