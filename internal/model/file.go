package model

import "time"

// VersionRecord is one entry in a file's upload history. Versions are keyed
// by the original file name and indexed contiguously from 0.
type VersionRecord struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	Hash      string    `json:"hash"`

	// Path is where this version's bytes live on disk, under the storage
	// name rather than the original one
	Path string `json:"path"`
}

// FileMetadata describes one stored file, looked up by its storage name.
// AccessCount goes up by one on every successful version-history lookup
// and feeds the trending-files view on the client.
type FileMetadata struct {
	OriginalName string          `json:"originalName"`
	Versions     []VersionRecord `json:"versions"`
	LastModified time.Time       `json:"lastModified"`
	AccessCount  int64           `json:"accessCount"`
}
