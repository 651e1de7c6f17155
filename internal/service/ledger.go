package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"duophone/chat-api/internal/model"
)

type ledgerEntry struct {
	mu       sync.Mutex
	versions []model.VersionRecord
}

type fileInfo struct {
	originalName string
	entry        *ledgerEntry
	lastModified time.Time
	accessCount  int64
}

// Ledger keeps the in-memory upload history. Versions are keyed by the
// original file name, metadata lookups go through the storage name instead.
// Nothing here survives a restart, which is fine for a demo that also keeps
// its messages client-side only.
type Ledger struct {
	mu      sync.Mutex
	entries map[string]*ledgerEntry
	files   map[string]*fileInfo
}

func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[string]*ledgerEntry),
		files:   make(map[string]*fileInfo),
	}
}

func (l *Ledger) entryFor(originalName string) *ledgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[originalName]
	if !ok {
		e = &ledgerEntry{}
		l.entries[originalName] = e
	}
	return e
}

// RecordVersion appends a new version for originalName and registers the
// stored file under storageName. The version index is assigned inside the
// entry's critical section, so concurrent uploads of the same name never
// share an index, while unrelated names don't contend.
func (l *Ledger) RecordVersion(originalName, storageName, path, userID string, size int64, mimeType, hash string) model.VersionRecord {
	e := l.entryFor(originalName)

	e.mu.Lock()
	rec := model.VersionRecord{
		Version:   len(e.versions),
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Size:      size,
		MimeType:  mimeType,
		Hash:      hash,
		Path:      path,
	}
	e.versions = append(e.versions, rec)
	e.mu.Unlock()

	l.mu.Lock()
	l.files[storageName] = &fileInfo{
		originalName: originalName,
		entry:        e,
		lastModified: rec.Timestamp,
	}
	l.mu.Unlock()

	return rec
}

// DescribeChange renders a human-readable summary of what changed between
// two versions. Only size and MIME type are compared. Pure, no side effects.
func DescribeChange(old *model.VersionRecord, new model.VersionRecord) string {
	var changes []string

	oldSize, oldMime := "N/A", "N/A"
	if old != nil {
		oldSize = fmt.Sprintf("%d", old.Size)
		oldMime = old.MimeType
	}

	if old == nil || old.Size != new.Size {
		changes = append(changes, fmt.Sprintf("File size changed from %s to %d", oldSize, new.Size))
	}
	if old == nil || old.MimeType != new.MimeType {
		changes = append(changes, fmt.Sprintf("File type changed from %s to %s", oldMime, new.MimeType))
	}

	if len(changes) == 0 {
		return "File updated"
	}
	return strings.Join(changes, ", ")
}

// Versions returns the metadata for a stored file, looked up by storage
// name. A successful lookup INCREMENTS THE ACCESS COUNTER, the read has a
// side effect on purpose: the counter feeds the client's trending-files
// view. Failed lookups leave the counter alone.
func (l *Ledger) Versions(storageName string) (*model.FileMetadata, error) {
	l.mu.Lock()
	info, ok := l.files[storageName]
	if !ok {
		l.mu.Unlock()
		return nil, fmt.Errorf("file %q, %w", storageName, ErrNotFound)
	}
	info.accessCount++
	count := info.accessCount
	last := info.lastModified
	original := info.originalName
	e := info.entry
	l.mu.Unlock()

	e.mu.Lock()
	versions := make([]model.VersionRecord, len(e.versions))
	copy(versions, e.versions)
	e.mu.Unlock()

	return &model.FileMetadata{
		OriginalName: original,
		Versions:     versions,
		LastModified: last,
		AccessCount:  count,
	}, nil
}

// Restore validates that version exists for originalName and returns its
// record. The stored bytes are NOT rewritten to match the target version,
// actual content restoration is still an open product question.
func (l *Ledger) Restore(originalName string, version int) (model.VersionRecord, error) {
	l.mu.Lock()
	e, ok := l.entries[originalName]
	l.mu.Unlock()

	if !ok {
		return model.VersionRecord{}, fmt.Errorf("file %q, %w", originalName, ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if version < 0 || version >= len(e.versions) {
		return model.VersionRecord{}, fmt.Errorf("version %d of %q, %w", version, originalName, ErrNotFound)
	}
	return e.versions[version], nil
}
