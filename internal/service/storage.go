package service

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage writes uploaded files to the local uploads directory under their
// storage name.
type Storage struct {
	Dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory, %w", err)
	}
	return &Storage{Dir: dir}, nil
}

// Save persists r under name and returns the full path, the byte size and
// the MD5 hex digest of what was written. The digest is computed while
// copying so the file isn't read twice.
func (s *Storage) Save(name string, r io.Reader) (string, int64, string, error) {
	p := filepath.Join(s.Dir, name)

	f, err := os.Create(p)
	if err != nil {
		return "", 0, "", fmt.Errorf("failed to create %s, %w", p, err)
	}
	defer f.Close()

	h := md5.New()
	n, err := io.Copy(io.MultiWriter(f, h), r)
	if err != nil {
		os.Remove(p)
		return "", 0, "", fmt.Errorf("failed to write %s, %w", p, err)
	}

	return p, n, hex.EncodeToString(h.Sum(nil)), nil
}
