package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// BlobStore is the external object storage a converted file gets mirrored
// to. Create returns an opaque blob id used by the two follow-up calls.
type BlobStore interface {
	Create(ctx context.Context, body io.Reader, name, mimeType string) (string, error)
	GrantPublicRead(ctx context.Context, id string) error
	PublicLink(ctx context.Context, id string) (string, error)
}

// Converter memoizes local path -> public link so the same uploaded file is
// never pushed to the blob store twice. Entries are immutable for the
// process lifetime; failed conversions never populate the cache, so a retry
// after a transient upstream error starts clean.
type Converter struct {
	blob BlobStore

	mu    sync.Mutex
	links map[string]string

	// Collapses concurrent conversions of the same path into one upload.
	// Distinct paths run fully in parallel.
	group singleflight.Group
}

func NewConverter(blob BlobStore) *Converter {
	return &Converter{
		blob:  blob,
		links: make(map[string]string),
	}
}

func (c *Converter) cached(localPath string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	link, ok := c.links[localPath]
	return link, ok
}

// Convert mirrors the file at localPath to the blob store and returns its
// public link. A cache hit short-circuits before touching the filesystem,
// which is what keeps repeat calls working after the local copy was cleaned
// up. On success the local file is deleted best-effort; a failed delete is
// logged and the link is still returned.
func (c *Converter) Convert(ctx context.Context, localPath, fileName string) (string, error) {
	if link, ok := c.cached(localPath); ok {
		return link, nil
	}

	v, err, _ := c.group.Do(localPath, func() (any, error) {
		// A concurrent caller may have finished while we waited our turn
		if link, ok := c.cached(localPath); ok {
			return link, nil
		}

		f, err := os.Open(localPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("local file %s, %w", localPath, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to open %s, %w", localPath, err)
		}
		defer f.Close()

		mimeType := MimeFromName(fileName)

		id, err := c.blob.Create(ctx, f, fileName, mimeType)
		if err != nil {
			return nil, &ConversionError{Cause: err}
		}

		// Permission grant and link fetch don't depend on each other
		var link string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return c.blob.GrantPublicRead(gctx, id)
		})
		g.Go(func() error {
			var err error
			link, err = c.blob.PublicLink(gctx, id)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, &ConversionError{Cause: err}
		}

		c.mu.Lock()
		c.links[localPath] = link
		c.mu.Unlock()

		// Close before removing so the delete works on platforms that
		// refuse to unlink open files
		f.Close()
		if err := os.Remove(localPath); err != nil {
			zap.L().Warn("Failed to delete local file after conversion",
				zap.String("path", localPath),
				zap.Error(err))
		}

		return link, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}
