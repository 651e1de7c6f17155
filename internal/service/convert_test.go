package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlob struct {
	creates atomic.Int32
	grants  atomic.Int32
	links   atomic.Int32

	createErr error
	grantErr  error
}

func (f *fakeBlob) Create(_ context.Context, body io.Reader, name, mimeType string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.creates.Add(1)
	return "blob-" + name, nil
}

func (f *fakeBlob) GrantPublicRead(_ context.Context, id string) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.grants.Add(1)
	return nil
}

func (f *fakeBlob) PublicLink(_ context.Context, id string) (string, error) {
	f.links.Add(1)
	return "https://blobs.example.com/" + id, nil
}

func writeTemp(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("file contents"), 0o644))
	return p
}

func TestConvert_UploadsGrantsAndCleansUp(t *testing.T) {
	blob := &fakeBlob{}
	c := NewConverter(blob)

	p := writeTemp(t, "x.png")

	link, err := c.Convert(context.Background(), p, "x.png")
	require.NoError(t, err)
	assert.Equal(t, "https://blobs.example.com/blob-x.png", link)

	assert.EqualValues(t, 1, blob.creates.Load())
	assert.EqualValues(t, 1, blob.grants.Load())
	assert.EqualValues(t, 1, blob.links.Load())

	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err), "local file should be deleted after conversion")
}

func TestConvert_SecondCallHitsCache(t *testing.T) {
	blob := &fakeBlob{}
	c := NewConverter(blob)

	p := writeTemp(t, "x.png")

	first, err := c.Convert(context.Background(), p, "x.png")
	require.NoError(t, err)

	// The local file is gone now, the cached link must still come back
	// without any filesystem or blob store access
	second, err := c.Convert(context.Background(), p, "x.png")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, blob.creates.Load(), "cache hit must not re-upload")
	assert.EqualValues(t, 1, blob.grants.Load())
	assert.EqualValues(t, 1, blob.links.Load())
}

func TestConvert_MissingPath(t *testing.T) {
	blob := &fakeBlob{}
	c := NewConverter(blob)

	missing := filepath.Join(t.TempDir(), "x.png")

	_, err := c.Convert(context.Background(), missing, "x.png")
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 0, blob.creates.Load())

	// Once the file shows up the same path converts normally
	require.NoError(t, os.WriteFile(missing, []byte("now it exists"), 0o644))

	link, err := c.Convert(context.Background(), missing, "x.png")
	require.NoError(t, err)
	assert.NotEmpty(t, link)
}

func TestConvert_UploadFailureIsNotCached(t *testing.T) {
	boom := errors.New("upstream unavailable")
	blob := &fakeBlob{createErr: boom}
	c := NewConverter(blob)

	p := writeTemp(t, "x.pdf")

	_, err := c.Convert(context.Background(), p, "x.pdf")

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.ErrorIs(t, err, boom, "the cause must stay reachable")

	_, statErr := os.Stat(p)
	require.NoError(t, statErr, "cleanup must only run after success")

	// Retry succeeds once the transient condition clears
	blob.createErr = nil
	link, err := c.Convert(context.Background(), p, "x.pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, link)
	assert.EqualValues(t, 1, blob.creates.Load())
}

func TestConvert_GrantFailureIsNotCached(t *testing.T) {
	boom := errors.New("acl denied")
	blob := &fakeBlob{grantErr: boom}
	c := NewConverter(blob)

	p := writeTemp(t, "x.txt")

	_, err := c.Convert(context.Background(), p, "x.txt")

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)

	blob.grantErr = nil
	_, err = c.Convert(context.Background(), p, "x.txt")
	require.NoError(t, err)
	assert.EqualValues(t, 2, blob.creates.Load(), "failed attempt must not prevent a clean retry")
}
