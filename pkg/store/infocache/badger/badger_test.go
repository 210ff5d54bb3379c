package badger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evandroforks/xfce4-thunar/pkg/store/infocache"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := New(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func testEntry(path string) infocache.Entry {
	return infocache.Entry{
		Path:     path,
		Device:   64769,
		Inode:    987654,
		Size:     1024,
		Mtime:    time.Date(2026, 7, 2, 18, 4, 11, 0, time.UTC),
		MimeName: "application/pdf",
	}
}

func TestNew_RequiresPathOrInMemory(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a database path")
}

func TestNew_OnDisk(t *testing.T) {
	c, err := New(Config{Path: t.TempDir()})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Put(testEntry("/data/doc.pdf")))

	got, found, err := c.Get("/data/doc.pdf")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "application/pdf", got.MimeName)
}

func TestCache_PutGetForget(t *testing.T) {
	c := newTestCache(t)

	_, found, err := c.Get("/data/missing")
	require.NoError(t, err)
	assert.False(t, found)

	entry := testEntry("/data/doc.pdf")
	require.NoError(t, c.Put(entry))

	got, found, err := c.Get("/data/doc.pdf")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, entry.Path, got.Path)
	assert.Equal(t, entry.Device, got.Device)
	assert.Equal(t, entry.Inode, got.Inode)
	assert.Equal(t, entry.Size, got.Size)
	assert.True(t, entry.Mtime.Equal(got.Mtime))
	assert.Equal(t, entry.MimeName, got.MimeName)

	require.NoError(t, c.Forget("/data/doc.pdf"))
	_, found, err = c.Get("/data/doc.pdf")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Forget("/data/doc.pdf"))
}

func TestCache_PutReplaces(t *testing.T) {
	c := newTestCache(t)

	entry := testEntry("/data/doc.pdf")
	require.NoError(t, c.Put(entry))

	entry.MimeName = "application/zip"
	require.NoError(t, c.Put(entry))

	got, found, err := c.Get("/data/doc.pdf")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "application/zip", got.MimeName)
}

func TestCache_KeysAreNamespacedByPath(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.Put(testEntry("/a")))
	require.NoError(t, c.Put(testEntry("/b")))

	require.NoError(t, c.Forget("/a"))

	_, found, err := c.Get("/a")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = c.Get("/b")
	require.NoError(t, err)
	assert.True(t, found)
}
