package vfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evandroforks/xfce4-thunar/pkg/mime"
	"github.com/evandroforks/xfce4-thunar/pkg/store/infocache"
	"github.com/evandroforks/xfce4-thunar/pkg/store/infocache/memory"
)

// recordingCache wraps the memory backend and counts operations, so tests
// can tell cache hits from re-classifications.
type recordingCache struct {
	*memory.Cache
	gets    int
	puts    int
	forgets int
	fail    bool
}

func (c *recordingCache) Get(path string) (infocache.Entry, bool, error) {
	c.gets++
	if c.fail {
		return infocache.Entry{}, false, errors.New("backend unavailable")
	}
	return c.Cache.Get(path)
}

func (c *recordingCache) Put(entry infocache.Entry) error {
	c.puts++
	if c.fail {
		return errors.New("backend unavailable")
	}
	return c.Cache.Put(entry)
}

func (c *recordingCache) Forget(path string) error {
	c.forgets++
	return c.Cache.Forget(path)
}

func newCachedResolver(t *testing.T) (*Resolver, *recordingCache) {
	t.Helper()

	db := mime.NewDatabase()
	t.Cleanup(db.Close)

	cache := &recordingCache{Cache: memory.New(memory.Config{})}
	r := NewResolver(db, WithLocales([]string{"en"}), WithCache(cache))

	return r, cache
}

func TestResolve_CachesClassification(t *testing.T) {
	r, cache := newCachedResolver(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, "cached content", 0o644)

	info, err := r.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", info.Mime.Name())
	info.Unref()

	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.puts)

	entry, found, err := cache.Cache.Get(path)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "text/plain", entry.MimeName)

	// A second resolve of the unchanged file is served from the cache.
	info, err = r.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", info.Mime.Name())
	info.Unref()

	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.puts)
}

func TestResolve_StaleCacheEntryIsReplaced(t *testing.T) {
	r, cache := newCachedResolver(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, "v1", 0o644)

	info, err := r.Resolve(path)
	require.NoError(t, err)
	info.Unref()

	// Grow the file: size and mtime no longer match the cached entry.
	writeFile(t, path, "a much longer second version", 0o644)

	info, err = r.Resolve(path)
	require.NoError(t, err)
	info.Unref()

	assert.Equal(t, 2, cache.puts, "a stale entry must be re-resolved and replaced")

	entry, found, err := cache.Cache.Get(path)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(len("a much longer second version")), entry.Size)
}

func TestResolve_CacheFailureDegradesToResolution(t *testing.T) {
	r, cache := newCachedResolver(t)
	cache.fail = true

	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, "content", 0o644)

	// A broken cache backend must not break resolution.
	info, err := r.Resolve(path)
	require.NoError(t, err)
	defer info.Unref()
	assert.Equal(t, "text/plain", info.Mime.Name())
}

func TestRename_ForgetsCachedSource(t *testing.T) {
	r, cache := newCachedResolver(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "content", 0o644)

	info, err := r.Resolve(path)
	require.NoError(t, err)
	defer info.Unref()

	require.NoError(t, r.Rename(info, "b.txt"))

	assert.Equal(t, 1, cache.forgets)
	_, found, err := cache.Cache.Get(path)
	require.NoError(t, err)
	assert.False(t, found, "the old path's entry must be dropped")

	// The re-classification cached the new path.
	_, found, err = cache.Cache.Get(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.True(t, found)
}

func TestClassify_DirectoriesBypassCache(t *testing.T) {
	r, cache := newCachedResolver(t)

	dir := t.TempDir()
	sub := filepath.Join(dir, "child")
	require.NoError(t, os.Mkdir(sub, 0o755))

	info, err := r.Resolve(sub)
	require.NoError(t, err)
	defer info.Unref()

	assert.Equal(t, "inode/directory", info.Mime.Name())
	assert.Zero(t, cache.gets)
	assert.Zero(t, cache.puts)
}
