package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infomemory "github.com/evandroforks/xfce4-thunar/pkg/store/infocache/memory"
)

func TestNewCache_None(t *testing.T) {
	cache, err := NewCache(CacheConfig{Type: "none"})
	require.NoError(t, err)
	assert.Nil(t, cache)
}

func TestNewCache_Memory(t *testing.T) {
	cache, err := NewCache(CacheConfig{
		Type:   "memory",
		Memory: map[string]any{"max_entries": 512},
	})
	require.NoError(t, err)
	require.NotNil(t, cache)
	defer cache.Close()

	_, ok := cache.(*infomemory.Cache)
	assert.True(t, ok)
}

func TestNewCache_MemoryEmptySection(t *testing.T) {
	cache, err := NewCache(CacheConfig{Type: "memory"})
	require.NoError(t, err)
	require.NotNil(t, cache)
	defer cache.Close()
}

func TestNewCache_Badger(t *testing.T) {
	cache, err := NewCache(CacheConfig{
		Type:   "badger",
		Badger: map[string]any{"path": t.TempDir()},
	})
	require.NoError(t, err)
	require.NotNil(t, cache)
	defer cache.Close()
}

func TestNewCache_BadgerInMemory(t *testing.T) {
	cache, err := NewCache(CacheConfig{
		Type:   "badger",
		Badger: map[string]any{"in_memory": true},
	})
	require.NoError(t, err)
	require.NotNil(t, cache)
	defer cache.Close()
}

func TestNewCache_BadgerWithoutPath(t *testing.T) {
	_, err := NewCache(CacheConfig{Type: "badger"})
	require.Error(t, err)
}

func TestNewCache_UnknownType(t *testing.T) {
	_, err := NewCache(CacheConfig{Type: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cache type")
}

func TestNewCache_BadSectionType(t *testing.T) {
	_, err := NewCache(CacheConfig{
		Type:   "memory",
		Memory: map[string]any{"max_entries": "many"},
	})
	require.Error(t, err)
}
