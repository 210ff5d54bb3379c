package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/evandroforks/xfce4-thunar/pkg/store/infocache"
	infobadger "github.com/evandroforks/xfce4-thunar/pkg/store/infocache/badger"
	infomemory "github.com/evandroforks/xfce4-thunar/pkg/store/infocache/memory"
)

// NewCache creates the classification cache selected by cfg.
//
// Returns (nil, nil) for the "none" backend: a nil infocache.Cache simply
// disables caching in the resolver.
func NewCache(cfg CacheConfig) (infocache.Cache, error) {
	switch cfg.Type {
	case "none":
		return nil, nil
	case "memory":
		return newMemoryCache(cfg)
	case "badger":
		return newBadgerCache(cfg)
	default:
		return nil, fmt.Errorf("unknown cache type: %q", cfg.Type)
	}
}

// newMemoryCache decodes the memory-specific section and builds the cache.
func newMemoryCache(cfg CacheConfig) (infocache.Cache, error) {
	var memoryCfg infomemory.Config
	if err := mapstructure.Decode(cfg.Memory, &memoryCfg); err != nil {
		return nil, fmt.Errorf("invalid memory cache config: %w", err)
	}

	return infomemory.New(memoryCfg), nil
}

// newBadgerCache decodes the BadgerDB-specific section and opens the cache.
func newBadgerCache(cfg CacheConfig) (infocache.Cache, error) {
	var badgerCfg infobadger.Config
	if err := mapstructure.Decode(cfg.Badger, &badgerCfg); err != nil {
		return nil, fmt.Errorf("invalid badger cache config: %w", err)
	}

	cache, err := infobadger.New(badgerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger cache: %w", err)
	}

	return cache, nil
}
