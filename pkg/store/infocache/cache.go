// Package infocache defines the optional cache of resolved content
// classifications.
//
// Classifying a regular file may require sniffing its content, which is
// the expensive part of resolution. The cache remembers the classification
// keyed by path, validated against the raw attributes that identify a
// file's content state (device, inode, size, mtime): when any of them
// differ the entry is stale and the resolver re-classifies and replaces it.
//
// Two backends exist: a process-local map (memory) and a persistent
// BadgerDB store (badger). Both are safe for concurrent use.
package infocache

import (
	"time"
)

// Entry records the classification of one path at a point in time.
type Entry struct {
	// Path is the absolute path the classification was resolved for
	Path string `json:"path"`

	// Device and Inode identify the underlying file
	Device uint64 `json:"device"`
	Inode  uint64 `json:"inode"`

	// Size and Mtime validate that the content is unchanged
	Size  uint64    `json:"size"`
	Mtime time.Time `json:"mtime"`

	// MimeName is the canonical content-type name that was resolved
	MimeName string `json:"mime_name"`
}

// Valid reports whether the entry still describes a file with the given
// raw attributes.
func (e Entry) Valid(device, inode, size uint64, mtime time.Time) bool {
	return e.Device == device &&
		e.Inode == inode &&
		e.Size == size &&
		e.Mtime.Equal(mtime)
}

// Cache stores classification entries keyed by path.
type Cache interface {
	// Get returns the entry for path. The boolean is false on a miss.
	Get(path string) (Entry, bool, error)

	// Put stores or replaces the entry for entry.Path.
	Put(entry Entry) error

	// Forget drops the entry for path, if any.
	Forget(path string) error

	// Close releases backend resources.
	Close() error
}
