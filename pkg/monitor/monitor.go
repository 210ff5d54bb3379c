// Package monitor watches directories and reports file changes as events.
//
// The monitor layers directory-change diffing on top of the vfs core: on
// every filesystem notification the affected directory is re-resolved and
// the fresh descriptors are compared against the previous snapshot with
// vfs.Matches. Only files whose observable state actually changed produce
// events, so noisy notifications (e.g. an atime-only touch that a
// subsequent write reverted, or duplicate notifications for one write)
// collapse into what a caller cares about.
package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/evandroforks/xfce4-thunar/internal/logger"
	"github.com/evandroforks/xfce4-thunar/pkg/vfs"
)

// EventType classifies a directory change.
type EventType int

const (
	// Created reports a file that appeared in the directory
	Created EventType = iota

	// Changed reports a file whose observable state no longer matches
	// the previous snapshot
	Changed

	// Deleted reports a file that disappeared from the directory
	Deleted
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is a single observed change.
type Event struct {
	// Type classifies the change
	Type EventType

	// Path is the affected file's path
	Path string

	// Info is the file's fresh descriptor, nil for Deleted events. The
	// monitor hands the receiver its own reference; consumers must Unref
	// it when done.
	Info *vfs.Info
}

// Watch is one subscription to a directory's changes.
type Watch struct {
	id      uuid.UUID
	dir     string
	events  chan Event
	monitor *Monitor
}

// ID returns the watch handle.
func (w *Watch) ID() uuid.UUID {
	return w.id
}

// Dir returns the watched directory.
func (w *Watch) Dir() string {
	return w.dir
}

// Events returns the channel change events are delivered on. The channel
// is closed when the watch is stopped or the monitor shuts down. Slow
// consumers lose events rather than blocking the monitor; the buffer
// absorbs normal bursts.
func (w *Watch) Events() <-chan Event {
	return w.events
}

// Stop cancels the subscription and closes its event channel.
func (w *Watch) Stop() {
	w.monitor.stopWatch(w)
}

// Monitor owns the filesystem watcher and the per-directory snapshots.
type Monitor struct {
	resolver *vfs.Resolver
	watcher  *fsnotify.Watcher

	mu        sync.Mutex
	watches   map[string][]*Watch
	snapshots map[string]map[string]*vfs.Info
	closed    bool

	done chan struct{}
	wg   sync.WaitGroup
}

// eventBuffer is the per-watch channel capacity.
const eventBuffer = 64

// New creates a monitor that resolves descriptors through resolver.
func New(resolver *vfs.Resolver) (*Monitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	m := &Monitor{
		resolver:  resolver,
		watcher:   watcher,
		watches:   make(map[string][]*Watch),
		snapshots: make(map[string]map[string]*vfs.Info),
		done:      make(chan struct{}),
	}

	m.wg.Add(1)
	go m.loop()

	return m, nil
}

// Watch subscribes to changes in dir. The initial directory state is
// snapshotted synchronously, so only changes after the call produce events.
func (m *Monitor) Watch(dir string) (*Watch, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("failed to watch %s: not a directory", dir)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("monitor is closed")
	}

	if _, ok := m.snapshots[dir]; !ok {
		m.snapshots[dir] = m.scan(dir)
		if err := m.watcher.Add(dir); err != nil {
			releaseSnapshot(m.snapshots[dir])
			delete(m.snapshots, dir)
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w := &Watch{
		id:      uuid.New(),
		dir:     dir,
		events:  make(chan Event, eventBuffer),
		monitor: m,
	}
	m.watches[dir] = append(m.watches[dir], w)

	return w, nil
}

// Close shuts the monitor down, stops every watch and releases all
// snapshot descriptor references.
func (m *Monitor) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true

	for _, list := range m.watches {
		for _, w := range list {
			close(w.events)
		}
	}
	m.watches = make(map[string][]*Watch)

	for dir, snapshot := range m.snapshots {
		releaseSnapshot(snapshot)
		delete(m.snapshots, dir)
	}
	m.mu.Unlock()

	close(m.done)
	err := m.watcher.Close()
	m.wg.Wait()
	return err
}

// loop drains filesystem notifications and rescans affected directories.
func (m *Monitor) loop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.done:
			return

		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.rescan(m.affectedDir(ev.Name))

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("filesystem watcher error: %v", err)
		}
	}
}

// affectedDir maps a notification path to the watched directory it
// belongs to: notifications name the changed entry, except when the
// watched directory itself is renamed or removed.
func (m *Monitor) affectedDir(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.snapshots[path]; ok {
		return path
	}
	return filepath.Dir(path)
}

// rescan re-resolves dir, diffs against the previous snapshot and emits
// events for every file whose observable state changed.
func (m *Monitor) rescan(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous, ok := m.snapshots[dir]
	if !ok {
		return
	}

	current := m.scan(dir)

	for name, old := range previous {
		fresh, ok := current[name]
		switch {
		case !ok:
			m.emit(dir, Event{Type: Deleted, Path: old.Path})
		case !vfs.Matches(old, fresh):
			m.emit(dir, Event{Type: Changed, Path: fresh.Path, Info: fresh.Ref()})
		}
		old.Unref()
	}

	for name, fresh := range current {
		if _, ok := previous[name]; !ok {
			m.emit(dir, Event{Type: Created, Path: fresh.Path, Info: fresh.Ref()})
		}
	}

	m.snapshots[dir] = current
}

// emit delivers an event to every watch on dir without ever blocking the
// monitor loop.
func (m *Monitor) emit(dir string, event Event) {
	for _, w := range m.watches[dir] {
		delivered := event
		if event.Info != nil {
			// Each delivery carries its own reference.
			delivered.Info = event.Info.Ref()
		}

		select {
		case w.events <- delivered:
		default:
			logger.Warn("dropping %s event for %s: watch %s is not keeping up",
				event.Type, event.Path, w.id)
			if delivered.Info != nil {
				delivered.Info.Unref()
			}
		}
	}
	if event.Info != nil {
		// Drop the reference the rescan took for the event itself.
		event.Info.Unref()
	}
}

// scan resolves every entry of dir into a name-keyed snapshot. Entries
// that vanish mid-scan are skipped.
func (m *Monitor) scan(dir string) map[string]*vfs.Info {
	snapshot := make(map[string]*vfs.Info)

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("failed to scan %s: %v", dir, err)
		return snapshot
	}

	for _, entry := range entries {
		info, err := m.resolver.Resolve(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		snapshot[entry.Name()] = info
	}

	return snapshot
}

// stopWatch removes w and drops the directory watch when it was the last
// subscription.
func (m *Monitor) stopWatch(w *Watch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	list := m.watches[w.dir]
	for i, candidate := range list {
		if candidate.id != w.id {
			continue
		}

		m.watches[w.dir] = append(list[:i], list[i+1:]...)
		close(w.events)
		break
	}

	if len(m.watches[w.dir]) == 0 {
		delete(m.watches, w.dir)
		if snapshot, ok := m.snapshots[w.dir]; ok {
			releaseSnapshot(snapshot)
			delete(m.snapshots, w.dir)
		}
		if err := m.watcher.Remove(w.dir); err != nil {
			logger.Debug("failed to remove watch on %s: %v", w.dir, err)
		}
	}
}

func releaseSnapshot(snapshot map[string]*vfs.Info) {
	for _, info := range snapshot {
		info.Unref()
	}
}
