// Package mime implements the content-type database consumed by the VFS
// metadata core.
//
// The database resolves media types three ways:
//   - by canonical name (Info)
//   - by file name, using a glob/suffix rule table (InfoForFile)
//   - by content sniffing, as a fallback when no name rule matches,
//     delegated to github.com/gabriel-vasile/mimetype
//
// Records are reference counted (see Info). The database itself is safe for
// concurrent readers; Close defers physical teardown until the last record
// reference held by a caller is released.
package mime

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gabriel-vasile/mimetype"
)

// Well-known type names used by the resolver pipeline.
const (
	TypeDesktopEntry = "application/x-desktop"
	TypeExecutable   = "application/x-executable"
	TypeShellScript  = "application/x-shellscript"
	TypeOctetStream  = "application/octet-stream"
)

// Database resolves and owns content-type records.
//
// A Database is created with NewDatabase and released with Close. All lookup
// methods return counted references that the caller must Unref. Lookups are
// safe for concurrent use from multiple goroutines.
type Database struct {
	mu sync.RWMutex

	// infos holds the canonical record per type name. Names listed as
	// aliases map to the record of their canonical type.
	infos map[string]*Info

	// refs counts one reference for the open database plus one per
	// outstanding record reference. Teardown happens at zero.
	refs atomic.Int32

	closed atomic.Bool
}

// NewDatabase creates a content-type database seeded with the built-in
// type table (see table.go).
func NewDatabase() *Database {
	db := &Database{
		infos: make(map[string]*Info, len(typeTable)),
	}
	db.refs.Store(1)

	for _, t := range typeTable {
		rec := &Info{name: t.name, parents: t.parents, aliases: t.aliases, db: db}
		db.infos[t.name] = rec
		for _, alias := range t.aliases {
			db.infos[alias] = rec
		}
	}

	return db
}

// Info looks up a content-type record by name, creating a record on the fly
// for names the built-in table does not know. Never returns nil.
//
// The returned reference must be released with Unref.
func (db *Database) Info(name string) *Info {
	name = normalizeName(name)

	db.mu.RLock()
	rec, ok := db.infos[name]
	db.mu.RUnlock()

	if !ok {
		rec = db.intern(name, nil, nil)
	}

	return rec.Ref()
}

// InfoForFile determines the content type of the regular file at path.
//
// displayName is matched against the glob/suffix rule table first; when no
// rule applies the file content is sniffed. Sniffing failures degrade to
// application/octet-stream, so the lookup itself never fails.
//
// The returned reference must be released with Unref.
func (db *Database) InfoForFile(path, displayName string) *Info {
	if displayName == "" {
		displayName = filepath.Base(path)
	}

	if name, ok := lookupGlob(displayName); ok {
		return db.Info(name)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return db.Info(TypeOctetStream)
	}

	// Import the sniffer's parent chain so ancestry checks keep working
	// for types the built-in table does not carry.
	var parents []string
	for p := mtype.Parent(); p != nil; p = p.Parent() {
		parents = append(parents, normalizeName(p.String()))
	}

	name := normalizeName(mtype.String())

	db.mu.RLock()
	rec, ok := db.infos[name]
	db.mu.RUnlock()
	if !ok {
		rec = db.intern(name, parents, nil)
	}

	return rec.Ref()
}

// InfosForInfo returns the record itself followed by the records of its
// aliases and parent closure, each as a counted reference. Callers use this
// for "is-a" checks, e.g. whether a concrete script type descends from
// application/x-shellscript. Release the result with UnrefAll.
func (db *Database) InfosForInfo(info *Info) []*Info {
	result := []*Info{info.Ref()}

	seen := map[string]bool{info.name: true}
	queue := make([]string, 0, len(info.aliases)+len(info.parents))
	queue = append(queue, info.aliases...)
	queue = append(queue, info.parents...)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		rec := db.Info(name)
		result = append(result, rec)
		queue = append(queue, rec.aliases...)
		queue = append(queue, rec.parents...)
	}

	return result
}

// UnrefAll releases every record reference in infos.
func UnrefAll(infos []*Info) {
	for _, info := range infos {
		info.Unref()
	}
}

// Close releases the database's own reference. Records still held by live
// callers remain valid; the physical teardown happens once the last of
// them is released.
func (db *Database) Close() {
	if db.closed.CompareAndSwap(false, true) {
		db.release()
	}
}

// intern registers a record for an unknown type name.
func (db *Database) intern(name string, parents, aliases []string) *Info {
	db.mu.Lock()
	defer db.mu.Unlock()

	// Another goroutine may have interned the same name meanwhile.
	if rec, ok := db.infos[name]; ok {
		return rec
	}

	rec := &Info{name: name, parents: parents, aliases: aliases, db: db}
	db.infos[name] = rec
	for _, alias := range aliases {
		if _, ok := db.infos[alias]; !ok {
			db.infos[alias] = rec
		}
	}
	return rec
}

// release drops one database reference and tears down at zero.
func (db *Database) release() {
	if db.refs.Add(-1) == 0 {
		db.mu.Lock()
		db.infos = nil
		db.mu.Unlock()
	}
}

// normalizeName strips media-type parameters ("text/plain; charset=utf-8")
// and lowercases the bare type name.
func normalizeName(name string) string {
	if base, _, ok := strings.Cut(name, ";"); ok {
		name = base
	}
	return strings.ToLower(strings.TrimSpace(name))
}
