package mime

import "sync/atomic"

// Info is a single content-type record owned by a Database.
//
// Records are shared: every lookup that returns an *Info hands the caller
// a counted reference which must be released with Unref. The Database keeps
// one canonical record per type name, so two lookups that resolve to the
// same name return the same pointer. Callers may rely on pointer identity
// to compare classifications.
type Info struct {
	// name is the canonical media type, e.g. "application/x-shellscript".
	name string

	// parents lists the canonical names this type is a subclass of,
	// closest ancestor first (e.g. text/x-python -> application/x-executable).
	parents []string

	// aliases lists alternative names for the same type.
	aliases []string

	// refs counts outstanding caller references to this record.
	refs atomic.Int32

	db *Database
}

// Name returns the canonical media type name, e.g. "text/plain".
func (m *Info) Name() string {
	return m.name
}

// Ref increments the reference count and returns the record for chaining.
func (m *Info) Ref() *Info {
	m.refs.Add(1)
	m.db.refs.Add(1)
	return m
}

// Unref releases one reference previously obtained from a Database lookup
// or from Ref. When the owning database has been closed and the last
// outstanding record reference is released, the database tears down.
func (m *Info) Unref() {
	m.refs.Add(-1)
	m.db.release()
}
