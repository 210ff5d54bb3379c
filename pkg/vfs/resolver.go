package vfs

import (
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/evandroforks/xfce4-thunar/pkg/mime"
	"github.com/evandroforks/xfce4-thunar/pkg/store/infocache"
)

// Resolver turns filesystem paths into Info descriptors.
//
// A Resolver carries the injected content-type database, the caller's
// ordered locale preference list (used for launcher Name lookups and the
// localized rename path) and an optional classification cache. It is
// stateless apart from those collaborators and safe for concurrent use,
// provided the database and cache are.
type Resolver struct {
	db      *mime.Database
	cache   infocache.Cache
	locales []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLocales sets the ordered locale preference list. The default is
// derived from the LANGUAGE/LC_ALL/LC_MESSAGES/LANG environment.
func WithLocales(locales []string) Option {
	return func(r *Resolver) {
		r.locales = locales
	}
}

// WithCache attaches a classification cache consulted before sniffing
// file content. The resolver validates entries against the file's raw
// attributes, so a stale cache can slow resolution down but never skew it.
func WithCache(cache infocache.Cache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// NewResolver creates a resolver bound to the given content-type database.
// The database must already be initialized and must outlive every
// descriptor the resolver produces.
func NewResolver(db *mime.Database, opts ...Option) *Resolver {
	r := &Resolver{
		db:      db,
		locales: DefaultLocales(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Locales returns the resolver's ordered locale preference list.
func (r *Resolver) Locales() []string {
	return r.locales
}

// Resolve stats path and produces a new descriptor with one reference
// owned by the caller.
//
// Symlink policy (three-way branch, deliberately not "always follow"):
//   - not a symlink: attributes come from the non-following stat
//   - valid symlink: attributes come from the followed target, the type
//     still reports symlink and FlagSymlink is set
//   - dangling symlink: attributes fall back to the link's own, type
//     symlink, FlagSymlink set
//
// Fails only when the initial non-following stat fails; the error carries
// the originating OS error code.
func (r *Resolver) Resolve(path string) (*Info, error) {
	var lst unix.Stat_t
	if err := unix.Lstat(path, &lst); err != nil {
		return nil, newIOError("failed to stat file", path, err)
	}

	info := &Info{
		Path:        path,
		DisplayName: filepath.Base(path),
	}
	info.refs.Store(1)

	st := lst
	isSymlink := lst.Mode&unix.S_IFMT == unix.S_IFLNK
	if isSymlink {
		info.Flags |= FlagSymlink

		// A dangling link keeps the link's own attributes.
		var fst unix.Stat_t
		if err := unix.Stat(path, &fst); err == nil {
			st = fst
		}
	}

	info.Mode = uint32(st.Mode) & 0o7777
	info.UID = st.Uid
	info.GID = st.Gid
	info.Size = uint64(st.Size)
	info.Atime = timespecToTime(st.Atim)
	info.Mtime = timespecToTime(st.Mtim)
	info.Ctime = timespecToTime(st.Ctim)
	info.Inode = st.Ino
	info.Device = uint64(st.Dev)

	if isSymlink {
		info.Type = FileTypeSymlink
	} else {
		info.Type = typeFromMode(uint32(st.Mode))
	}

	r.classify(info)

	return info, nil
}

// typeFromMode maps the S_IFMT field of a stat mode to the closed
// FileType enumeration.
func typeFromMode(mode uint32) FileType {
	switch mode & unix.S_IFMT {
	case unix.S_IFSOCK:
		return FileTypeSocket
	case unix.S_IFLNK:
		return FileTypeSymlink
	case unix.S_IFBLK:
		return FileTypeBlockDevice
	case unix.S_IFDIR:
		return FileTypeDirectory
	case unix.S_IFCHR:
		return FileTypeCharDevice
	case unix.S_IFIFO:
		return FileTypeFifo
	case unix.S_IFREG:
		return FileTypeRegular
	default:
		return FileTypeUnknown
	}
}

func timespecToTime(ts unix.Timespec) time.Time {
	return time.Unix(int64(ts.Sec), int64(ts.Nsec))
}
