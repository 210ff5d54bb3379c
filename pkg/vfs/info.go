// Package vfs implements the file-metadata resolution and identity model:
// given a filesystem path it produces a reference-counted descriptor
// combining POSIX attributes, a resolved content classification, derived
// capability flags and optional launcher presentation hints. It also owns
// the rename protocol and the equality/matching protocol used by
// directory-change diffing.
package vfs

import (
	"sync/atomic"
	"time"

	"github.com/evandroforks/xfce4-thunar/pkg/mime"
)

// Info is the resolved descriptor for a single file.
//
// An Info is created only through Resolver.Resolve, shared by reference
// counting (Ref/Unref) and treated as immutable by every consumer except
// Resolver.Rename, which mutates it in place on success. Callers that
// share an Info across goroutines must serialize renames against reads;
// the descriptor itself provides no internal locking.
type Info struct {
	// Path is the file's identity: the absolute path the descriptor was
	// resolved from. Replaced only by a non-launcher rename.
	Path string

	// DisplayName is the UTF-8 presentation name, derived from Path at
	// creation and overwritten on successful rename.
	DisplayName string

	// Type is the file kind, derived strictly from resolved attributes.
	Type FileType

	// Mode contains the 12-bit POSIX permission bits
	// (setuid/setgid/sticky + rwx for user/group/other).
	Mode uint32

	// Flags is the derived capability bit-set.
	Flags FileFlags

	// UID is the owner user ID
	UID uint32

	// GID is the owner group ID
	GID uint32

	// Size is the file size in bytes
	Size uint64

	// Atime is the last access time
	Atime time.Time

	// Mtime is the last modification time
	Mtime time.Time

	// Ctime is the last status change time
	Ctime time.Time

	// Inode is the inode number
	Inode uint64

	// Device is the device ID of the containing filesystem
	Device uint64

	// Mime is a counted reference to the externally-owned content-type
	// record; released on descriptor teardown.
	Mime *mime.Info

	// hints carries the launcher presentation values. It is nil unless
	// the file is classified as a desktop launcher; a present map may
	// still lack individual hints the launcher file did not declare.
	hints map[Hint]string

	// refs is the descriptor's reference count.
	refs atomic.Int32
}

// Ref increments the reference count and returns the descriptor.
func (i *Info) Ref() *Info {
	i.refs.Add(1)
	return i
}

// Unref releases one reference. When the count reaches zero the descriptor
// releases its classification reference and drops its hints; the Info must
// not be used afterwards.
func (i *Info) Unref() {
	if i.refs.Add(-1) != 0 {
		return
	}

	if i.Mime != nil {
		i.Mime.Unref()
		i.Mime = nil
	}
	i.hints = nil
}

// Hint returns the value stored for hint, if the descriptor provides it.
// Descriptors of non-launcher files provide no hints at all.
func (i *Info) Hint(hint Hint) (string, bool) {
	if i.hints == nil {
		return "", false
	}
	v, ok := i.hints[hint]
	return v, ok
}

// Matches reports whether a and b denote the same observable file state:
// every resolved attribute, the classification record and the path
// identity are compared. Reference counts, display names and presentation
// hints are deliberately excluded, so a launcher rename (which only
// rewrites a Name field) still matches its pre-rename state. Callers use
// this to decide whether a change notification is warranted.
func Matches(a, b *Info) bool {
	if a == nil || b == nil {
		return false
	}

	return a.Type == b.Type &&
		a.Mode == b.Mode &&
		a.Flags == b.Flags &&
		a.UID == b.UID &&
		a.GID == b.GID &&
		a.Size == b.Size &&
		a.Atime.Equal(b.Atime) &&
		a.Mtime.Equal(b.Mtime) &&
		a.Ctime.Equal(b.Ctime) &&
		a.Inode == b.Inode &&
		a.Device == b.Device &&
		a.Mime == b.Mime &&
		a.Path == b.Path
}

// UnrefAll releases one reference on every descriptor in infos.
func UnrefAll(infos []*Info) {
	for _, info := range infos {
		info.Unref()
	}
}
