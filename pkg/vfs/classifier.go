package vfs

import (
	"golang.org/x/sys/unix"

	"github.com/evandroforks/xfce4-thunar/internal/logger"
	"github.com/evandroforks/xfce4-thunar/pkg/mime"
	"github.com/evandroforks/xfce4-thunar/pkg/store/infocache"
)

// classify fills in the descriptor's classification, the executable flag
// and (for desktop launchers) the presentation hints, from the already
// resolved raw attributes.
func (r *Resolver) classify(info *Info) {
	switch info.Type {
	case FileTypeSocket:
		info.Mime = r.db.Info("inode/socket")
	case FileTypeSymlink:
		info.Mime = r.db.Info("inode/symlink")
	case FileTypeBlockDevice:
		info.Mime = r.db.Info("inode/blockdevice")
	case FileTypeDirectory:
		info.Mime = r.db.Info("inode/directory")
	case FileTypeCharDevice:
		info.Mime = r.db.Info("inode/chardevice")
	case FileTypeFifo:
		info.Mime = r.db.Info("inode/fifo")
	case FileTypeRegular:
		r.classifyRegular(info)
	default:
		// Unreachable with a POSIX-conformant attribute source.
		info.Mime = r.db.Info(mime.TypeOctetStream)
	}
}

// classifyRegular resolves a regular file's content type and derives the
// executable flag. Also the entry point for re-classification after a
// rename, which may change name-based results.
func (r *Resolver) classifyRegular(info *Info) {
	info.Mime = r.fileMime(info)

	// For security reasons only well-known content types are treated as
	// executable, no matter what the mode bits claim. The access check is
	// deliberate: mode bits alone ignore noexec mounts and ACLs.
	if info.Mode&0o444 != 0 && unix.Access(info.Path, unix.X_OK) == nil {
		if r.isExecutableType(info.Mime) {
			info.Flags |= FlagExecutable
		}
	}

	if info.Mime.Name() == mime.TypeDesktopEntry {
		r.extractHints(info)
	}
}

// isExecutableType reports whether the classification, one of its aliases
// or one of its ancestors is in the executable allow-list. A failed
// ancestry probe counts as "does not match", never as an error.
func (r *Resolver) isExecutableType(mi *mime.Info) bool {
	related := r.db.InfosForInfo(mi)
	defer mime.UnrefAll(related)

	for _, rel := range related {
		switch rel.Name() {
		case mime.TypeExecutable, mime.TypeShellScript:
			return true
		}
	}
	return false
}

// fileMime resolves the content type of a regular file, consulting the
// classification cache first when one is attached.
func (r *Resolver) fileMime(info *Info) *mime.Info {
	if r.cache != nil {
		entry, ok, err := r.cache.Get(info.Path)
		if err != nil {
			logger.Debug("info cache lookup failed for %s: %v", info.Path, err)
		} else if ok && entry.Valid(info.Device, info.Inode, info.Size, info.Mtime) {
			return r.db.Info(entry.MimeName)
		}
	}

	mi := r.db.InfoForFile(info.Path, info.DisplayName)

	if r.cache != nil {
		err := r.cache.Put(infocache.Entry{
			Path:     info.Path,
			Device:   info.Device,
			Inode:    info.Inode,
			Size:     info.Size,
			Mtime:    info.Mtime,
			MimeName: mi.Name(),
		})
		if err != nil {
			logger.Debug("info cache store failed for %s: %v", info.Path, err)
		}
	}

	return mi
}
