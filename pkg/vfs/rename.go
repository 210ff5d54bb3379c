package vfs

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/evandroforks/xfce4-thunar/internal/logger"
	"github.com/evandroforks/xfce4-thunar/pkg/keyfile"
	"github.com/evandroforks/xfce4-thunar/pkg/mime"
)

// Rename gives the file referred to by info the new display name.
//
// The operation is smart about launcher files: for a desktop launcher the
// file name on disk is left alone and the launcher's Name field (or its
// first already-translated variant in the resolver's locale order) is
// rewritten instead, atomically. For any other file the path itself is
// renamed and, for regular files, the classification is re-derived since
// name-based rules may now match differently.
//
// On success info is mutated in place; on any failure info and the
// filesystem are left exactly as before the call. Raw attributes are never
// re-stated by a rename, only identity-derived fields change.
func (r *Resolver) Rename(info *Info, name string) error {
	if name == "" || strings.ContainsRune(name, '/') || !utf8.ValidString(name) {
		return &Error{Code: ErrInvalidName, Message: "invalid file name", Path: info.Path}
	}

	if info.Mime != nil && info.Mime.Name() == mime.TypeDesktopEntry {
		return r.renameLauncher(info, name)
	}
	return r.renamePath(info, name)
}

// renameLauncher rewrites the launcher's Name field in place. The key/value
// layer preserves comments, unknown keys, unrelated groups and every other
// translated variant; dropping any of those would be a correctness bug.
func (r *Resolver) renameLauncher(info *Info, name string) error {
	kf, err := keyfile.Open(info.Path)
	if err != nil {
		return newIOError("failed to open launcher file", info.Path, err)
	}

	if !kf.HasGroup(keyfile.DesktopEntryGroup) {
		return &Error{Code: ErrInvalidFormat, Message: "invalid launcher file", Path: info.Path}
	}

	// Overwrite the first locale variant the user would actually see;
	// only fall back to the unlocalized Name when none exists.
	localized := false
	for _, locale := range r.locales {
		key := keyfile.LocalizedKey("Name", locale)
		if kf.HasKey(keyfile.DesktopEntryGroup, key) {
			kf.SetValue(keyfile.DesktopEntryGroup, key, name)
			localized = true
			break
		}
	}
	if !localized {
		kf.SetValue(keyfile.DesktopEntryGroup, "Name", name)
	}

	if err := kf.Save(); err != nil {
		return newIOError("failed to save launcher file", info.Path, err)
	}

	if info.hints != nil {
		info.hints[HintName] = name
	}

	return nil
}

// renamePath renames the file on disk and updates the descriptor's
// identity-derived fields.
func (r *Resolver) renamePath(info *Info, name string) error {
	if strings.IndexByte(name, 0) >= 0 {
		return &Error{Code: ErrEncoding, Message: "file name not representable on the filesystem", Path: info.Path}
	}

	dstPath := filepath.Join(filepath.Dir(info.Path), name)

	// Pre-check for a friendlier error; inherently racy, the rename
	// syscall below remains the authority.
	if _, err := os.Lstat(dstPath); err == nil {
		return &Error{Code: ErrAlreadyExists, Message: "file already exists", Path: dstPath}
	}

	if err := os.Rename(info.Path, dstPath); err != nil {
		return newIOError("failed to rename file", info.Path, err)
	}

	if r.cache != nil {
		if err := r.cache.Forget(info.Path); err != nil {
			logger.Debug("info cache forget failed for %s: %v", info.Path, err)
		}
	}

	oldMime := info.Mime
	info.Path = dstPath
	info.DisplayName = name

	// Name-based classification rules may change the result, so regular
	// files are re-classified against the new path. The executable flag
	// and launcher hints follow the classification.
	if info.Type == FileTypeRegular {
		info.Mime = nil
		info.hints = nil
		info.Flags &^= FlagExecutable
		r.classifyRegular(info)
		if oldMime != nil {
			oldMime.Unref()
		}
	}

	return nil
}
