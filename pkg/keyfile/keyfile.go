// Package keyfile reads and writes freedesktop-style key/value files
// (desktop entries): "[Group]" sections, "Key=Value" lines, localized
// "Key[locale]=Value" variants and "#" comments.
//
// The package is a thin desktop-entry layer over gopkg.in/ini.v1. Loading
// and saving preserve comments, unknown keys, unrelated groups and every
// translated variant, which the rename path depends on: rewriting a single
// Name key must never be a destructive rewrite of the rest of the file.
package keyfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// DesktopEntryGroup is the group every launcher file must carry.
const DesktopEntryGroup = "Desktop Entry"

func init() {
	// Desktop entries are written as "Key=Value", not aligned "Key = Value".
	ini.PrettyFormat = false
}

// File is a loaded key/value file bound to its path on disk.
type File struct {
	path string
	ini  *ini.File
}

// Open loads the key/value file at path.
func Open(path string) (*File, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		// Values may legitimately contain "#" and ";" (e.g. Exec lines);
		// only whole-line comments are comments in this format.
		IgnoreInlineComment: true,
		KeyValueDelimiters:  "=",
	}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load key file %s: %w", path, err)
	}

	return &File{path: path, ini: f}, nil
}

// Path returns the path the file was loaded from and will be saved to.
func (f *File) Path() string {
	return f.path
}

// HasGroup reports whether the file contains the named group.
func (f *File) HasGroup(group string) bool {
	_, err := f.ini.GetSection(group)
	return err == nil
}

// HasKey reports whether the named group contains the exact key
// (localized variants are distinct keys).
func (f *File) HasKey(group, key string) bool {
	sec, err := f.ini.GetSection(group)
	if err != nil {
		return false
	}
	return sec.HasKey(key)
}

// Value returns the untranslated value of key in group. The boolean
// reports whether the key is present.
func (f *File) Value(group, key string) (string, bool) {
	sec, err := f.ini.GetSection(group)
	if err != nil {
		return "", false
	}
	if !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).String(), true
}

// LocalizedValue returns the best value of key in group for the ordered
// locale preference list: the first "key[locale]" variant present wins,
// falling back to the untranslated key.
func (f *File) LocalizedValue(group, key string, locales []string) (string, bool) {
	for _, locale := range locales {
		if v, ok := f.Value(group, localizedKey(key, locale)); ok {
			return v, true
		}
	}
	return f.Value(group, key)
}

// Bool returns the boolean value of key in group, or def when the key is
// absent or not a recognizable boolean.
func (f *File) Bool(group, key string, def bool) bool {
	v, ok := f.Value(group, key)
	if !ok {
		return def
	}
	switch v {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return def
	}
}

// SetValue sets key in group, creating both as needed. Existing comments
// attached to the key are preserved.
func (f *File) SetValue(group, key, value string) {
	f.ini.Section(group).Key(key).SetValue(value)
}

// Save serializes the file and atomically replaces its on-disk contents:
// the full serialization is written to a temporary sibling first and then
// renamed over the original, so a partial write is never observable.
func (f *File) Save() error {
	dir := filepath.Dir(f.path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := f.ini.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to serialize key file: %w", err)
	}

	// Carry the original file mode over; CreateTemp defaults to 0600.
	if st, err := os.Stat(f.path); err == nil {
		tmp.Chmod(st.Mode().Perm())
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write key file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}

	return nil
}

// localizedKey builds the "key[locale]" variant name.
func localizedKey(key, locale string) string {
	return key + "[" + locale + "]"
}

// LocalizedKey is the exported form of the "key[locale]" naming rule,
// used by callers that probe for existing translated variants.
func LocalizedKey(key, locale string) string {
	return localizedKey(key, locale)
}
