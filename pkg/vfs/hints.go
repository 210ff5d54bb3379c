package vfs

import (
	"github.com/evandroforks/xfce4-thunar/pkg/keyfile"
)

// extractHints reads the presentation hints from a desktop launcher file.
//
// Best-effort by design: a launcher that cannot be opened or parsed simply
// yields a descriptor without hints, never an error. A launcher of type
// Application with a non-empty Exec line is additionally flagged
// executable, independent of the classifier's allow-list decision.
func (r *Resolver) extractHints(info *Info) {
	kf, err := keyfile.Open(info.Path)
	if err != nil {
		return
	}
	if !kf.HasGroup(keyfile.DesktopEntryGroup) {
		return
	}

	info.hints = make(map[Hint]string)

	if icon, ok := kf.Value(keyfile.DesktopEntryGroup, "Icon"); ok {
		info.hints[HintIcon] = icon
	}
	if name, ok := kf.LocalizedValue(keyfile.DesktopEntryGroup, "Name", r.locales); ok {
		info.hints[HintName] = name
	}

	entryType, ok := kf.Value(keyfile.DesktopEntryGroup, "Type")
	if !ok {
		entryType = "Application"
	}
	if exec, ok := kf.Value(keyfile.DesktopEntryGroup, "Exec"); ok &&
		entryType == "Application" && exec != "" {
		info.Flags |= FlagExecutable
	}
}
