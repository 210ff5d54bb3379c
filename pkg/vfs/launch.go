package vfs

import (
	"path/filepath"
	"strings"

	exectmpl "github.com/evandroforks/xfce4-thunar/pkg/exec"
	"github.com/evandroforks/xfce4-thunar/pkg/keyfile"
	"github.com/evandroforks/xfce4-thunar/pkg/mime"
)

// Plan is a fully assembled execution request. Building a plan performs no
// process creation; an external launcher is expected to spawn Argv in
// WorkingDirectory, targeting DisplayTarget when non-empty.
type Plan struct {
	// Argv is the expanded argument vector; Argv[0] is the program
	Argv []string

	// WorkingDirectory is the directory to spawn the process in
	WorkingDirectory string

	// DisplayTarget names the display/screen the caller wants the
	// application to appear on; empty means the launcher's default
	DisplayTarget string
}

// BuildPlan assembles the execution request for the file referred to by
// info, with targets as the files/URIs handed to the application.
//
// For a desktop launcher the Exec template, icon, name and Terminal flag
// are read from the launcher file and expanded; a launcher without a
// usable Exec line fails with ErrMissingExecField, an unparsable one with
// ErrUnreadableLauncher. Any other file is launched as itself: the plan is
// built from a synthesized template of the shell-quoted path followed by a
// many-files placeholder.
//
// The working directory is the parent of the first target when targets are
// given, otherwise the parent of the file itself.
func (r *Resolver) BuildPlan(info *Info, targets []string, display string) (*Plan, error) {
	var argv []string

	if info.Mime != nil && info.Mime.Name() == mime.TypeDesktopEntry {
		kf, err := keyfile.Open(info.Path)
		if err != nil {
			return nil, &Error{Code: ErrUnreadableLauncher, Message: "unable to parse launcher file", Path: info.Path}
		}

		execLine, ok := kf.Value(keyfile.DesktopEntryGroup, "Exec")
		if !ok || execLine == "" {
			return nil, &Error{Code: ErrMissingExecField, Message: "no Exec field specified", Path: info.Path}
		}

		name, _ := kf.LocalizedValue(keyfile.DesktopEntryGroup, "Name", r.locales)
		icon, _ := kf.Value(keyfile.DesktopEntryGroup, "Icon")
		terminal := kf.Bool(keyfile.DesktopEntryGroup, "Terminal", false)

		argv, err = exectmpl.Parse(execLine, targets, icon, name, info.Path, terminal)
		if err != nil {
			return nil, &Error{Code: ErrParse, Message: err.Error(), Path: info.Path}
		}
	} else {
		template := shellQuote(info.Path) + " %F"

		var err error
		argv, err = exectmpl.Parse(template, targets, "", "", "", false)
		if err != nil {
			return nil, &Error{Code: ErrParse, Message: err.Error(), Path: info.Path}
		}
	}

	workingDirectory := filepath.Dir(info.Path)
	if len(targets) > 0 {
		if p, ok := exectmpl.TargetPath(targets[0]); ok {
			workingDirectory = filepath.Dir(p)
		}
	}

	return &Plan{
		Argv:             argv,
		WorkingDirectory: workingDirectory,
		DisplayTarget:    display,
	}, nil
}

// shellQuote wraps s in single quotes so the shell-words tokenizer treats
// it as one argument regardless of embedded spaces or metacharacters.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
