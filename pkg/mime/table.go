package mime

import "strings"

// typeEntry describes one built-in content type: its canonical name, the
// types it is a subclass of (closest first), and alternative names.
//
// The table is a compact excerpt of the freedesktop shared-mime-info
// hierarchy covering the types the resolver pipeline cares about; anything
// outside it is resolved by sniffing and interned on demand.
type typeEntry struct {
	name    string
	parents []string
	aliases []string
}

var typeTable = []typeEntry{
	// Synthetic inode types for non-regular files.
	{name: "inode/socket"},
	{name: "inode/symlink"},
	{name: "inode/blockdevice"},
	{name: "inode/directory"},
	{name: "inode/chardevice"},
	{name: "inode/fifo"},

	{name: TypeOctetStream},
	{name: TypeExecutable, parents: []string{TypeOctetStream}},
	{name: "application/x-sharedlib", parents: []string{TypeOctetStream}},

	{name: "text/plain", parents: []string{TypeOctetStream}},
	{
		name:    TypeShellScript,
		parents: []string{TypeExecutable, "text/plain"},
		aliases: []string{"application/x-sh", "text/x-sh"},
	},
	{name: TypeDesktopEntry, parents: []string{"text/plain"}, aliases: []string{"application/x-gnome-app-info"}},

	{name: "text/x-python", parents: []string{TypeExecutable, "text/plain"}},
	{name: "application/x-perl", parents: []string{TypeExecutable, "text/plain"}, aliases: []string{"text/x-perl"}},
	{name: "application/x-ruby", parents: []string{TypeExecutable, "text/plain"}},
	{name: "text/x-csrc", parents: []string{"text/plain"}, aliases: []string{"text/x-c"}},
	{name: "text/x-go", parents: []string{"text/plain"}},
	{name: "text/markdown", parents: []string{"text/plain"}},
	{name: "text/html", parents: []string{"text/plain"}},
	{name: "text/csv", parents: []string{"text/plain"}},

	{name: "application/xml", parents: []string{"text/plain"}, aliases: []string{"text/xml"}},
	{name: "application/json", parents: []string{"application/xml"}},
	{name: "image/svg+xml", parents: []string{"application/xml"}},

	{name: "image/png"},
	{name: "image/jpeg", aliases: []string{"image/pjpeg"}},
	{name: "image/gif"},
	{name: "image/webp"},

	{name: "audio/mpeg", aliases: []string{"audio/mp3"}},
	{name: "audio/ogg", aliases: []string{"application/ogg"}},
	{name: "audio/flac"},
	{name: "video/mp4"},
	{name: "video/webm"},

	{name: "application/pdf", aliases: []string{"application/x-pdf"}},
	{name: "application/zip", aliases: []string{"application/x-zip"}},
	{name: "application/x-tar"},
	{name: "application/gzip", aliases: []string{"application/x-gzip"}},
	{name: "application/x-xz"},
	{name: "application/zstd"},
	{name: "application/x-iso9660-image"},
}

// suffixTable maps file-name suffixes to canonical type names. Longest
// matching suffix wins, so ".tar.gz" beats ".gz".
var suffixTable = map[string]string{
	".desktop":  TypeDesktopEntry,
	".sh":       TypeShellScript,
	".bash":     TypeShellScript,
	".py":       "text/x-python",
	".pl":       "application/x-perl",
	".rb":       "application/x-ruby",
	".c":        "text/x-csrc",
	".h":        "text/x-csrc",
	".go":       "text/x-go",
	".txt":      "text/plain",
	".md":       "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
	".csv":      "text/csv",
	".xml":      "application/xml",
	".json":     "application/json",
	".svg":      "image/svg+xml",
	".png":      "image/png",
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
	".gif":      "image/gif",
	".webp":     "image/webp",
	".mp3":      "audio/mpeg",
	".ogg":      "audio/ogg",
	".flac":     "audio/flac",
	".mp4":      "video/mp4",
	".webm":     "video/webm",
	".pdf":      "application/pdf",
	".zip":      "application/zip",
	".tar":      "application/x-tar",
	".gz":       "application/gzip",
	".xz":       "application/x-xz",
	".zst":      "application/zstd",
	".iso":      "application/x-iso9660-image",
	".so":       "application/x-sharedlib",
	".AppImage": TypeExecutable,
}

// literalTable maps exact file names that carry no usable suffix.
var literalTable = map[string]string{
	"Makefile":  "text/x-makefile",
	"makefile":  "text/x-makefile",
	"Dockerfile": "text/x-dockerfile",
	"COPYING":   "text/plain",
	"LICENSE":   "text/plain",
	"README":    "text/plain",
}

// lookupGlob resolves a display name against the literal and suffix rules.
func lookupGlob(displayName string) (string, bool) {
	if name, ok := literalTable[displayName]; ok {
		return name, true
	}

	best := ""
	bestLen := 0
	for suffix, name := range suffixTable {
		if len(suffix) > bestLen && strings.HasSuffix(displayName, suffix) {
			best = name
			bestLen = len(suffix)
		}
	}
	if bestLen > 0 {
		return best, true
	}

	return "", false
}
