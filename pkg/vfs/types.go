package vfs

// FileType is the file-kind taxonomy derived from the stat mode's type
// field. It is a closed enumeration: resolution never produces values
// outside this set, and callers must treat it as exhaustive.
type FileType uint8

const (
	// FileTypeUnknown is the zero value; resolution never yields it, but
	// it keeps uninitialized descriptors distinguishable.
	FileTypeUnknown FileType = iota

	// FileTypeRegular is a regular file
	FileTypeRegular

	// FileTypeDirectory is a directory
	FileTypeDirectory

	// FileTypeSymlink is a symbolic link
	FileTypeSymlink

	// FileTypeSocket is a Unix domain socket
	FileTypeSocket

	// FileTypeBlockDevice is a block special device
	FileTypeBlockDevice

	// FileTypeCharDevice is a character special device
	FileTypeCharDevice

	// FileTypeFifo is a named pipe
	FileTypeFifo
)

// String returns a human-readable name for the file type.
func (t FileType) String() string {
	switch t {
	case FileTypeRegular:
		return "regular"
	case FileTypeDirectory:
		return "directory"
	case FileTypeSymlink:
		return "symlink"
	case FileTypeSocket:
		return "socket"
	case FileTypeBlockDevice:
		return "blockdev"
	case FileTypeCharDevice:
		return "chardev"
	case FileTypeFifo:
		return "fifo"
	default:
		return "unknown"
	}
}

// FileFlags is a bit-set of derived capability flags. New flags may be
// added without disturbing existing bits.
type FileFlags uint32

const (
	// FlagNone means no flags are set
	FlagNone FileFlags = 0

	// FlagSymlink marks descriptors resolved through a symbolic link,
	// including dangling links
	FlagSymlink FileFlags = 1 << 0

	// FlagExecutable marks files that are safe to execute on activation:
	// the execute permission is effective and the classification is a
	// known executable type (or an Application launcher with an Exec line)
	FlagExecutable FileFlags = 1 << 1
)

// Has reports whether all bits in flag are set.
func (f FileFlags) Has(flag FileFlags) bool {
	return f&flag == flag
}

// Hint identifies an optional presentation value sourced from a launcher
// file rather than from the filesystem.
type Hint int

const (
	// HintIcon is the launcher's icon name or path
	HintIcon Hint = iota

	// HintName is the launcher's localized display name
	HintName
)
