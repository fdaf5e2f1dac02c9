package ftplist

import (
	"fmt"
	"strings"
)

// EntryKind is the type of file-system object a listing line describes.
type EntryKind int

// Kinds an entry can have. Unknown covers type characters that the Unix
// layout accepts but that have no dedicated kind (e.g. 'D' doors, 'e', 'm').
const (
	Unknown EntryKind = iota
	Directory
	File
	BlockDevice
	CharacterDevice
	Pipe
	Socket
	Symlink
)

var kindNames = [...]string{
	Unknown:         "unknown",
	Directory:       "dir",
	File:            "file",
	BlockDevice:     "block",
	CharacterDevice: "char",
	Pipe:            "pipe",
	Socket:          "socket",
	Symlink:         "link",
}

// String returns the short lowercase name of the kind ("dir", "file", "link", ...).
func (k EntryKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

// KindFromChar maps the leading type character of a Unix listing line to a
// kind. The mapping is total: characters without a dedicated kind yield Unknown.
func KindFromChar(c byte) EntryKind {
	switch c {
	case '-':
		return File
	case 'd':
		return Directory
	case 'b':
		return BlockDevice
	case 'c':
		return CharacterDevice
	case 'p':
		return Pipe
	case 's':
		return Socket
	case 'l':
		return Symlink
	default:
		return Unknown
	}
}

// ParseKind converts a one-character type token to a kind.
// Tokens of any other length are rejected.
func ParseKind(s string) (EntryKind, error) {
	if len(s) != 1 {
		return Unknown, fmt.Errorf("ftplist: kind token must be exactly one character, got %q", s)
	}
	return KindFromChar(s[0]), nil
}

// Permissions is the 9-character rwx-triplet text of a Unix entry, after the
// sticky bit has been folded out of the last position.
type Permissions string

func (p Permissions) String() string {
	return string(p)
}

// Format identifies which listing layout produced an entry.
type Format int

const (
	FormatUnix Format = iota + 1
	FormatMsdos
)

func (f Format) String() string {
	switch f {
	case FormatUnix:
		return "unix"
	case FormatMsdos:
		return "msdos"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts "unix" or "msdos" (case-insensitive; "dos" and
// "windows" are accepted as aliases for msdos).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unix":
		return FormatUnix, nil
	case "msdos", "dos", "windows":
		return FormatMsdos, nil
	default:
		return 0, fmt.Errorf("ftplist: unknown listing format %q", s)
	}
}
