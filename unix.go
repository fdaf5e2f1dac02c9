package ftplist

import (
	"strconv"
	"strings"
	"unicode"
)

// symlinkSeparator splits a symlink's name from its target in `ls -l` output.
const symlinkSeparator = " -> "

// UnixEntry is an entry parsed from a Unix `ls -l` style LIST line.
// It is immutable; all fields are read through methods.
type UnixEntry struct {
	kind        EntryKind
	name        string
	size        int64
	dateText    string
	target      string
	hasTarget   bool
	sticky      bool
	permissions Permissions
	acl         bool
	owner       string
	group       string
	pointer     string
	hasPointer  bool
}

// ParseUnix parses line as a Unix listing entry. It reports false when the
// line does not follow the Unix layout.
func ParseUnix(line string) (*UnixEntry, bool) {
	f, ok := unixGrammar().match(line)
	if !ok {
		return nil, false
	}

	kind := KindFromChar(f.get("type")[0])
	sticky, perms := foldSticky(f.get("permission"))
	e := &UnixEntry{
		kind:        kind,
		dateText:    strings.Join(strings.Fields(f.get("timestamp")), " "),
		sticky:      sticky,
		permissions: Permissions(perms),
		// '@' marks macOS extended attributes, which are not ACLs.
		acl:   f.get("acl") == "+",
		owner: f.get("owner"),
		group: f.get("group"),
	}

	if size := f.get("size"); strings.Contains(size, ",") {
		e.pointer = strings.Map(dropSpace, size)
		e.hasPointer = true
	} else if n, err := parseSize(size); err == nil {
		e.size = n
	}

	name := f.get("name")
	if kind == Symlink {
		e.name, e.target, e.hasTarget = strings.Cut(name, symlinkSeparator)
	} else {
		e.name = name
	}

	return e, true
}

// foldSticky moves the sticky bit out of the last permission character.
// 't' means sticky with execute-for-others, 'T' sticky without it.
func foldSticky(perms string) (bool, string) {
	last := len(perms) - 1
	switch perms[last] {
	case 't':
		return true, perms[:last] + "x"
	case 'T':
		return true, perms[:last] + "-"
	default:
		return false, perms
	}
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}

// parseSize parses a size string from a directory listing.
func parseSize(sizeStr string) (int64, error) {
	return strconv.ParseInt(sizeStr, 10, 64)
}

func (e *UnixEntry) Kind() EntryKind  { return e.kind }
func (e *UnixEntry) Name() string     { return e.name }
func (e *UnixEntry) Size() int64      { return e.size }
func (e *UnixEntry) DateText() string { return e.dateText }

// Target returns the symlink target. It is only present for Symlink entries
// whose name contained " -> ".
func (e *UnixEntry) Target() (string, bool) { return e.target, e.hasTarget }

// Sticky reports whether the sticky bit ('t' or 'T') was set.
func (e *UnixEntry) Sticky() bool { return e.sticky }

// Permissions returns the 9-character permission text with the sticky bit
// folded out. Setuid, setgid and mandatory-lock characters are kept as-is.
func (e *UnixEntry) Permissions() Permissions { return e.permissions }

// ACL reports whether the permission token carried a '+' marker.
func (e *UnixEntry) ACL() bool { return e.acl }

// Owner returns the owner name or numeric id, including any interior spaces.
func (e *UnixEntry) Owner() string { return e.owner }

// Group returns the group name or numeric id, including any interior spaces.
func (e *UnixEntry) Group() string { return e.group }

// Pointer returns the "major,minor" device numbers of a device entry. When it
// is present, Size is 0.
func (e *UnixEntry) Pointer() (string, bool) { return e.pointer, e.hasPointer }
