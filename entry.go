package ftplist

// Info is the format-independent view of a parsed listing line.
// Entry, UnixEntry and MsdosEntry all implement it.
type Info interface {
	// Kind is the type of object the line describes.
	Kind() EntryKind
	// Name is the entry name; for symlinks it excludes the target.
	Name() string
	// Size is the size in bytes, or 0 for directories and device entries.
	Size() int64
	// DateText is the timestamp as display text. Unix entries keep the
	// server's "Mon D HH:MM" or "Mon D YYYY" form; MSDOS entries are
	// normalized to "YYYY-MM-DDTHH:MM".
	DateText() string
}

var (
	_ Info = (*Entry)(nil)
	_ Info = (*UnixEntry)(nil)
	_ Info = (*MsdosEntry)(nil)
)

// Entry is one parsed LIST line, tagged with the layout it was written in.
// Parsed entries have exactly one of the two variants set. The format-specific fields are
// reached through Unix or Msdos after checking the variant.
type Entry struct {
	unix  *UnixEntry
	msdos *MsdosEntry
}

// Format reports which layout the line was parsed with. The zero Entry has
// no layout and reports 0.
func (e *Entry) Format() Format {
	switch {
	case e.unix != nil:
		return FormatUnix
	case e.msdos != nil:
		return FormatMsdos
	default:
		return 0
	}
}

// IsUnix reports whether the entry came from a Unix-style line.
func (e *Entry) IsUnix() bool { return e.unix != nil }

// IsMsdos reports whether the entry came from an MSDOS-style line.
func (e *Entry) IsMsdos() bool { return e.msdos != nil }

// info returns the set variant, or nil for the zero Entry.
func (e *Entry) info() Info {
	switch {
	case e.unix != nil:
		return e.unix
	case e.msdos != nil:
		return e.msdos
	default:
		return nil
	}
}

// The projection methods return zero values on the zero Entry.

func (e *Entry) Kind() EntryKind {
	if i := e.info(); i != nil {
		return i.Kind()
	}
	return Unknown
}

func (e *Entry) Name() string {
	if i := e.info(); i != nil {
		return i.Name()
	}
	return ""
}

func (e *Entry) Size() int64 {
	if i := e.info(); i != nil {
		return i.Size()
	}
	return 0
}

func (e *Entry) DateText() string {
	if i := e.info(); i != nil {
		return i.DateText()
	}
	return ""
}

// Unix returns the Unix variant. When the entry is an MSDOS entry it reports
// false and the receiver is left as it was.
func (e *Entry) Unix() (*UnixEntry, bool) {
	return e.unix, e.unix != nil
}

// Msdos returns the MSDOS variant. When the entry is a Unix entry it reports
// false and the receiver is left as it was.
func (e *Entry) Msdos() (*MsdosEntry, bool) {
	return e.msdos, e.msdos != nil
}

// MustUnix returns the Unix variant and panics if the entry is not one.
// Use it only after the variant has been established, e.g. in a branch on
// IsUnix or Format; otherwise use Unix.
func (e *Entry) MustUnix() *UnixEntry {
	u, ok := e.Unix()
	if !ok {
		panic("ftplist: MustUnix called on " + e.Format().String() + " entry")
	}
	return u
}

// MustMsdos returns the MSDOS variant and panics if the entry is not one.
// Use it only after the variant has been established; otherwise use Msdos.
func (e *Entry) MustMsdos() *MsdosEntry {
	m, ok := e.Msdos()
	if !ok {
		panic("ftplist: MustMsdos called on " + e.Format().String() + " entry")
	}
	return m
}
