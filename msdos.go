package ftplist

import (
	"fmt"
	"strconv"
)

// MsdosEntry is an entry parsed from an MSDOS/IIS `dir` style LIST line.
// Only files and directories can be expressed in that layout.
type MsdosEntry struct {
	kind     EntryKind
	name     string
	size     int64
	dateText string
}

// ParseMsdos parses line as an MSDOS listing entry. It reports false when the
// line does not follow the MSDOS layout.
func ParseMsdos(line string) (*MsdosEntry, bool) {
	f, ok := msdosGrammar().match(line)
	if !ok {
		return nil, false
	}

	e := &MsdosEntry{
		kind: File,
		name: f.get("name"),
	}
	if f.get("dir") != "" {
		e.kind = Directory
	} else if n, err := parseSize(f.get("size")); err == nil {
		e.size = n
	}

	// All numeric groups are fixed-width digit runs, so Atoi cannot fail.
	month, _ := strconv.Atoi(f.get("month"))
	day, _ := strconv.Atoi(f.get("day"))
	hour, _ := strconv.Atoi(f.get("hour"))
	minute, _ := strconv.Atoi(f.get("minute"))
	yearText := f.get("year")
	year, _ := strconv.Atoi(yearText)

	e.dateText = fmt.Sprintf("%04d-%02d-%02dT%02d:%02d",
		expandYear(year, len(yearText)), month, day, to24Hour(hour, f.get("ampm")), minute)
	return e, true
}

// expandYear widens two- and three-digit years with a 1970 pivot.
func expandYear(year, digits int) int {
	if digits >= 4 {
		return year
	}
	if year < 70 {
		return year + 2000
	}
	return year + 1900
}

// to24Hour converts a 12-hour clock reading using the first letter of the
// AM/PM marker. Anything else, including a missing marker, passes through.
func to24Hour(hour int, marker string) int {
	if marker == "" {
		return hour
	}
	switch marker[0] {
	case 'p', 'P':
		if hour >= 1 && hour <= 11 {
			return hour + 12
		}
	case 'a', 'A':
		if hour == 12 {
			return 0
		}
	}
	return hour
}

func (e *MsdosEntry) Kind() EntryKind { return e.kind }
func (e *MsdosEntry) Name() string    { return e.name }
func (e *MsdosEntry) Size() int64     { return e.size }

// DateText returns the normalized "YYYY-MM-DDTHH:MM" timestamp. It is a
// display string; the day is not checked against the month.
func (e *MsdosEntry) DateText() string { return e.dateText }
