// Package ftplist parses the lines an FTP server sends in reply to LIST.
//
// # Overview
//
// LIST output is not standardized. Two layouts cover nearly every server in
// the wild, and this package recognizes both without being told which one a
// server uses:
//   - Unix `ls -l` style: type, permissions, links, owner, group, size or
//     device numbers, timestamp, name (and symlink target)
//   - MSDOS/IIS `dir` style: date, time, size or <DIR>, name
//
// For machine-readable listings, prefer MLSD when the server supports it.
//
// # Basic Usage
//
// Parse a single line:
//
//	entry, err := ftplist.Parse("drwxr-xr-x  10 root   root    4096 Dec 21  2012 usr")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(entry.Kind(), entry.Name(), entry.Size(), entry.DateText())
//
// Every Entry exposes Kind, Name, Size and DateText regardless of layout.
// Layout-specific fields are reached by checking the variant:
//
//	if u, ok := entry.Unix(); ok {
//	    fmt.Println(u.Permissions(), u.Owner(), u.Group())
//	}
//
// MustUnix and MustMsdos skip the check and panic on the wrong variant. They
// are meant for code that has already branched on Format or IsUnix.
//
// # Timestamps
//
// Timestamps are display strings, not time.Time values. Unix lines keep the
// server's text with whitespace collapsed ("Dec 21 2012", "Apr 4 23:57"); the
// year of recent entries is not inferred. MSDOS lines are normalized to
// "YYYY-MM-DDTHH:MM", with two-digit years pivoting at 1970 and 12-hour
// times converted to 24-hour.
//
// # Error Handling
//
// A line in neither layout is reported as a *ParseError that wraps
// ErrNoMatch:
//
//	if _, err := ftplist.Parse("total 24"); errors.Is(err, ftplist.ErrNoMatch) {
//	    // header, banner or unsupported format
//	}
//
// Splitting a multi-line response into lines is left to the caller.
package ftplist
