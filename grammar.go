package ftplist

import (
	"regexp"
	"sync"
)

// word matches one Unicode word character. Go's \w is ASCII-only, and owner,
// group and month tokens from localized servers are not.
const word = `[\pL\pN_]`

// space and nonSpace cover Unicode white space (Go's \s is ASCII-only), so
// fields separated by NBSP and similar still split. Digits stay ASCII: they
// are converted with strconv.
const (
	space    = `[\s\p{Z}\x{85}]`
	nonSpace = `[^\s\p{Z}\x{85}]`
)

// Unix `ls -l` layout:
//
//	drwxr-xr-x  10 root   root    4096 Dec 21  2012 usr
//	brw-rw----   1 root   disk    8,   0 Nov 24 10:13 sda
//
// Owner and group are tried as: numeric id, two capitalised words ("Domain
// Users"), a single word, then any non-space run. Leftmost-first alternation
// picks the first shape that lets the rest of the line match.
const unixPattern = `^(?P<type>[bcdelfmpSs-])` +
	`(?P<permission>(?:[r-][w-][xsStTL-]){3})` +
	`(?P<acl>[+@])?` + space + `+` +
	`(?P<inodes>\d+)` + space + `+` +
	`(?P<owner>\d+|[A-Z]` + word + `+` + space + `+[A-Z]` + word + `+|` + word + `+|` + nonSpace + `+)` + space + `+` +
	`(?P<group>\d+|[A-Z][\pL\pN_\\]+` + space + `+[A-Z]` + word + `+|` + word + `+|` + nonSpace + `+)` + space + `+` +
	`(?P<size>\d+(?:,` + space + `*\d*)?)` + space + `+` +
	`(?P<timestamp>` + word + `{3}` + space + `+\d{1,2}` + space + `+(?:\d{1,2}:\d{2}|\d{4}))` + space + `+` +
	`(?P<name>.+)$`

// MSDOS / IIS `dir` layout:
//
//	08-22-18  02:05PM       <DIR>          Test
//	08-22-2018  14:05             99710 iisstart.png
const msdosPattern = `^(?P<month>\d{2})[-/](?P<day>\d{2})[-/](?P<year>\d{2,4})` + space + `+` +
	`(?P<hour>\d{2}):(?P<minute>\d{2})(?:` + space + `?(?P<ampm>[AaMmPp]{1,2}))?` + space + `+` +
	`(?:(?P<size>\d+)|(?P<dir><DIR>))` + space + `+` +
	`(?P<name>.+)$`

// grammar is a compiled field layout with named capture groups.
type grammar struct {
	re *regexp.Regexp
}

func newGrammar(pattern string) *grammar {
	return &grammar{re: regexp.MustCompile(pattern)}
}

// Both grammars are compiled on first use and never modified afterwards.
var (
	unixGrammar  = sync.OnceValue(func() *grammar { return newGrammar(unixPattern) })
	msdosGrammar = sync.OnceValue(func() *grammar { return newGrammar(msdosPattern) })
)

// fields holds the submatches of one successful grammar match.
type fields struct {
	g *grammar
	m []string
}

// match applies the grammar to line. A false result means the line does not
// follow this layout.
func (g *grammar) match(line string) (fields, bool) {
	m := g.re.FindStringSubmatch(line)
	if m == nil {
		return fields{}, false
	}
	return fields{g: g, m: m}, true
}

// get returns the text captured by the named group, or "" when the group
// did not participate in the match.
func (f fields) get(name string) string {
	i := f.g.re.SubexpIndex(name)
	if i < 0 {
		return ""
	}
	return f.m[i]
}
