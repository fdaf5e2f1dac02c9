// Package scan splits a LIST response into lines and parses each one.
package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gonzalop/ftplist"
)

// maxLineSize bounds a single listing line. Names longer than this do not
// occur on real servers.
const maxLineSize = 64 * 1024

// Parser is the subset of *ftplist.CompositeParser used by Scan.
type Parser interface {
	Parse(line string) (*ftplist.Entry, error)
}

// Result is the outcome for one non-blank line.
type Result struct {
	LineNo int // 1-based, counting blank lines
	Raw    string
	Entry  *ftplist.Entry
	Err    error
}

// Summary counts what a scan saw.
type Summary struct {
	Lines    int `json:"lines" yaml:"lines"`
	Parsed   int `json:"parsed" yaml:"parsed"`
	Unix     int `json:"unix" yaml:"unix"`
	Msdos    int `json:"msdos" yaml:"msdos"`
	Unparsed int `json:"unparsed" yaml:"unparsed"`
}

func (s *Summary) add(r Result) {
	s.Lines++
	switch {
	case r.Err != nil:
		s.Unparsed++
	case r.Entry.IsUnix():
		s.Parsed++
		s.Unix++
	default:
		s.Parsed++
		s.Msdos++
	}
}

// Scan reads r line by line, parses every non-blank line with p and calls fn
// with the result. Both LF and CRLF line endings are accepted. Unparseable
// lines are reported through Result.Err and do not stop the scan; an error
// returned by fn does.
func Scan(ctx context.Context, r io.Reader, p Parser, fn func(Result) error) (Summary, error) {
	var sum Summary

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		res := Result{LineNo: lineNo, Raw: line}
		res.Entry, res.Err = p.Parse(line)
		sum.add(res)
		if err := fn(res); err != nil {
			return sum, err
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return sum, fmt.Errorf("line %d exceeds %d bytes: %w", lineNo+1, maxLineSize, err)
		}
		return sum, fmt.Errorf("failed to read directory listing: %w", err)
	}
	return sum, nil
}

// Collect scans r and returns the parsed entries in order along with the
// lines that could not be parsed.
func Collect(ctx context.Context, r io.Reader, p Parser) ([]*ftplist.Entry, []Result, Summary, error) {
	var entries []*ftplist.Entry
	var unparsed []Result
	sum, err := Scan(ctx, r, p, func(res Result) error {
		if res.Err != nil {
			unparsed = append(unparsed, res)
			return nil
		}
		entries = append(entries, res.Entry)
		return nil
	})
	return entries, unparsed, sum, err
}
