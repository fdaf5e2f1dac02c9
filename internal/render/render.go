// Package render writes parsed listing entries as text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/gonzalop/ftplist"
	"gopkg.in/yaml.v3"
)

// Record is the serializable view of an entry. Unix-only fields are omitted
// for MSDOS entries.
type Record struct {
	Format      string `json:"format" yaml:"format"`
	Kind        string `json:"kind" yaml:"kind"`
	Name        string `json:"name" yaml:"name"`
	Size        int64  `json:"size" yaml:"size"`
	Date        string `json:"date" yaml:"date"`
	Target      string `json:"target,omitempty" yaml:"target,omitempty"`
	Permissions string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	Sticky      bool   `json:"sticky,omitempty" yaml:"sticky,omitempty"`
	ACL         bool   `json:"acl,omitempty" yaml:"acl,omitempty"`
	Owner       string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Group       string `json:"group,omitempty" yaml:"group,omitempty"`
	Pointer     string `json:"pointer,omitempty" yaml:"pointer,omitempty"`
}

// NewRecord builds the record for e.
func NewRecord(e *ftplist.Entry) Record {
	rec := Record{
		Format: e.Format().String(),
		Kind:   e.Kind().String(),
		Name:   e.Name(),
		Size:   e.Size(),
		Date:   e.DateText(),
	}
	if u, ok := e.Unix(); ok {
		rec.Target, _ = u.Target()
		rec.Permissions = u.Permissions().String()
		rec.Sticky = u.Sticky()
		rec.ACL = u.ACL()
		rec.Owner = u.Owner()
		rec.Group = u.Group()
		rec.Pointer, _ = u.Pointer()
	}
	return rec
}

// Output formats accepted by NewWriter.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Writer renders records. Text output is streamed; JSON and YAML output is
// written as a single document on Flush.
type Writer interface {
	Write(rec Record) error
	Flush() error
}

// NewWriter returns a Writer for the named output format.
func NewWriter(output string, w io.Writer) (Writer, error) {
	switch output {
	case OutputText, "":
		return &textWriter{tw: tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)}, nil
	case OutputJSON:
		return &docWriter{w: w, encode: encodeJSON}, nil
	case OutputYAML:
		return &docWriter{w: w, encode: encodeYAML}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", output)
	}
}

type textWriter struct {
	tw *tabwriter.Writer
}

func (t *textWriter) Write(rec Record) error {
	size := strconv.FormatInt(rec.Size, 10)
	if rec.Pointer != "" {
		size = rec.Pointer
	}
	perms := rec.Permissions
	if perms == "" {
		perms = "-"
	}
	name := rec.Name
	if rec.Target != "" {
		name += " -> " + rec.Target
	}
	_, err := fmt.Fprintf(t.tw, "%s\t%s\t%s\t%s\t%s\t%s\n", rec.Format, rec.Kind, perms, size, rec.Date, name)
	return err
}

func (t *textWriter) Flush() error {
	return t.tw.Flush()
}

type docWriter struct {
	w       io.Writer
	records []Record
	encode  func(io.Writer, []Record) error
}

func (d *docWriter) Write(rec Record) error {
	d.records = append(d.records, rec)
	return nil
}

func (d *docWriter) Flush() error {
	records := d.records
	if records == nil {
		records = []Record{}
	}
	d.records = nil
	return d.encode(d.w, records)
}

func encodeJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func encodeYAML(w io.Writer, records []Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}
