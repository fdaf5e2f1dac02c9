package ftplist

import (
	"errors"
	"log/slog"
)

// ListingParser parses one directory listing line in a single layout.
// Implementations outside this package usually adapt a line and delegate to
// UnixParser or MSDOSParser; see WithParsers.
type ListingParser interface {
	Parse(line string) (*Entry, bool)
}

// UnixParser parses Unix-style directory entries.
type UnixParser struct{}

func (p *UnixParser) Parse(line string) (*Entry, bool) {
	if u, ok := ParseUnix(line); ok {
		return &Entry{unix: u}, true
	}
	return nil, false
}

// MSDOSParser parses DOS/Windows-style directory entries.
type MSDOSParser struct{}

func (p *MSDOSParser) Parse(line string) (*Entry, bool) {
	if m, ok := ParseMsdos(line); ok {
		return &Entry{msdos: m}, true
	}
	return nil, false
}

// CompositeParser tries each enabled layout in order: Unix first, then MSDOS.
// It is read-only after construction and safe for concurrent use.
type CompositeParser struct {
	parsers []ListingParser
	formats []Format
	extra   []ListingParser
	logger  *slog.Logger
}

// Option configures a CompositeParser.
type Option func(*CompositeParser) error

// WithLogger sets the logger used to report lines that no layout accepts.
// Those reports are made at debug level. Without it, slog.Default is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	}))
//	p, _ := ftplist.NewCompositeParser(ftplist.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(p *CompositeParser) error {
		if logger == nil {
			return errors.New("ftplist: nil logger")
		}
		p.logger = logger
		return nil
	}
}

// WithFormats restricts the parser to the given layouts. The try order stays
// Unix before MSDOS regardless of argument order.
//
// Example:
//
//	// The server is known to be IIS; never interpret lines as Unix.
//	p, _ := ftplist.NewCompositeParser(ftplist.WithFormats(ftplist.FormatMsdos))
func WithFormats(formats ...Format) Option {
	return func(p *CompositeParser) error {
		if len(formats) == 0 {
			return errors.New("ftplist: no listing formats given")
		}
		var unix, msdos bool
		for _, f := range formats {
			switch f {
			case FormatUnix:
				unix = true
			case FormatMsdos:
				msdos = true
			default:
				return errors.New("ftplist: unknown listing format " + f.String())
			}
		}
		p.formats = p.formats[:0]
		if unix {
			p.formats = append(p.formats, FormatUnix)
		}
		if msdos {
			p.formats = append(p.formats, FormatMsdos)
		}
		return nil
	}
}

// WithParsers adds parsers that are tried, in the given order, after the
// built-in layouts have rejected a line. A parser that reports success with a
// nil entry is treated as not matching.
//
// Example:
//
//	// Accept Unix lines that some servers indent.
//	type indented struct{ ftplist.UnixParser }
//
//	func (p *indented) Parse(line string) (*ftplist.Entry, bool) {
//	    return p.UnixParser.Parse(strings.TrimLeft(line, " "))
//	}
//
//	p, _ := ftplist.NewCompositeParser(ftplist.WithParsers(&indented{}))
func WithParsers(parsers ...ListingParser) Option {
	return func(p *CompositeParser) error {
		if len(parsers) == 0 {
			return errors.New("ftplist: no parsers given")
		}
		for _, lp := range parsers {
			if lp == nil {
				return errors.New("ftplist: nil parser")
			}
		}
		p.extra = append(p.extra, parsers...)
		return nil
	}
}

// NewCompositeParser returns a parser for both layouts, adjusted by opts.
func NewCompositeParser(opts ...Option) (*CompositeParser, error) {
	p := &CompositeParser{
		formats: []Format{FormatUnix, FormatMsdos},
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	for _, f := range p.formats {
		switch f {
		case FormatUnix:
			p.parsers = append(p.parsers, &UnixParser{})
		case FormatMsdos:
			p.parsers = append(p.parsers, &MSDOSParser{})
		}
	}
	p.parsers = append(p.parsers, p.extra...)
	return p, nil
}

// Formats returns the built-in layouts this parser tries, in order. Parsers
// added with WithParsers are not included.
func (p *CompositeParser) Formats() []Format {
	return append([]Format(nil), p.formats...)
}

// Parse returns the entry produced by the first layout that accepts line.
// When none does, the error is a *ParseError wrapping ErrNoMatch.
func (p *CompositeParser) Parse(line string) (*Entry, error) {
	for _, parser := range p.parsers {
		if entry, ok := parser.Parse(line); ok && entry != nil {
			return entry, nil
		}
	}

	logger := p.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Unable to parse LIST line, unknown format", "raw", line)
	return nil, &ParseError{Line: line}
}

var defaultParser = &CompositeParser{
	parsers: []ListingParser{&UnixParser{}, &MSDOSParser{}},
	formats: []Format{FormatUnix, FormatMsdos},
}

// Parse parses one LIST line, trying the Unix layout and then the MSDOS
// layout. Lines in neither layout yield a *ParseError wrapping ErrNoMatch.
//
// Example:
//
//	entry, err := ftplist.Parse("drwxr-xr-x  10 root   root    4096 Dec 21  2012 usr")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(entry.Kind(), entry.Name(), entry.Size(), entry.DateText())
func Parse(line string) (*Entry, error) {
	return defaultParser.Parse(line)
}
