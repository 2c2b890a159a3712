package dialect

// Builder constructs a Dialect through fluent setters, validating the
// combination of options on Build(). A Builder from NewBuilder starts
// from the same baseline as DEFAULT (see predefined.go): comma-delimited,
// double-quote encapsulated, CRLF output, empty lines ignored.
type Builder struct {
	d Dialect
}

// NewBuilder returns a Builder seeded with the package baseline
// defaults (equivalent to starting from DEFAULT).
func NewBuilder() *Builder {
	b := &Builder{}
	b.d = Dialect{
		Delimiter:           ",",
		Quote:               '"',
		HasQuote:            true,
		RecordSeparator:     "\r\n",
		QuoteMode:           MINIMAL,
		DuplicateHeaderMode: ALLOW_ALL,
		IgnoreEmptyLines:    true,
		AutoFlush:           true,
	}
	return b
}

// From seeds the builder with an existing Dialect's fields, so callers
// can layer overrides onto a predefined dialect without mutating it.
func From(d Dialect) *Builder {
	return &Builder{d: d}
}

func (b *Builder) WithDelimiter(delim string) *Builder {
	b.d.Delimiter = delim
	return b
}

func (b *Builder) WithQuote(q rune) *Builder {
	b.d.Quote = q
	b.d.HasQuote = true
	return b
}

func (b *Builder) WithoutQuote() *Builder {
	b.d.HasQuote = false
	b.d.Quote = 0
	return b
}

func (b *Builder) WithEscape(e rune) *Builder {
	b.d.Escape = e
	b.d.HasEscape = true
	return b
}

func (b *Builder) WithoutEscape() *Builder {
	b.d.HasEscape = false
	b.d.Escape = 0
	return b
}

func (b *Builder) WithCommentMarker(c rune) *Builder {
	b.d.CommentMarker = c
	b.d.HasCommentMarker = true
	return b
}

func (b *Builder) WithRecordSeparator(sep string) *Builder {
	b.d.RecordSeparator = sep
	return b
}

func (b *Builder) WithNullString(s string) *Builder {
	b.d.NullString = s
	b.d.HasNullString = true
	return b
}

func (b *Builder) WithQuoteMode(m QuoteMode) *Builder {
	b.d.QuoteMode = m
	return b
}

func (b *Builder) WithDuplicateHeaderMode(m DuplicateHeaderMode) *Builder {
	b.d.DuplicateHeaderMode = m
	return b
}

func (b *Builder) WithIgnoreSurroundingSpaces(v bool) *Builder {
	b.d.IgnoreSurroundingSpaces = v
	return b
}

func (b *Builder) WithIgnoreEmptyLines(v bool) *Builder {
	b.d.IgnoreEmptyLines = v
	return b
}

func (b *Builder) WithIgnoreHeaderCase(v bool) *Builder {
	b.d.IgnoreHeaderCase = v
	return b
}

func (b *Builder) WithSkipHeaderRecord(v bool) *Builder {
	b.d.SkipHeaderRecord = v
	return b
}

func (b *Builder) WithAllowMissingColumnNames(v bool) *Builder {
	b.d.AllowMissingColumnNames = v
	return b
}

func (b *Builder) WithTrailingDelimiter(v bool) *Builder {
	b.d.TrailingDelimiter = v
	return b
}

func (b *Builder) WithTrim(v bool) *Builder {
	b.d.Trim = v
	return b
}

func (b *Builder) WithAutoFlush(v bool) *Builder {
	b.d.AutoFlush = v
	return b
}

func (b *Builder) WithLenientEof(v bool) *Builder {
	b.d.LenientEof = v
	return b
}

func (b *Builder) WithTrailingData(v bool) *Builder {
	b.d.TrailingData = v
	return b
}

func (b *Builder) WithInterpretUnicodeEscapes(v bool) *Builder {
	b.d.InterpretUnicodeEscapes = v
	return b
}

// WithHeader sets a fixed, ordered column list. Pass no names to mean
// "auto-read from first record".
func (b *Builder) WithHeader(names ...string) *Builder {
	b.d.Headers = append([]string{}, names...)
	b.d.HeadersIsSet = true
	return b
}

// WithoutHeader clears header handling entirely ("no header" mode).
func (b *Builder) WithoutHeader() *Builder {
	b.d.Headers = nil
	b.d.HeadersIsSet = false
	return b
}

func (b *Builder) WithHeaderComments(lines ...string) *Builder {
	b.d.HeaderComments = append([]string{}, lines...)
	return b
}

func (b *Builder) WithMaxRows(n int) *Builder {
	b.d.MaxRows = n
	b.d.HasMaxRows = true
	return b
}

// Build validates the accumulated options and returns an immutable
// Dialect, or an *csverr.InvalidDialectError describing the first
// violated invariant.
func (b *Builder) Build() (Dialect, error) {
	d := b.d
	if d.HasNullString && d.HasQuote {
		d.quotedNullString = string(d.Quote) + d.NullString + string(d.Quote)
	}
	if err := validate(&d); err != nil {
		return Dialect{}, err
	}
	return d, nil
}

// MustBuild is like Build but panics on error. Intended for package
// initializers constructing the predefined dialects, where a validation
// failure is a programming error.
func (b *Builder) MustBuild() Dialect {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
