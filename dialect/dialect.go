// Package dialect models the immutable, validated bundle of formatting
// options that parameterizes the lexer, parser and printer: delimiter,
// quote and escape characters, line endings, header policy and quoting
// strategy. A Dialect is built with Builder and, once built, is safe to
// share across goroutines and reuse for parsing distinct streams.
package dialect

import (
	"strings"

	"github.com/csvdef/csvdef/csverr"
)

// QuoteMode selects when the printer quotes a field.
type QuoteMode int

const (
	// MINIMAL quotes only fields that require it to round-trip.
	MINIMAL QuoteMode = iota
	// ALL quotes every field, including nulls (using the quoted null form).
	ALL
	// ALL_NON_NULL quotes every non-null field, leaving nulls unquoted.
	ALL_NON_NULL
	// NON_NUMERIC quotes every field whose source value was not numeric.
	NON_NUMERIC
	// NONE never quotes; escape must be set so special characters can
	// still be represented.
	NONE
)

func (m QuoteMode) String() string {
	switch m {
	case MINIMAL:
		return "MINIMAL"
	case ALL:
		return "ALL"
	case ALL_NON_NULL:
		return "ALL_NON_NULL"
	case NON_NUMERIC:
		return "NON_NUMERIC"
	case NONE:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// DuplicateHeaderMode controls how repeated header names are handled.
type DuplicateHeaderMode int

const (
	// ALLOW_ALL permits any number of duplicate (including blank) names.
	ALLOW_ALL DuplicateHeaderMode = iota
	// ALLOW_EMPTY collapses all empty/blank names into a single bucket
	// when checking for duplicates, but rejects any other repeat.
	ALLOW_EMPTY
	// DISALLOW rejects any repeated header name, blank or not.
	DISALLOW
)

// Dialect is an immutable bundle of CSV formatting options. Construct one
// with NewBuilder().Build(), or start from one of the package-level
// predefined values and layer overrides with From(d).With*.
type Dialect struct {
	Delimiter    string
	Quote        rune
	HasQuote     bool
	Escape       rune
	HasEscape    bool
	CommentMarker    rune
	HasCommentMarker bool

	RecordSeparator string

	NullString    string
	HasNullString bool
	// quotedNullString is the precomputed `quote + NullString + quote`
	// form used by the printer under QuoteMode ALL.
	quotedNullString string

	QuoteMode           QuoteMode
	DuplicateHeaderMode DuplicateHeaderMode

	IgnoreSurroundingSpaces bool
	IgnoreEmptyLines        bool
	IgnoreHeaderCase        bool
	SkipHeaderRecord        bool
	AllowMissingColumnNames bool
	TrailingDelimiter       bool
	Trim                    bool
	AutoFlush               bool
	LenientEof              bool
	TrailingData            bool

	// InterpretUnicodeEscapes enables the historical \uXXXX pre-reader
	// (SPEC_FULL.md "Unicode-escape pre-reader").
	InterpretUnicodeEscapes bool

	// Headers: nil means "no header"; non-nil empty means "auto-read
	// from first record"; non-nil non-empty is the fixed column list.
	Headers        []string
	HeadersIsSet   bool
	HeaderComments []string

	// MaxRows is an optional limit on emitted non-header records. 0
	// means unlimited.
	MaxRows    int
	HasMaxRows bool
}

// QuotedNullString returns the precomputed `quote + NullString + quote`
// representation used by the printer when QuoteMode is ALL.
func (d Dialect) QuotedNullString() string {
	return d.quotedNullString
}

// IsLineBreak reports whether r is a character the dialect reserves for
// record separation (CR or LF), which may not appear inside delimiter,
// quote, escape or comment-marker characters.
func IsLineBreak(r rune) bool {
	return r == '\r' || r == '\n'
}

func validate(d *Dialect) error {
	if d.Delimiter == "" {
		return &csverr.InvalidDialectError{Reason: "delimiter must be non-empty"}
	}
	for _, r := range d.Delimiter {
		if IsLineBreak(r) {
			return &csverr.InvalidDialectError{Reason: "delimiter must not contain CR or LF"}
		}
	}

	distinct := map[rune]string{}
	checkDistinct := func(r rune, hasIt bool, name string) error {
		if !hasIt {
			return nil
		}
		if IsLineBreak(r) {
			return &csverr.InvalidDialectError{Reason: name + " must not be CR or LF"}
		}
		if other, ok := distinct[r]; ok {
			return &csverr.InvalidDialectError{Reason: name + " collides with " + other}
		}
		distinct[r] = name
		return nil
	}
	if len(d.Delimiter) == 1 {
		if err := checkDistinct(rune(d.Delimiter[0]), true, "delimiter"); err != nil {
			return err
		}
	}
	if err := checkDistinct(d.Quote, d.HasQuote, "quote"); err != nil {
		return err
	}
	// escape == quote is the MongoDB convention (an embedded quote is
	// escaped by doubling it via the escape mechanism rather than a
	// distinct backslash form), so it is exempt from the pairwise
	// distinctness check rather than rejected as a collision.
	if !(d.HasEscape && d.HasQuote && d.Escape == d.Quote) {
		if err := checkDistinct(d.Escape, d.HasEscape, "escape"); err != nil {
			return err
		}
	}
	if err := checkDistinct(d.CommentMarker, d.HasCommentMarker, "comment marker"); err != nil {
		return err
	}

	if d.QuoteMode == NONE && !d.HasEscape {
		return &csverr.InvalidDialectError{Reason: "quoteMode NONE requires escape to be set"}
	}

	if d.HeadersIsSet && len(d.Headers) > 0 {
		if err := validateHeaderList(d.Headers, d.DuplicateHeaderMode, d.AllowMissingColumnNames); err != nil {
			return err
		}
	}

	return nil
}

func validateHeaderList(headers []string, mode DuplicateHeaderMode, allowMissing bool) error {
	seen := map[string]bool{}
	emptySeen := false
	for _, h := range headers {
		if h == "" && !allowMissing {
			return &csverr.InvalidDialectError{Reason: "blank header name requires AllowMissingColumnNames"}
		}
		blank := strings.TrimSpace(h) == ""
		switch mode {
		case DISALLOW:
			if seen[h] {
				return &csverr.InvalidDialectError{Reason: "duplicate header name: " + h}
			}
			seen[h] = true
		case ALLOW_EMPTY:
			if blank {
				if emptySeen {
					// ALLOW_EMPTY collapses all blanks into one bucket;
					// a second blank is still allowed, only non-blank
					// duplicates are rejected.
					continue
				}
				emptySeen = true
				continue
			}
			if seen[h] {
				return &csverr.InvalidDialectError{Reason: "duplicate header name: " + h}
			}
			seen[h] = true
		case ALLOW_ALL:
			// anything goes
		}
	}
	return nil
}
