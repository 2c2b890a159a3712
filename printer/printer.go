// Package printer writes records out under a Dialect: per-value
// quoting/escaping decisions, header and header-comment emission, and
// streamed encoding for io.Reader-valued fields.
//
// The incremental build-onto-a-writer style — accumulate one cell at a
// time, decide delimiters and quoting locally, never materialize a
// whole record as a string before writing it — follows how the
// teacher's schema package renders DDL text onto an io.Writer a
// fragment at a time (schema/ast.go's String() methods), adapted here
// from ad hoc fmt.Fprintf calls to a dialect-driven encoder.
package printer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/csvdef/csvdef/csverr"
	"github.com/csvdef/csvdef/dialect"
	"github.com/csvdef/csvdef/record"
	"github.com/csvdef/csvdef/util"
)

// Printer writes records to an underlying io.Writer under a Dialect.
// Not safe for concurrent use: one Printer drives one writer.
type Printer struct {
	out       io.Writer
	w         *bufio.Writer
	d         dialect.Dialect
	newRecord bool
	closed    bool
}

// New builds a Printer over w under dialect d, writing any configured
// header comments and the header row (unless the dialect skips it)
// before returning.
func New(w io.Writer, d dialect.Dialect) (*Printer, error) {
	p := &Printer{out: w, w: bufio.NewWriter(w), d: d, newRecord: true}

	for _, line := range d.HeaderComments {
		if err := p.PrintComment(line); err != nil {
			return nil, err
		}
	}

	if d.HeadersIsSet && len(d.Headers) > 0 && !d.SkipHeaderRecord {
		values := util.TransformSlice(d.Headers, func(h string) interface{} { return h })
		if err := p.PrintRecord(values...); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func isNumericValue(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// resolveValue implements the per-value algorithm's step 1: turn an
// arbitrary value into (text, isNull, isNumeric, stream). Exactly one
// of (text valid) or (stream non-nil) is meaningful on return.
func (p *Printer) resolveValue(value interface{}) (text string, isNull, isNumeric bool, stream io.Reader) {
	if value == nil {
		if p.d.HasNullString {
			return p.d.NullString, true, false, nil
		}
		return "", true, false, nil
	}
	switch v := value.(type) {
	case io.Reader:
		return "", false, false, v
	case string:
		return v, false, false, nil
	case fmt.Stringer:
		return v.String(), false, false, nil
	default:
		return fmt.Sprint(v), false, isNumericValue(value), nil
	}
}

// Print writes one value as a single cell, preceding it with the
// dialect's delimiter unless it is the first cell since the last
// Println/PrintComment.
func (p *Printer) Print(value interface{}) error {
	if p.closed {
		return fmt.Errorf("csvdef: print after close")
	}

	text, isNull, isNumeric, stream := p.resolveValue(value)
	firstCell := p.newRecord
	if !firstCell {
		if _, err := p.w.WriteString(p.d.Delimiter); err != nil {
			return err
		}
	}
	p.newRecord = false

	if stream != nil {
		return p.printStream(stream)
	}

	if p.d.Trim {
		text = strings.TrimSpace(text)
	}

	// The null sentinel is already in wire form (it came straight from
	// the dialect's NullString), so it is written verbatim rather than
	// run through the quote/escape encoder — encoding it would mangle
	// any quote/escape/delimiter character the sentinel itself contains
	// (e.g. MYSQL's backslash-escaped `\N`).
	if isNull && p.d.HasNullString {
		if p.d.HasQuote && p.d.QuoteMode == dialect.ALL {
			_, err := p.w.WriteString(p.d.QuotedNullString())
			return err
		}
		_, err := p.w.WriteString(text)
		return err
	}

	switch {
	case p.d.HasQuote:
		return p.printWithQuotes(text, isNull, isNumeric, firstCell)
	case p.d.HasEscape:
		return p.printWithEscapes(text)
	default:
		_, err := p.w.WriteString(text)
		return err
	}
}

func (p *Printer) isDelimiterRune(r rune) bool {
	for _, dr := range p.d.Delimiter {
		if r == dr {
			return true
		}
	}
	return false
}

func (p *Printer) needsMinimalQuoting(text string, firstCell bool) bool {
	d := p.d
	runes := []rune(text)
	if len(runes) == 0 {
		return firstCell
	}
	if runes[0] <= '#' {
		return true
	}
	for _, r := range runes {
		switch {
		case r == '\r' || r == '\n':
			return true
		case d.HasQuote && r == d.Quote:
			return true
		case d.HasEscape && r == d.Escape:
			return true
		case p.isDelimiterRune(r):
			return true
		}
	}
	if last := runes[len(runes)-1]; last <= ' ' {
		return true
	}
	return false
}

// printWithQuotes implements the per-dialect quoting decision, then
// either writes the quoted form or falls back to printWithEscapes.
func (p *Printer) printWithQuotes(text string, isNull, isNumeric, firstCell bool) error {
	var quote bool
	switch p.d.QuoteMode {
	case dialect.ALL:
		quote = true
	case dialect.ALL_NON_NULL:
		quote = !isNull
	case dialect.NON_NUMERIC:
		quote = !isNumeric
	case dialect.NONE:
		return p.printWithEscapes(text)
	default: // MINIMAL
		quote = p.needsMinimalQuoting(text, firstCell)
	}

	if !quote {
		_, err := p.w.WriteString(text)
		return err
	}
	return p.writeQuoted(text)
}

func (p *Printer) writeQuoted(text string) error {
	d := p.d
	var sb strings.Builder
	sb.WriteRune(d.Quote)
	for _, r := range text {
		switch {
		case r == d.Quote:
			if d.HasEscape {
				sb.WriteRune(d.Escape)
			} else {
				sb.WriteRune(d.Quote)
			}
			sb.WriteRune(r)
		case d.HasEscape && d.Escape != d.Quote && r == d.Escape:
			sb.WriteRune(d.Escape)
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(d.Quote)
	_, err := p.w.WriteString(sb.String())
	return err
}

// printWithEscapes writes text using the escape-character convention
// (no quoting): CR and LF are rendered as escape+'r'/escape+'n', and
// the escape character or any delimiter character is escaped in place.
func (p *Printer) printWithEscapes(text string) error {
	var sb strings.Builder
	for _, r := range text {
		p.appendEscapedRune(&sb, r)
	}
	_, err := p.w.WriteString(sb.String())
	return err
}

func (p *Printer) appendEscapedRune(sb *strings.Builder, r rune) {
	d := p.d
	switch {
	case r == '\r':
		sb.WriteRune(d.Escape)
		sb.WriteRune('r')
	case r == '\n':
		sb.WriteRune(d.Escape)
		sb.WriteRune('n')
	case d.HasEscape && r == d.Escape:
		sb.WriteRune(d.Escape)
		sb.WriteRune(r)
	case p.isDelimiterRune(r):
		sb.WriteRune(d.Escape)
		sb.WriteRune(r)
	default:
		sb.WriteRune(r)
	}
}

// printStream encodes an io.Reader-valued field incrementally, never
// holding the whole value in memory: when the dialect has a quote
// character, it always quotes (no lookahead to decide otherwise) and
// precedes each interior quote with the escape character, or with a
// second quote when no escape is set.
func (p *Printer) printStream(r io.Reader) error {
	br := bufio.NewReader(r)

	if !p.d.HasQuote {
		for {
			ru, _, err := br.ReadRune()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			var sb strings.Builder
			p.appendEscapedRune(&sb, ru)
			if _, err := p.w.WriteString(sb.String()); err != nil {
				return err
			}
		}
	}

	if _, err := p.w.WriteRune(p.d.Quote); err != nil {
		return err
	}
	for {
		ru, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if ru == p.d.Quote {
			if p.d.HasEscape {
				if _, err := p.w.WriteRune(p.d.Escape); err != nil {
					return err
				}
			} else if _, err := p.w.WriteRune(p.d.Quote); err != nil {
				return err
			}
		}
		if _, err := p.w.WriteRune(ru); err != nil {
			return err
		}
	}
	_, err := p.w.WriteRune(p.d.Quote)
	return err
}

// Println ends the current record: writes a trailing delimiter if
// configured, then the record separator if set, and marks the next
// Print as the first cell of a new record.
func (p *Printer) Println() error {
	if p.d.TrailingDelimiter {
		if _, err := p.w.WriteString(p.d.Delimiter); err != nil {
			return err
		}
	}
	if p.d.RecordSeparator != "" {
		if _, err := p.w.WriteString(p.d.RecordSeparator); err != nil {
			return err
		}
	}
	p.newRecord = true
	if p.d.AutoFlush {
		return p.w.Flush()
	}
	return nil
}

// PrintRecord writes one full record: each value via Print, then
// Println.
func (p *Printer) PrintRecord(values ...interface{}) error {
	for _, v := range values {
		if err := p.Print(v); err != nil {
			return err
		}
	}
	return p.Println()
}

// PrintRecords writes each of a sequence of records.
func (p *Printer) PrintRecords(records [][]interface{}) error {
	for _, rec := range records {
		if err := p.PrintRecord(rec...); err != nil {
			return err
		}
	}
	return nil
}

// PrintParsedRecord writes out a previously-parsed record's field
// values as a new record under this printer's dialect.
func (p *Printer) PrintParsedRecord(rec *record.Record) error {
	return p.PrintRecord(rec.AnyValues()...)
}

// PrintComment writes a (possibly multi-line) comment, prefixing every
// line with the dialect's comment marker and a space. Requires the
// dialect to configure a comment marker.
func (p *Printer) PrintComment(text string) error {
	if !p.d.HasCommentMarker {
		return &csverr.InvalidDialectError{Reason: "printComment requires a comment marker"}
	}
	for _, line := range strings.Split(text, "\n") {
		if _, err := p.w.WriteRune(p.d.CommentMarker); err != nil {
			return err
		}
		if _, err := p.w.WriteString(" " + line); err != nil {
			return err
		}
		if p.d.RecordSeparator != "" {
			if _, err := p.w.WriteString(p.d.RecordSeparator); err != nil {
				return err
			}
		}
	}
	p.newRecord = true
	return nil
}

// Flush writes any buffered output to the underlying writer.
func (p *Printer) Flush() error {
	return p.w.Flush()
}

// Close flushes buffered output and, if the underlying writer
// implements io.Closer, closes it.
func (p *Printer) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.w.Flush(); err != nil {
		return err
	}
	if closer, ok := p.out.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
