// Package parser assembles lexer tokens into records: it builds the
// header (fixed, auto-detected from the first row, or absent),
// accumulates fields into rows, attaches any preceding comment lines,
// and stops at the dialect's maxRows limit or end of stream.
//
// The record-assembly loop — pull one token at a time from the lexer,
// dispatch on its type, accumulate or terminate — follows the shape of
// the teacher's Tokenizer-driven statement scanner in sqldef's
// parser/token.go, generalized from SQL statements to CSV rows.
package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/csvdef/csvdef/csverr"
	"github.com/csvdef/csvdef/dialect"
	"github.com/csvdef/csvdef/internal/lexer"
	"github.com/csvdef/csvdef/internal/reader"
	"github.com/csvdef/csvdef/record"
)

// Parser reads records from an io.Reader under a Dialect. Not safe for
// concurrent use: one Parser drives one underlying stream.
type Parser struct {
	lx  *lexer.Lexer
	d   dialect.Dialect
	tok lexer.Token

	headerIndex  map[string]int
	headerValues []string

	recordNumber int64
	emitted      int
	done         bool
}

// New builds a Parser over r under dialect d, reading and validating
// the header (if the dialect configures one) before returning.
func New(r io.Reader, d dialect.Dialect) (*Parser, error) {
	var src io.Reader = r
	if d.InterpretUnicodeEscapes {
		src = reader.NewUnicodeUnescapingReader(r)
	}
	p := &Parser{
		lx: lexer.New(reader.New(src), d),
		d:  d,
	}
	if err := p.buildHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// Header returns the column names in effect (nil if the stream has no
// header), in header order.
func (p *Parser) Header() []string {
	if p.headerValues == nil {
		return nil
	}
	out := make([]string, len(p.headerValues))
	copy(out, p.headerValues)
	return out
}

// HeaderIndex returns the name-to-position mapping in effect, or nil
// for a headerless stream. The returned map is shared and must not be
// mutated.
func (p *Parser) HeaderIndex() map[string]int {
	return p.headerIndex
}

func (p *Parser) buildHeader() error {
	switch {
	case !p.d.HeadersIsSet:
		if p.d.SkipHeaderRecord {
			if _, _, _, _, _, atEOF, err := p.readRawRecord(); err != nil {
				return err
			} else if atEOF {
				p.done = true
			}
		}
		return nil

	case len(p.d.Headers) == 0:
		values, _, _, _, _, atEOF, err := p.readRawRecord()
		if err != nil {
			return err
		}
		if atEOF {
			p.done = true
		}
		if values == nil {
			return nil
		}
		idx, err := buildHeaderIndex(values, p.d)
		if err != nil {
			return err
		}
		p.headerIndex = idx
		p.headerValues = values
		return nil

	default:
		idx, err := buildHeaderIndex(p.d.Headers, p.d)
		if err != nil {
			return err
		}
		p.headerIndex = idx
		p.headerValues = append([]string{}, p.d.Headers...)
		if p.d.SkipHeaderRecord {
			if _, _, _, _, _, atEOF, err := p.readRawRecord(); err != nil {
				return err
			} else if atEOF {
				p.done = true
			}
		}
		return nil
	}
}

// buildHeaderIndex validates a candidate header row against the
// dialect's duplicate-name and missing-name policy and returns the
// name-to-position map, keyed by the header's own names. Case-folded
// lookup (IgnoreHeaderCase) is handled at query time by Record, not by
// aliasing keys here, so ToMap/PutIn/Header still report the header's
// actual names.
func buildHeaderIndex(names []string, d dialect.Dialect) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	seen := map[string]bool{}
	emptySeen := false

	for i, name := range names {
		if name == "" && !d.AllowMissingColumnNames {
			return nil, &csverr.ParseError{Kind: csverr.MissingColumnName, Detail: "column " + strconv.Itoa(i)}
		}
		blank := strings.TrimSpace(name) == ""
		switch d.DuplicateHeaderMode {
		case dialect.DISALLOW:
			if seen[name] {
				return nil, &csverr.ParseError{Kind: csverr.DuplicateHeader, Detail: name}
			}
			seen[name] = true
		case dialect.ALLOW_EMPTY:
			if blank {
				if emptySeen {
					continue
				}
				emptySeen = true
			} else if seen[name] {
				return nil, &csverr.ParseError{Kind: csverr.DuplicateHeader, Detail: name}
			} else {
				seen[name] = true
			}
		}
		idx[name] = i
	}
	return idx, nil
}

// cellValue applies the read-side per-cell transforms to a token's raw
// content: Trim (independent of the lexer's IgnoreSurroundingSpaces),
// then null-string mapping. A cell only maps to null when it came from
// an unquoted field and its text equals the dialect's configured null
// string — a quoted cell with that same text is a literal value.
func (p *Parser) cellValue() (value string, isNull bool) {
	text := p.tok.String()
	if p.d.Trim {
		text = strings.TrimSpace(text)
	}
	if p.d.HasNullString && !p.tok.Quoted && text == p.d.NullString {
		return text, true
	}
	return text, false
}

// readRawRecord pulls tokens until a record boundary, returning the
// field values, a parallel null-sentinel flag per field, any
// accumulated leading comment, the character offset the record
// started at, and whether the lexer reached end of stream (atEOF).
// values is nil when no further record remained; a final record with
// no trailing line terminator comes back with atEOF true and its values.
func (p *Parser) readRawRecord() (values []string, nulls []bool, comment string, hasComment bool, charPos int64, atEOF bool, err error) {
	var commentLines []string
	first := true

	for {
		startPos := p.lx.Position()
		if err := p.lx.NextToken(&p.tok); err != nil {
			return nil, nil, "", false, 0, false, err
		}

		if p.tok.Type == lexer.COMMENT {
			commentLines = append(commentLines, p.tok.String())
			continue
		}

		if first {
			charPos = startPos
			first = false
		}

		switch p.tok.Type {
		case lexer.TOKEN:
			v, isNull := p.cellValue()
			values = append(values, v)
			nulls = append(nulls, isNull)
		case lexer.EORECORD:
			v, isNull := p.cellValue()
			values = append(values, v)
			nulls = append(nulls, isNull)
			comment, hasComment = joinComments(commentLines)
			return values, nulls, comment, hasComment, charPos, false, nil
		case lexer.EOF:
			if !p.tok.Ready {
				comment, hasComment = joinComments(commentLines)
				return nil, nil, comment, hasComment, charPos, true, nil
			}
			v, isNull := p.cellValue()
			values = append(values, v)
			nulls = append(nulls, isNull)
			comment, hasComment = joinComments(commentLines)
			return values, nulls, comment, hasComment, charPos, true, nil
		}
	}
}

// Next returns the next record, or (nil, io.EOF) once the stream (or
// the dialect's maxRows limit) is exhausted.
func (p *Parser) Next() (*record.Record, error) {
	if p.done {
		return nil, io.EOF
	}
	if p.d.HasMaxRows && p.d.MaxRows > 0 && p.emitted >= p.d.MaxRows {
		p.done = true
		return nil, io.EOF
	}

	values, nulls, comment, hasComment, charPos, atEOF, err := p.readRawRecord()
	if err != nil {
		return nil, err
	}
	if values == nil {
		p.done = true
		return nil, io.EOF
	}
	if atEOF {
		p.done = true
	}

	p.recordNumber++
	p.emitted++
	return record.New(values, nulls, p.headerIndex, p.d.IgnoreHeaderCase, p.recordNumber, charPos, comment, hasComment), nil
}

// All reads every remaining record into a slice. Intended for small
// inputs and tests; large streams should use Next in a loop.
func (p *Parser) All() ([]*record.Record, error) {
	var out []*record.Record
	for {
		rec, err := p.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}
