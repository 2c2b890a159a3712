// Package lexer implements the character-level state machine that
// turns a position-tracking reader.Reader into a stream of Tokens under
// a configured dialect: encapsulated (quoted) fields, embedded
// newlines, doubled-quote and backslash-escape forms, comments,
// empty-line skipping and CR/LF/CRLF line terminators.
//
// The overall shape — a Lexer driving a buffered character source one
// token at a time, remembering the previous character across calls —
// follows the teacher's Tokenizer.Scan()/next() in sqldef's
// parser/token.go, generalized from byte-oriented SQL tokens to
// rune-oriented, dialect-parameterized CSV tokens.
package lexer

import (
	"strings"

	"github.com/csvdef/csvdef/csverr"
	"github.com/csvdef/csvdef/dialect"
	"github.com/csvdef/csvdef/internal/reader"
)

// Lexer advances a reader.Reader one token at a time under a Dialect.
// Not safe for concurrent use (design §5): one Lexer drives one Reader.
type Lexer struct {
	r *reader.Reader
	d dialect.Dialect

	delimRunes []rune

	// firstEol records the first end-of-line sequence encountered, for
	// consumers that want to report it as metadata.
	firstEol string
}

// New creates a Lexer reading from r under dialect d.
func New(r *reader.Reader, d dialect.Dialect) *Lexer {
	return &Lexer{r: r, d: d, delimRunes: []rune(d.Delimiter)}
}

// FirstEol returns the first line terminator sequence seen ("\n",
// "\r" or "\r\n"), or "" if none has been seen yet.
func (l *Lexer) FirstEol() string {
	return l.firstEol
}

// Position returns the number of characters consumed from the
// underlying reader so far.
func (l *Lexer) Position() int64 {
	return l.r.GetPosition()
}

// Line returns the 1-based source line number of the next character
// to be consumed.
func (l *Lexer) Line() int {
	return l.r.GetCurrentLineNumber()
}

func isStartOfLineMarker(c rune, has bool) bool {
	return !has || c == '\r' || c == '\n'
}

// readEndOfLine reports whether c begins a line terminator, greedily
// consuming the LF that follows a CR so CRLF is treated as one
// terminator.
func (l *Lexer) readEndOfLine(c rune) bool {
	switch c {
	case '\r':
		if l.r.Peek() == '\n' {
			l.r.Read()
			l.recordEol("\r\n")
		} else {
			l.recordEol("\r")
		}
		return true
	case '\n':
		l.recordEol("\n")
		return true
	default:
		return false
	}
}

func (l *Lexer) recordEol(s string) {
	if l.firstEol == "" {
		l.firstEol = s
	}
}

func isMetaWhitespace(c rune) bool {
	return c == ' ' || c == '\t'
}

// isDelimiterStart reports whether c could begin the delimiter, and if
// the delimiter is more than one rune, consumes the remaining runes
// from the reader when they match (returning false and consuming
// nothing on a partial, non-matching prefix).
func (l *Lexer) isDelimiterStart(c rune) bool {
	if c != l.delimRunes[0] {
		return false
	}
	if len(l.delimRunes) == 1 {
		return true
	}
	rest := make([]rune, len(l.delimRunes)-1)
	n := l.r.LookAhead(rest)
	if n < len(rest) {
		return false
	}
	for i, want := range l.delimRunes[1:] {
		if rest[i] != want {
			return false
		}
	}
	for range rest {
		l.r.Read()
	}
	return true
}

func isLexerMeta(d dialect.Dialect, c rune) bool {
	switch c {
	case '\r', '\n', '\f', '\t', '\b':
		return true
	}
	if len(d.Delimiter) > 0 && c == []rune(d.Delimiter)[0] {
		return true
	}
	if d.HasQuote && c == d.Quote {
		return true
	}
	if d.HasEscape && c == d.Escape {
		return true
	}
	if d.HasCommentMarker && c == d.CommentMarker {
		return true
	}
	return false
}

// readEscape consumes the character after an escape character and
// returns the literal rune it represents, or (x, false), x being the
// character read, for an unknown escape sequence the caller should
// render as the escape char plus x verbatim.
func (l *Lexer) readEscape() (rune, bool) {
	x := l.r.Read()
	switch x {
	case 'r':
		return '\r', true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	}
	if x == reader.EOF {
		return reader.EOF, true
	}
	if isLexerMeta(l.d, x) {
		return x, true
	}
	return x, false
}

// NextToken advances the lexer and populates tok with the next token.
// NextToken calls tok.reset() itself before populating it, so the
// caller can pass the same Token to every call.
func (l *Lexer) NextToken(tok *Token) error {
	tok.reset()

	last, hasLast := l.r.GetLastChar()
	c := l.r.Read()
	eol := l.readEndOfLine(c)

	for l.d.IgnoreEmptyLines && eol && isStartOfLineMarker(last, hasLast) {
		last = c
		c = l.r.Read()
		if c == reader.EOF {
			tok.Type = EOF
			tok.Ready = false
			return nil
		}
		eol = l.readEndOfLine(c)
		hasLast = true
	}

	if last == reader.EOF || (last != l.delimRunes[0] && c == reader.EOF) {
		tok.Type = EOF
		tok.Ready = false
		return nil
	}

	if isStartOfLineMarker(last, hasLast) && l.d.HasCommentMarker && c == l.d.CommentMarker {
		line, ok := l.r.ReadLine()
		if !ok {
			tok.Type = EOF
			tok.Ready = false
			return nil
		}
		tok.Type = COMMENT
		tok.appendString(strings.TrimSpace(line))
		tok.Ready = true
		return nil
	}

	for {
		if l.d.IgnoreSurroundingSpaces {
			for isMetaWhitespace(c) && !l.isDelimiterStart(c) && !l.readEndOfLine(c) {
				c = l.r.Read()
			}
		}

		switch {
		case l.isDelimiterStart(c):
			tok.Type = TOKEN
			tok.Ready = true
			return nil
		case l.readEndOfLine(c):
			tok.Type = EORECORD
			tok.Ready = true
			return nil
		case l.d.HasQuote && c == l.d.Quote:
			tok.Quoted = true
			return l.parseEncapsulated(tok)
		case c == reader.EOF:
			tok.Type = EOF
			tok.Ready = true
			return nil
		default:
			return l.parseSimple(c, tok)
		}
	}
}

func (l *Lexer) parseSimple(c rune, tok *Token) error {
	for {
		switch {
		case c == reader.EOF:
			tok.Type = EOF
			tok.Ready = true
			if l.d.IgnoreSurroundingSpaces {
				trimTrailingToken(tok)
			}
			return nil
		case l.isDelimiterStart(c):
			tok.Type = TOKEN
			tok.Ready = true
			if l.d.IgnoreSurroundingSpaces {
				trimTrailingToken(tok)
			}
			return nil
		case l.readEndOfLine(c):
			tok.Type = EORECORD
			tok.Ready = true
			if l.d.IgnoreSurroundingSpaces {
				trimTrailingToken(tok)
			}
			return nil
		case l.d.HasEscape && c == l.d.Escape:
			if l.tryEscapedMultiCharDelimiter(tok) {
				// delimiter matched after the escape char; continue
				// accumulating the next character.
				c = l.r.Read()
				continue
			}
			decoded, ok := l.readEscape()
			if !ok {
				tok.appendRune(l.d.Escape)
				tok.appendRune(decoded)
			} else if decoded == reader.EOF {
				tok.Type = EOF
				tok.Ready = true
				return nil
			} else {
				tok.appendRune(decoded)
			}
		default:
			tok.appendRune(c)
		}
		c = l.r.Read()
	}
}

// tryEscapedMultiCharDelimiter detects "\<delim>" (escape char
// immediately followed by the full multi-character delimiter) and, on
// a match, consumes and appends the delimiter literally.
func (l *Lexer) tryEscapedMultiCharDelimiter(tok *Token) bool {
	if len(l.delimRunes) <= 1 {
		return false
	}
	buf := make([]rune, len(l.delimRunes))
	n := l.r.LookAhead(buf)
	if n < len(buf) {
		return false
	}
	for i, want := range l.delimRunes {
		if buf[i] != want {
			return false
		}
	}
	for range buf {
		l.r.Read()
	}
	tok.appendString(l.d.Delimiter)
	return true
}

// parseEncapsulated parses a quoted field. The caller has already
// consumed the opening quote (it was the dispatch character c).
func (l *Lexer) parseEncapsulated(tok *Token) error {
	startLine := l.r.GetCurrentLineNumber()

	for {
		c := l.r.Read()
		switch {
		case c == reader.EOF:
			if l.d.LenientEof {
				tok.Type = EOF
				tok.Ready = true
				return nil
			}
			return &csverr.ParseError{
				Kind:              csverr.UnterminatedQuotedField,
				Line:              startLine,
				Column:            0,
				CharacterPosition: l.r.GetPosition(),
			}
		case c == l.d.Quote:
			if l.r.Peek() == l.d.Quote {
				l.r.Read()
				tok.appendRune(l.d.Quote)
				continue
			}
			return l.finishAfterClosingQuote(tok)
		case l.d.HasEscape && c == l.d.Escape && l.d.Escape != l.d.Quote:
			decoded, ok := l.readEscape()
			if !ok {
				tok.appendRune(l.d.Escape)
				tok.appendRune(decoded)
			} else if decoded == reader.EOF {
				if l.d.LenientEof {
					tok.Type = EOF
					tok.Ready = true
					return nil
				}
				return &csverr.ParseError{
					Kind:              csverr.UnterminatedQuotedField,
					Line:              startLine,
					CharacterPosition: l.r.GetPosition(),
				}
			} else {
				tok.appendRune(decoded)
			}
		default:
			tok.appendRune(c)
		}
	}
}

// finishAfterClosingQuote consumes trailing characters after the
// closing quote until delimiter, eol or EOF, per the dialect's
// trailingData tolerance.
func (l *Lexer) finishAfterClosingQuote(tok *Token) error {
	for {
		c := l.r.Read()
		switch {
		case c == reader.EOF:
			tok.Type = EOF
			tok.Ready = true
			return nil
		case l.isDelimiterStart(c):
			tok.Type = TOKEN
			tok.Ready = true
			return nil
		case l.readEndOfLine(c):
			tok.Type = EORECORD
			tok.Ready = true
			return nil
		case isMetaWhitespace(c):
			continue
		default:
			if l.d.TrailingData {
				tok.appendRune(c)
				continue
			}
			return &csverr.ParseError{
				Kind:              csverr.UnexpectedCharAfterQuote,
				Line:              l.r.GetCurrentLineNumber(),
				CharacterPosition: l.r.GetPosition(),
			}
		}
	}
}

func trimTrailingToken(tok *Token) {
	end := len(tok.Content)
	for end > 0 && (tok.Content[end-1] == ' ' || tok.Content[end-1] == '\t') {
		end--
	}
	tok.Content = tok.Content[:end]
}
