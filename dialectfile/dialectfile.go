// Package dialectfile loads dialect overrides from a YAML file (or an
// inline YAML string) and layers them onto a base Dialect, the way a
// csvdef user can check a dialect into version control instead of
// repeating flags on every invocation.
//
// The read-file/parse-YAML/merge-onto-base shape follows the teacher's
// database.ParseGeneratorConfig/MergeGeneratorConfig pair: a plain
// struct decoded with gopkg.in/yaml.v2, fields left zero when absent
// from the file, merged onto a base value field by field.
package dialectfile

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/csvdef/csvdef/dialect"
)

// File is the on-disk (or inline) YAML shape: any field left unset in
// the source document keeps the base dialect's value when merged.
type File struct {
	Delimiter               *string  `yaml:"delimiter"`
	Quote                   *string  `yaml:"quote"`
	Escape                  *string  `yaml:"escape"`
	CommentMarker           *string  `yaml:"comment_marker"`
	RecordSeparator         *string  `yaml:"record_separator"`
	NullString              *string  `yaml:"null_string"`
	QuoteMode               *string  `yaml:"quote_mode"`
	DuplicateHeaderMode     *string  `yaml:"duplicate_header_mode"`
	IgnoreSurroundingSpaces *bool    `yaml:"ignore_surrounding_spaces"`
	IgnoreEmptyLines        *bool    `yaml:"ignore_empty_lines"`
	IgnoreHeaderCase        *bool    `yaml:"ignore_header_case"`
	SkipHeaderRecord        *bool    `yaml:"skip_header_record"`
	AllowMissingColumnNames *bool    `yaml:"allow_missing_column_names"`
	TrailingDelimiter       *bool    `yaml:"trailing_delimiter"`
	Trim                    *bool    `yaml:"trim"`
	AutoFlush               *bool    `yaml:"auto_flush"`
	LenientEof              *bool    `yaml:"lenient_eof"`
	TrailingData            *bool    `yaml:"trailing_data"`
	Headers                 []string `yaml:"headers"`
	HeaderComments          []string `yaml:"header_comments"`
	MaxRows                 *int     `yaml:"max_rows"`
}

// ParseString decodes an inline YAML document. Returns a zero File
// (no overrides) for an empty string.
func ParseString(yamlString string) (File, error) {
	var f File
	if yamlString == "" {
		return f, nil
	}
	if err := yaml.Unmarshal([]byte(yamlString), &f); err != nil {
		return File{}, err
	}
	return f, nil
}

// Parse reads and decodes a dialect override file. Returns a zero File
// for an empty path.
func Parse(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return File{}, err
	}
	return f, nil
}

func quoteModeFromString(s string) (dialect.QuoteMode, bool) {
	switch s {
	case "MINIMAL":
		return dialect.MINIMAL, true
	case "ALL":
		return dialect.ALL, true
	case "ALL_NON_NULL":
		return dialect.ALL_NON_NULL, true
	case "NON_NUMERIC":
		return dialect.NON_NUMERIC, true
	case "NONE":
		return dialect.NONE, true
	default:
		return dialect.MINIMAL, false
	}
}

func duplicateHeaderModeFromString(s string) (dialect.DuplicateHeaderMode, bool) {
	switch s {
	case "ALLOW_ALL":
		return dialect.ALLOW_ALL, true
	case "ALLOW_EMPTY":
		return dialect.ALLOW_EMPTY, true
	case "DISALLOW":
		return dialect.DISALLOW, true
	default:
		return dialect.ALLOW_ALL, false
	}
}

// Apply layers f's set fields onto base and returns the resulting
// Dialect, validated the same way a hand-built one would be.
func (f File) Apply(base dialect.Dialect) (dialect.Dialect, error) {
	b := dialect.From(base)

	if f.Delimiter != nil {
		b = b.WithDelimiter(*f.Delimiter)
	}
	if f.Quote != nil {
		if *f.Quote == "" {
			b = b.WithoutQuote()
		} else {
			b = b.WithQuote([]rune(*f.Quote)[0])
		}
	}
	if f.Escape != nil {
		if *f.Escape == "" {
			b = b.WithoutEscape()
		} else {
			b = b.WithEscape([]rune(*f.Escape)[0])
		}
	}
	if f.CommentMarker != nil && *f.CommentMarker != "" {
		b = b.WithCommentMarker([]rune(*f.CommentMarker)[0])
	}
	if f.RecordSeparator != nil {
		b = b.WithRecordSeparator(*f.RecordSeparator)
	}
	if f.NullString != nil {
		b = b.WithNullString(*f.NullString)
	}
	if f.QuoteMode != nil {
		if mode, ok := quoteModeFromString(*f.QuoteMode); ok {
			b = b.WithQuoteMode(mode)
		}
	}
	if f.DuplicateHeaderMode != nil {
		if mode, ok := duplicateHeaderModeFromString(*f.DuplicateHeaderMode); ok {
			b = b.WithDuplicateHeaderMode(mode)
		}
	}
	if f.IgnoreSurroundingSpaces != nil {
		b = b.WithIgnoreSurroundingSpaces(*f.IgnoreSurroundingSpaces)
	}
	if f.IgnoreEmptyLines != nil {
		b = b.WithIgnoreEmptyLines(*f.IgnoreEmptyLines)
	}
	if f.IgnoreHeaderCase != nil {
		b = b.WithIgnoreHeaderCase(*f.IgnoreHeaderCase)
	}
	if f.SkipHeaderRecord != nil {
		b = b.WithSkipHeaderRecord(*f.SkipHeaderRecord)
	}
	if f.AllowMissingColumnNames != nil {
		b = b.WithAllowMissingColumnNames(*f.AllowMissingColumnNames)
	}
	if f.TrailingDelimiter != nil {
		b = b.WithTrailingDelimiter(*f.TrailingDelimiter)
	}
	if f.Trim != nil {
		b = b.WithTrim(*f.Trim)
	}
	if f.AutoFlush != nil {
		b = b.WithAutoFlush(*f.AutoFlush)
	}
	if f.LenientEof != nil {
		b = b.WithLenientEof(*f.LenientEof)
	}
	if f.TrailingData != nil {
		b = b.WithTrailingData(*f.TrailingData)
	}
	if f.Headers != nil {
		b = b.WithHeader(f.Headers...)
	}
	if f.HeaderComments != nil {
		b = b.WithHeaderComments(f.HeaderComments...)
	}
	if f.MaxRows != nil {
		b = b.WithMaxRows(*f.MaxRows)
	}

	return b.Build()
}
