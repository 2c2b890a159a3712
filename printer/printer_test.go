package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csvdef/csvdef/dialect"
)

func TestPrintRecordMinimalQuotingLeavesPlainFieldsBare(t *testing.T) {
	var sb strings.Builder
	p, err := New(&sb, dialect.RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("a", "b", 1))
	require.NoError(t, p.Flush())
	assert.Equal(t, "a,b,1\r\n", sb.String())
}

func TestPrintRecordMinimalQuotesFieldContainingDelimiter(t *testing.T) {
	var sb strings.Builder
	p, err := New(&sb, dialect.RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("has,comma", "plain"))
	require.NoError(t, p.Flush())
	assert.Equal(t, "\"has,comma\",plain\r\n", sb.String())
}

func TestPrintRecordMinimalQuotesFieldContainingQuote(t *testing.T) {
	var sb strings.Builder
	p, err := New(&sb, dialect.RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(`has"quote`))
	require.NoError(t, p.Flush())
	assert.Equal(t, "\"has\"\"quote\"\r\n", sb.String())
}

func TestPrintRecordMinimalQuotesEmptyFirstCell(t *testing.T) {
	var sb strings.Builder
	p, err := New(&sb, dialect.RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("", "b"))
	require.NoError(t, p.Flush())
	assert.Equal(t, "\"\",b\r\n", sb.String())
}

func TestPrintQuoteModeAllQuotesEveryField(t *testing.T) {
	d := dialect.NewBuilder().WithQuoteMode(dialect.ALL).MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("a", 1))
	require.NoError(t, p.Flush())
	assert.Equal(t, "\"a\",\"1\"\r\n", sb.String())
}

func TestPrintQuoteModeAllNonNullLeavesNullUnquoted(t *testing.T) {
	d := dialect.NewBuilder().WithQuoteMode(dialect.ALL_NON_NULL).MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("a", nil))
	require.NoError(t, p.Flush())
	assert.Equal(t, "\"a\",\r\n", sb.String())
}

func TestPrintQuoteModeNonNumericQuotesStringsOnly(t *testing.T) {
	d := dialect.NewBuilder().WithQuoteMode(dialect.NON_NUMERIC).MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("a", 42))
	require.NoError(t, p.Flush())
	assert.Equal(t, "\"a\",42\r\n", sb.String())
}

func TestPrintQuoteModeNoneUsesEscapesInstead(t *testing.T) {
	d := dialect.NewBuilder().WithoutQuote().WithEscape('\\').WithQuoteMode(dialect.NONE).MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("has,comma"))
	require.NoError(t, p.Flush())
	assert.Equal(t, "has\\,comma\r\n", sb.String())
}

func TestPrintWithEscapesEscapesNewlinesAndEscapeChar(t *testing.T) {
	d := dialect.NewBuilder().WithoutQuote().WithEscape('\\').MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("a\nb\\c"))
	require.NoError(t, p.Flush())
	assert.Equal(t, "a\\nb\\\\c\r\n", sb.String())
}

func TestNullStringSubstitution(t *testing.T) {
	d := dialect.NewBuilder().WithNullString("NULL").MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(nil, "b"))
	require.NoError(t, p.Flush())
	assert.Equal(t, "NULL,b\r\n", sb.String())
}

func TestNullStringQuotedUnderQuoteModeAll(t *testing.T) {
	d := dialect.NewBuilder().WithNullString("NULL").WithQuoteMode(dialect.ALL).MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(nil))
	require.NoError(t, p.Flush())
	assert.Equal(t, "\"NULL\"\r\n", sb.String())
}

func TestNullStringContainingEscapeCharIsWrittenVerbatim(t *testing.T) {
	var sb strings.Builder
	p, err := New(&sb, dialect.Mysql)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(nil, "b"))
	require.NoError(t, p.Flush())
	assert.Equal(t, "\\N\tb\n", sb.String())
}

func TestHeaderRowWrittenOnConstruction(t *testing.T) {
	d := dialect.NewBuilder().WithHeader("name", "age").MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("alice", 30))
	require.NoError(t, p.Flush())
	assert.Equal(t, "name,age\r\nalice,30\r\n", sb.String())
}

func TestHeaderRowSkippedWhenConfigured(t *testing.T) {
	d := dialect.NewBuilder().WithHeader("name", "age").WithSkipHeaderRecord(true).MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("alice", 30))
	require.NoError(t, p.Flush())
	assert.Equal(t, "alice,30\r\n", sb.String())
}

func TestPrintCommentPrefixesEveryLine(t *testing.T) {
	d := dialect.NewBuilder().WithCommentMarker('#').MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintComment("line one\nline two"))
	require.NoError(t, p.PrintRecord("a"))
	require.NoError(t, p.Flush())
	assert.Equal(t, "# line one\r\n# line two\r\na\r\n", sb.String())
}

func TestPrintCommentRequiresCommentMarker(t *testing.T) {
	var sb strings.Builder
	p, err := New(&sb, dialect.RFC4180)
	require.NoError(t, err)
	assert.Error(t, p.PrintComment("nope"))
}

func TestTrailingDelimiterEmitted(t *testing.T) {
	d := dialect.NewBuilder().WithTrailingDelimiter(true).MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("a", "b"))
	require.NoError(t, p.Flush())
	assert.Equal(t, "a,b,\r\n", sb.String())
}

func TestPrintStreamAlwaysQuotesAndDoublesInteriorQuotes(t *testing.T) {
	var sb strings.Builder
	p, err := New(&sb, dialect.RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(strings.NewReader(`he said "hi"`)))
	require.NoError(t, p.Flush())
	assert.Equal(t, "\"he said \"\"hi\"\"\"\r\n", sb.String())
}

func TestTrimRemovesSurroundingWhitespace(t *testing.T) {
	d := dialect.NewBuilder().WithTrim(true).MustBuild()
	var sb strings.Builder
	p, err := New(&sb, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("  padded  "))
	require.NoError(t, p.Flush())
	assert.Equal(t, "padded\r\n", sb.String())
}

func TestClosePropagatesToUnderlyingCloser(t *testing.T) {
	cw := &closeTrackingWriter{}
	d := dialect.RFC4180
	p, err := New(cw, d)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord("a"))
	require.NoError(t, p.Close())
	assert.True(t, cw.closed)
}

type closeTrackingWriter struct {
	strings.Builder
	closed bool
}

func (c *closeTrackingWriter) Close() error {
	c.closed = true
	return nil
}
