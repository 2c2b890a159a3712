package dialectfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csvdef/csvdef/dialect"
)

func TestParseStringEmptyYieldsZeroFile(t *testing.T) {
	f, err := ParseString("")
	require.NoError(t, err)
	assert.Nil(t, f.Delimiter)
}

func TestApplyOverridesDelimiterAndQuoteMode(t *testing.T) {
	f, err := ParseString("delimiter: \"|\"\nquote_mode: ALL\n")
	require.NoError(t, err)

	d, err := f.Apply(dialect.Default)
	require.NoError(t, err)
	assert.Equal(t, "|", d.Delimiter)
	assert.Equal(t, dialect.ALL, d.QuoteMode)
}

func TestApplyWithoutQuoteClearsQuote(t *testing.T) {
	f, err := ParseString("quote: \"\"\n")
	require.NoError(t, err)

	d, err := f.Apply(dialect.Default)
	require.NoError(t, err)
	assert.False(t, d.HasQuote)
}

func TestApplyLeavesUnsetFieldsAtBase(t *testing.T) {
	f, err := ParseString("trim: true\n")
	require.NoError(t, err)

	d, err := f.Apply(dialect.Default)
	require.NoError(t, err)
	assert.True(t, d.Trim)
	assert.Equal(t, dialect.Default.Delimiter, d.Delimiter)
}

func TestApplyRejectsInvalidCombination(t *testing.T) {
	f, err := ParseString("quote: \"\"\nescape: \"\"\nquote_mode: NONE\n")
	require.NoError(t, err)

	_, err = f.Apply(dialect.Default)
	assert.Error(t, err)
}

func TestApplyHeadersAndComments(t *testing.T) {
	f, err := ParseString("headers: [\"a\", \"b\"]\nheader_comments: [\"generated\"]\n")
	require.NoError(t, err)

	d, err := f.Apply(dialect.Default)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.Headers)
	assert.Equal(t, []string{"generated"}, d.HeaderComments)
}

func TestParseMissingFileReturnsError(t *testing.T) {
	_, err := Parse("/nonexistent/path/dialect.yaml")
	assert.Error(t, err)
}
