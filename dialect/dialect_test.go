package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredefinedDialects(t *testing.T) {
	tests := []struct {
		name        string
		d           Dialect
		delimiter   string
		hasQuote    bool
		quote       rune
		hasEscape   bool
		recordSep   string
		quoteMode   QuoteMode
	}{
		{"DEFAULT", Default, ",", true, '"', false, "\r\n", MINIMAL},
		{"RFC4180", RFC4180, ",", true, '"', false, "\r\n", MINIMAL},
		{"EXCEL", Excel, ",", true, '"', false, "\r\n", MINIMAL},
		{"TDF", TDF, "\t", true, '"', false, "\r\n", MINIMAL},
		{"MYSQL", Mysql, "\t", false, 0, true, "\n", ALL_NON_NULL},
		{"POSTGRESQL_CSV", PostgresqlCsv, ",", true, '"', false, "\n", ALL_NON_NULL},
		{"POSTGRESQL_TEXT", PostgresqlText, "\t", false, 0, true, "\n", ALL_NON_NULL},
		{"ORACLE", Oracle, ",", true, '"', true, "\n", MINIMAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.delimiter, tt.d.Delimiter)
			assert.Equal(t, tt.hasQuote, tt.d.HasQuote)
			if tt.hasQuote {
				assert.Equal(t, tt.quote, tt.d.Quote)
			}
			assert.Equal(t, tt.hasEscape, tt.d.HasEscape)
			assert.Equal(t, tt.recordSep, tt.d.RecordSeparator)
			assert.Equal(t, tt.quoteMode, tt.d.QuoteMode)
		})
	}
}

func TestMongodbDialectsAllowEscapeEqualToQuote(t *testing.T) {
	assert.Equal(t, '"', MongodbCsv.Quote)
	assert.Equal(t, '"', MongodbCsv.Escape)
	assert.Equal(t, MINIMAL, MongodbCsv.QuoteMode)

	assert.Equal(t, '"', MongodbTsv.Quote)
	assert.Equal(t, '"', MongodbTsv.Escape)
	assert.Equal(t, "\t", MongodbTsv.Delimiter)
}

func TestBuildAllowsEscapeEqualToQuote(t *testing.T) {
	d, err := NewBuilder().WithQuote('"').WithEscape('"').Build()
	assert.NoError(t, err)
	assert.Equal(t, '"', d.Quote)
	assert.Equal(t, '"', d.Escape)
}

func TestBuildStillRejectsEscapeCollidingWithDelimiterWhenNotQuote(t *testing.T) {
	_, err := NewBuilder().WithDelimiter(",").WithQuote('"').WithEscape(',').Build()
	assert.Error(t, err)
}

func TestExcelFlags(t *testing.T) {
	assert.True(t, Excel.AllowMissingColumnNames)
	assert.True(t, Excel.TrailingData)
	assert.True(t, Excel.LenientEof)
	assert.False(t, Excel.IgnoreEmptyLines)
}

func TestPredefinedLookupCaseInsensitive(t *testing.T) {
	d, ok := Predefined("mysql")
	assert.True(t, ok)
	assert.Equal(t, Mysql, d)

	_, ok = Predefined("not-a-dialect")
	assert.False(t, ok)
}

func TestBuildRejectsDelimiterContainingNewline(t *testing.T) {
	_, err := NewBuilder().WithDelimiter("a\nb").Build()
	assert.Error(t, err)
}

func TestBuildRejectsQuoteModeNoneWithoutEscape(t *testing.T) {
	_, err := NewBuilder().WithQuoteMode(NONE).Build()
	assert.Error(t, err)

	_, err = NewBuilder().WithQuoteMode(NONE).WithEscape('\\').Build()
	assert.NoError(t, err)
}

func TestBuildRejectsCollidingCharacters(t *testing.T) {
	_, err := NewBuilder().WithDelimiter(",").WithQuote(',').Build()
	assert.Error(t, err)

	_, err = NewBuilder().WithQuote('"').WithEscape('"').WithCommentMarker('"').Build()
	assert.Error(t, err)

	_, err = NewBuilder().WithCommentMarker('#').WithEscape('#').Build()
	assert.Error(t, err)
}

func TestBuildHeaderDuplicatePolicy(t *testing.T) {
	_, err := NewBuilder().WithDuplicateHeaderMode(DISALLOW).WithHeader("a", "b", "a").Build()
	assert.Error(t, err)

	_, err = NewBuilder().WithDuplicateHeaderMode(ALLOW_ALL).WithHeader("a", "b", "a").Build()
	assert.NoError(t, err)

	_, err = NewBuilder().
		WithDuplicateHeaderMode(ALLOW_EMPTY).
		WithAllowMissingColumnNames(true).
		WithHeader("a", "", "").
		Build()
	assert.NoError(t, err)

	_, err = NewBuilder().
		WithDuplicateHeaderMode(ALLOW_EMPTY).
		WithHeader("a", "b", "b").
		Build()
	assert.Error(t, err)
}

func TestQuotedNullStringPrecomputed(t *testing.T) {
	d, err := NewBuilder().WithNullString("NULL").Build()
	assert.NoError(t, err)
	assert.Equal(t, `"NULL"`, d.QuotedNullString())
}

func TestBlankHeaderNameRequiresAllowMissing(t *testing.T) {
	_, err := NewBuilder().WithHeader("a", "").Build()
	assert.Error(t, err)

	_, err = NewBuilder().WithAllowMissingColumnNames(true).WithHeader("a", "").Build()
	assert.NoError(t, err)
}
