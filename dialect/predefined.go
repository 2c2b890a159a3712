package dialect

import "strings"

// Predefined dialects, exact per the design's dialect table. Each is
// built by composing Builder setters over the package baseline, the
// same way CSVFormat.Predefined composes over DEFAULT in the Commons
// CSV lineage this design was distilled from.
var (
	// DEFAULT: comma-delimited, double-quote encapsulated, CRLF output,
	// empty lines ignored, any number of duplicate header names allowed.
	Default = NewBuilder().MustBuild()

	// RFC4180: DEFAULT without empty-line skipping.
	RFC4180 = From(Default).
		WithIgnoreEmptyLines(false).
		MustBuild()

	// EXCEL: RFC4180 plus the handful of relaxations needed to read
	// files Excel actually produces.
	Excel = From(Default).
		WithIgnoreEmptyLines(false).
		WithAllowMissingColumnNames(true).
		WithTrailingData(true).
		WithLenientEof(true).
		MustBuild()

	// TDF: tab-delimited, quoted, surrounding spaces ignored.
	TDF = From(Default).
		WithDelimiter("\t").
		WithIgnoreSurroundingSpaces(true).
		MustBuild()

	// MYSQL: tab-delimited, no quoting, backslash-escaped, LF records,
	// \N null sentinel (MySQL's LOAD DATA / SELECT ... INTO OUTFILE
	// convention). QuoteMode is ALL_NON_NULL, but with no quote
	// character the printer escapes fields instead of quoting them.
	Mysql = NewBuilder().
		WithDelimiter("\t").
		WithoutQuote().
		WithEscape('\\').
		WithRecordSeparator("\n").
		WithNullString(`\N`).
		WithQuoteMode(ALL_NON_NULL).
		WithIgnoreEmptyLines(false).
		MustBuild()

	// PostgresqlCsv: PostgreSQL's COPY ... CSV format.
	PostgresqlCsv = NewBuilder().
		WithDelimiter(",").
		WithQuote('"').
		WithRecordSeparator("\n").
		WithNullString(`""`).
		WithQuoteMode(ALL_NON_NULL).
		WithIgnoreEmptyLines(false).
		MustBuild()

	// PostgresqlText: PostgreSQL's COPY ... TEXT format.
	PostgresqlText = NewBuilder().
		WithDelimiter("\t").
		WithoutQuote().
		WithEscape('\\').
		WithRecordSeparator("\n").
		WithNullString(`\N`).
		WithQuoteMode(ALL_NON_NULL).
		WithIgnoreEmptyLines(false).
		MustBuild()

	// Oracle: Oracle SQL*Loader convention — backslash escapes, minimal
	// quoting, trimmed fields, \N nulls.
	Oracle = NewBuilder().
		WithDelimiter(",").
		WithQuote('"').
		WithEscape('\\').
		WithRecordSeparator("\n").
		WithNullString(`\N`).
		WithQuoteMode(MINIMAL).
		WithTrim(true).
		WithIgnoreEmptyLines(false).
		MustBuild()

	// InformixUnload: Informix UNLOAD format — pipe-delimited, quoted,
	// backslash-escaped.
	InformixUnload = From(Default).
		WithDelimiter("|").
		WithEscape('\\').
		WithRecordSeparator("\n").
		MustBuild()

	// InformixUnloadCsv: Informix UNLOAD in comma-separated form.
	InformixUnloadCsv = From(Default).
		WithRecordSeparator("\n").
		MustBuild()

	// MongodbCsv: mongoexport's CSV format — escape equals quote, so a
	// quote inside a quoted field is represented by doubling it via the
	// escape mechanism rather than a distinct backslash form.
	MongodbCsv = From(Default).
		WithEscape('"').
		WithQuoteMode(MINIMAL).
		MustBuild()

	// MongodbTsv: mongoexport's TSV format, header row always present
	// (never skipped, since mongoexport repeats it as a divider).
	MongodbTsv = From(Default).
		WithDelimiter("\t").
		WithEscape('"').
		WithQuoteMode(MINIMAL).
		WithSkipHeaderRecord(false).
		MustBuild()
)

var byName = map[string]Dialect{
	"DEFAULT":              Default,
	"RFC4180":              RFC4180,
	"EXCEL":                Excel,
	"TDF":                  TDF,
	"MYSQL":                Mysql,
	"POSTGRESQL_CSV":       PostgresqlCsv,
	"POSTGRESQL_TEXT":      PostgresqlText,
	"ORACLE":               Oracle,
	"INFORMIX_UNLOAD":      InformixUnload,
	"INFORMIX_UNLOAD_CSV":  InformixUnloadCsv,
	"MONGODB_CSV":          MongodbCsv,
	"MONGODB_TSV":          MongodbTsv,
}

// Predefined looks up one of the package dialects by its canonical
// name (case-insensitive, e.g. "mysql" or "MYSQL"). ok is false for an
// unrecognized name.
func Predefined(name string) (d Dialect, ok bool) {
	d, ok = byName[strings.ToUpper(name)]
	return d, ok
}

// PredefinedNames returns the canonical names accepted by Predefined,
// in the order they appear in the design's dialect table.
func PredefinedNames() []string {
	return []string{
		"DEFAULT", "RFC4180", "EXCEL", "TDF", "MYSQL",
		"POSTGRESQL_CSV", "POSTGRESQL_TEXT", "ORACLE",
		"INFORMIX_UNLOAD", "INFORMIX_UNLOAD_CSV",
		"MONGODB_CSV", "MONGODB_TSV",
	}
}
