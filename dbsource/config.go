// Package dbsource is a thin, optional paging adapter from a SQL
// result set to csvdef's public core surface. It never reaches into
// internal/lexer or internal/parser: a RowsSource wraps *sql.Rows and
// hands out []*record.Record batches, and WriteAll drains a RowsSource
// straight onto a printer.Printer. The driver-specific files
// (mysqlrows.go, pqrows.go, mssqlrows.go, sqliterows.go) only differ
// in which wire driver they register and which predefined Dialect
// they recommend pairing with the output.
//
// The Config/NewX-shape — a small struct describing how to reach one
// database, handed to a constructor that opens *sql.DB and returns an
// abstraction the rest of the package drives — follows the teacher's
// driver.Config/driver.NewDatabase pair, narrowed here from "dump an
// entire schema's DDL" to "page one query's rows out as CSV records".
package dbsource

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/csvdef/csvdef/csvlog"
	"github.com/csvdef/csvdef/record"
)

// Config describes a single database connection to page rows from.
type Config struct {
	DbType   string // "mysql", "postgres", "sqlserver", "sqlite"
	Host     string
	Port     int
	User     string
	Password string
	DbName   string
	Socket   string
}

// RowsSource pages a *sql.Rows result set into batches of
// *record.Record. Column names become the header; not safe for
// concurrent use, matching Parser and Printer.
type RowsSource struct {
	rows      *sql.Rows
	columns   []string
	header    map[string]int
	batchSize int
	log       csvlog.Logger

	recordNumber int64
	exhausted    bool
}

// NewRowsSource wraps rows, reading its column list immediately to
// build the header index every batch's records will share. batchSize
// must be positive; log may be csvlog.NullLogger{} to discard
// progress messages.
func NewRowsSource(rows *sql.Rows, batchSize int, log csvlog.Logger) (*RowsSource, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("dbsource: batchSize must be positive")
	}
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(cols))
	for i, c := range cols {
		header[c] = i
	}
	if log == nil {
		log = csvlog.NullLogger{}
	}
	return &RowsSource{rows: rows, columns: cols, header: header, batchSize: batchSize, log: log}, nil
}

// Columns returns the result set's column names, in order.
func (s *RowsSource) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

func stringifyColumn(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// Next pulls up to batchSize rows and returns them as records sharing
// this source's header. Returns (nil, io.EOF) once the result set is
// exhausted and no rows remain to report.
func (s *RowsSource) Next() ([]*record.Record, error) {
	if s.exhausted {
		return nil, io.EOF
	}

	dest := make([]any, len(s.columns))
	ptrs := make([]any, len(s.columns))
	for i := range dest {
		ptrs[i] = &dest[i]
	}

	var batch []*record.Record
	for len(batch) < s.batchSize {
		if !s.rows.Next() {
			s.exhausted = true
			if err := s.rows.Err(); err != nil {
				return batch, err
			}
			break
		}
		if err := s.rows.Scan(ptrs...); err != nil {
			return batch, err
		}
		values := make([]string, len(dest))
		nulls := make([]bool, len(dest))
		for i, v := range dest {
			values[i] = stringifyColumn(v)
			nulls[i] = v == nil
		}
		s.recordNumber++
		batch = append(batch, record.New(values, nulls, s.header, false, s.recordNumber, 0, "", false))
	}

	if len(batch) == 0 {
		return nil, io.EOF
	}
	s.log.Printf("dbsource: paged %d rows (%d total)\n", len(batch), s.recordNumber)
	return batch, nil
}

// Close closes the underlying *sql.Rows.
func (s *RowsSource) Close() error {
	return s.rows.Close()
}
