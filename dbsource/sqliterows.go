package dbsource

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/csvdef/csvdef/dialect"
)

// SqliteDialect is the predefined dialect recommended for output paged
// from a SQLite source.
var SqliteDialect = dialect.RFC4180

// OpenSqliteRows runs query against the SQLite database at path and
// wraps the result in a RowsSource. Used by this package's own tests
// as an in-process *sql.Rows source that needs no running server.
func OpenSqliteRows(path string, query string, batchSize int) (*sql.DB, *RowsSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, err
	}
	rows, err := db.Query(query)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	src, err := NewRowsSource(rows, batchSize, nil)
	if err != nil {
		rows.Close()
		db.Close()
		return nil, nil, err
	}
	return db, src, nil
}
