package dbsource

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/csvdef/csvdef/dialect"
)

// PostgresDialect is the predefined dialect recommended for output
// paged from a PostgreSQL source, matching COPY ... CSV.
var PostgresDialect = dialect.PostgresqlCsv

func postgresDSN(c Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DbName)
}

// OpenPostgresRows runs query against the PostgreSQL database
// described by c and wraps the result in a RowsSource.
func OpenPostgresRows(c Config, query string, batchSize int) (*sql.DB, *RowsSource, error) {
	db, err := sql.Open("postgres", postgresDSN(c))
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
