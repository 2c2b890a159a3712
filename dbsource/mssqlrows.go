package dbsource

import (
	"database/sql"
	"fmt"

	_ "github.com/denisenkom/go-mssqldb"

	"github.com/csvdef/csvdef/dialect"
)

// MssqlDialect is the predefined dialect recommended for output paged
// from a SQL Server source: SQL Server's bulk-export tooling shares
// the Oracle family's escape-based, no-doubled-quotes convention.
var MssqlDialect = dialect.Oracle

func mssqlDSN(c Config) string {
	return fmt.Sprintf("server=%s;port=%d;user id=%s;password=%s;database=%s",
		c.Host, c.Port, c.User, c.Password, c.DbName)
}

// OpenMssqlRows runs query against the SQL Server database described
// by c and wraps the result in a RowsSource.
func OpenMssqlRows(c Config, query string, batchSize int) (*sql.DB, *RowsSource, error) {
	db, err := sql.Open("sqlserver", mssqlDSN(c))
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
