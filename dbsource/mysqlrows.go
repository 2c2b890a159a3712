package dbsource

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/csvdef/csvdef/dialect"
)

// MysqlDialect is the predefined dialect recommended for output paged
// from a MySQL source (tab-delimited, unquoted, matching MySQL's own
// SELECT ... INTO OUTFILE convention).
var MysqlDialect = dialect.Mysql

func mysqlDSN(c Config) string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.DBName = c.DbName
	if c.Socket != "" {
		cfg.Net = "unix"
		cfg.Addr = c.Socket
	} else {
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	}
	return cfg.FormatDSN()
}

// OpenMySQLRows runs query against the MySQL database described by c
// and wraps the result in a RowsSource.
func OpenMySQLRows(c Config, query string, batchSize int) (*sql.DB, *RowsSource, error) {
	db, err := sql.Open("mysql", mysqlDSN(c))
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
