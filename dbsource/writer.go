package dbsource

import (
	"io"

	"github.com/csvdef/csvdef/printer"
)

// WriteAll drains src, writing every record to p in arrival order, and
// returns the total number of records written.
func WriteAll(src *RowsSource, p *printer.Printer, log func(n int64)) (int64, error) {
	var total int64
	for {
		batch, err := src.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		for _, rec := range batch {
			if err := p.PrintParsedRecord(rec); err != nil {
				return total, err
			}
			total++
		}
		if log != nil {
			log(total)
		}
	}
}
