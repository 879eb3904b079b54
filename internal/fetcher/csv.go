package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	Delimiter rune   // default ','
	Charset   string // IANA charset name; default UTF-8
	SkipRows  int    // leading rows to skip before the header
	TrimSpace bool
}

// ReadCSV reads all rows from a CSV payload. The first row after SkipRows is
// returned as the header. Rows may have variable field counts; the caller
// matches columns by header name.
func ReadCSV(r io.Reader, opts CSVOptions) (header []string, rows [][]string, err error) {
	if opts.Charset != "" && !strings.EqualFold(opts.Charset, "utf-8") {
		enc, encErr := htmlindex.Get(opts.Charset)
		if encErr != nil {
			return nil, nil, eris.Wrapf(encErr, "csv: unsupported charset %q", opts.Charset)
		}
		r = enc.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	skipped := 0
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, nil, eris.Wrap(readErr, "csv: read row")
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}

		if skipped < opts.SkipRows {
			skipped++
			continue
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}

	return header, rows, nil
}
