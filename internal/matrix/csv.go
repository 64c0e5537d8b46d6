package matrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReadCSV parses an already-pivoted activity matrix. A leading header row
// of column labels (typically dates) is detected and skipped when the
// first record contains any non-binary field. Every data cell must be
// 0 or 1.
func ReadCSV(r io.Reader) (Matrix, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read matrix csv: %w", err)
	}
	if len(records) > 0 && isHeader(records[0]) {
		records = records[1:]
	}

	rows := make([][]int8, 0, len(records))
	for i, rec := range records {
		row := make([]int8, len(rec))
		for j, field := range rec {
			switch field {
			case "0":
				row[j] = 0
			case "1":
				row[j] = 1
			default:
				return nil, fmt.Errorf("row %d column %d: %w: %q", i, j, ErrBadCell, field)
			}
		}
		rows = append(rows, row)
	}
	return New(rows)
}

// WriteCSV writes the matrix with a header row. labels supplies the
// column names (dates, when known); when nil or mismatched, day_1..day_N
// labels are generated.
func WriteCSV(w io.Writer, m Matrix, labels []string) error {
	cw := csv.NewWriter(w)
	days := m.Days()
	if len(labels) != days {
		labels = make([]string, days)
		for j := range labels {
			labels[j] = "day_" + strconv.Itoa(j+1)
		}
	}
	if days > 0 {
		if err := cw.Write(labels); err != nil {
			return fmt.Errorf("write matrix header: %w", err)
		}
	}
	rec := make([]string, days)
	for _, row := range m {
		for j, cell := range row {
			rec[j] = strconv.Itoa(int(cell))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write matrix row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// isHeader reports whether a record looks like column labels rather than
// binary data.
func isHeader(rec []string) bool {
	for _, field := range rec {
		if field != "0" && field != "1" {
			return true
		}
	}
	return false
}
