package datatable

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes every filtered row, across all pages and in sort order, as
// CSV with localized headers and rendered cells.
func (t *Table[R, ID]) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.Header.In(t.locale)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(t.columns))
	for _, r := range t.ordered {
		for i, col := range t.columns {
			row[i] = col.cell(r, t.locale)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", KeyOf(r.RecordID()), err)
		}
	}

	cw.Flush()
	return cw.Error()
}
