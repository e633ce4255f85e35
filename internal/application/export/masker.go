package export

import "github.com/sefcontact/engine/internal/domain/shared"

// Dataset is a plain tabular result ready for delimited-text serialization.
// Rows hold display strings only, never references into stored entities.
type Dataset struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Mask redacts the named columns in place, row by row: every character but
// the last four becomes 'X', and values shorter than four characters are
// fully redacted. Unknown column names are ignored. Stored entities are
// never touched; masking applies to the exported copy only.
func (d *Dataset) Mask(fields ...string) {
	columns := make([]int, 0, len(fields))
	for i, header := range d.Headers {
		for _, f := range fields {
			if header == f {
				columns = append(columns, i)
			}
		}
	}
	for _, row := range d.Rows {
		for _, col := range columns {
			if col < len(row) {
				row[col] = shared.Redact(row[col])
			}
		}
	}
}
