// Package model contains domain models passed between layers.
package model

// Row is one benchmark submission as parsed from the data file: raw CSV
// cells keyed by header name, plus a synthetic id assigned at load time.
// The id is the identity used when mapping a row back to its global rank;
// it avoids collisions between distinct rows that happen to share name,
// model and score.
type Row struct {
	ID    string
	Cells map[string]string
}

// Cell returns the raw value for a column, or "" when the column is absent.
func (r Row) Cell(key string) string {
	return r.Cells[key]
}
