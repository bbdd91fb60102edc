package export

import "errors"

// ErrNoColumns is returned when a table has nothing to render.
var ErrNoColumns = errors.New("table has no columns")

// Column names one field of a row and the heading it renders under.
type Column struct {
	Key   string
	Title string
}

// Table is a format-agnostic tabular document.
type Table struct {
	Title   string
	Columns []Column
	Rows    []map[string]string
}

// Renderer turns a table into a file body.
type Renderer interface {
	Render(Table) ([]byte, error)
	ContentType() string
	Extension() string
}

func (t Table) record(row map[string]string) []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = row[col.Key]
	}
	return out
}

func (t Table) headings() []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = col.Title
		if out[i] == "" {
			out[i] = col.Key
		}
	}
	return out
}
