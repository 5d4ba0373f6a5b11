package dataprocessing

import (
	"fmt"

	apperrors "campaignclean/internal/errors"
)

// Table is an in-memory tabular record set: a header and rows of string
// cells. An empty cell is a missing value.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable creates an empty table carrying header
func NewTable(header []string) *Table {
	h := make([]string, len(header))
	copy(h, header)
	return &Table{Header: h, Rows: [][]string{}}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// Columns resolves column names to positions. A missing column is a
// decode error: the unified record set does not carry the expected schema.
func (t *Table) Columns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		pos, ok := t.ColumnIndex(name)
		if !ok {
			return nil, apperrors.NewDecodeError(fmt.Sprintf("column %q missing from record set", name), nil).
				WithContext("column", name)
		}
		idx[i] = pos
	}
	return idx, nil
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := NewTable(t.Header)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}

// cell returns row[i], or the empty value for short rows
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
