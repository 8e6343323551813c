package models

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Row maps a column name to the value read from the database. A nil value
// means the column is NULL.
type Row map[string]any

// RowSet is a fully materialized table scan: the columns in the order the
// driver reported them and the rows in the order the engine returned them.
type RowSet struct {
	Table   TableName
	Columns []string
	Rows    []Row
}

// NewRowSet returns an empty row set with the given columns.
func NewRowSet(table TableName, columns []string) *RowSet {
	return &RowSet{
		Table:   table,
		Columns: columns,
		Rows:    []Row{},
	}
}

func (r *RowSet) Len() int {
	return len(r.Rows)
}

func (r *RowSet) Empty() bool {
	return len(r.Rows) == 0
}

// Column resolves name against the row set's columns. The match is exact
// first, then case-insensitive, since PostgreSQL-backed nodes report
// lower-case identifiers.
func (r *RowSet) Column(name string) (string, bool) {
	for _, c := range r.Columns {
		if c == name {
			return c, true
		}
	}
	for _, c := range r.Columns {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// Values returns row i as a slice ordered like Columns.
func (r *RowSet) Values(i int) []any {
	row := r.Rows[i]
	values := make([]any, len(r.Columns))
	for j, c := range r.Columns {
		values[j] = row[c]
	}
	return values
}

// Get returns the value of column name in row i.
func (r *RowSet) Get(i int, name string) (any, bool) {
	if i < 0 || i >= len(r.Rows) {
		return nil, false
	}
	col, ok := r.Column(name)
	if !ok {
		return nil, false
	}
	return r.Rows[i][col], true
}

// Filter returns a new row set holding the rows for which keep returns true.
// Rows are shared, not copied.
func (r *RowSet) Filter(keep func(Row) bool) *RowSet {
	out := NewRowSet(r.Table, r.Columns)
	for _, row := range r.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Where keeps the rows whose column equals value. An unknown column matches
// nothing.
func (r *RowSet) Where(column string, value any) *RowSet {
	col, ok := r.Column(column)
	if !ok {
		return NewRowSet(r.Table, r.Columns)
	}
	return r.Filter(func(row Row) bool {
		return Equal(row[col], value)
	})
}

// IsNull keeps the rows whose column is NULL.
func (r *RowSet) IsNull(column string) *RowSet {
	col, ok := r.Column(column)
	if !ok {
		return NewRowSet(r.Table, r.Columns)
	}
	return r.Filter(func(row Row) bool {
		return row[col] == nil
	})
}

// Join performs an inner join of r and other on the given key columns. The
// result has r's columns followed by other's columns that are not keys.
// A right-hand column whose name collides with a left-hand one is skipped.
func (r *RowSet) Join(other *RowSet, on ...string) (*RowSet, error) {
	leftKeys := make([]string, len(on))
	rightKeys := make([]string, len(on))
	for i, key := range on {
		l, ok := r.Column(key)
		if !ok {
			return nil, fmt.Errorf("join column %s missing from %s", key, r.Table)
		}
		rc, ok := other.Column(key)
		if !ok {
			return nil, fmt.Errorf("join column %s missing from %s", key, other.Table)
		}
		leftKeys[i], rightKeys[i] = l, rc
	}

	columns := append([]string{}, r.Columns...)
	var extra []string
	for _, c := range other.Columns {
		if containsFold(rightKeys, c) {
			continue
		}
		if _, clash := r.Column(c); clash {
			continue
		}
		extra = append(extra, c)
	}
	columns = append(columns, extra...)

	out := NewRowSet(r.Table, columns)
	for _, left := range r.Rows {
		for _, right := range other.Rows {
			if !keysEqual(left, right, leftKeys, rightKeys) {
				continue
			}
			joined := make(Row, len(columns))
			for _, c := range r.Columns {
				joined[c] = left[c]
			}
			for _, c := range extra {
				joined[c] = right[c]
			}
			out.Rows = append(out.Rows, joined)
		}
	}
	return out, nil
}

// Strings renders every cell as text, in column order.
func (r *RowSet) Strings() [][]string {
	out := make([][]string, 0, len(r.Rows))
	for i := range r.Rows {
		values := r.Values(i)
		cells := make([]string, len(values))
		for j, v := range values {
			cells[j] = FormatValue(v)
		}
		out = append(out, cells)
	}
	return out
}

// FormatValue renders a single cell.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return t
	case []byte:
		return hex.EncodeToString(t)
	case time.Time:
		return t.Format(TimestampLayout)
	default:
		return fmt.Sprint(t)
	}
}

// TimestampLayout is the layout node tables use for timestamps rendered as text.
const TimestampLayout = "2006-01-02 15:04:05.000"

// Equal compares a cell against a value without any normalization beyond
// treating []byte and string holding the same bytes as equal.
func Equal(cell, value any) bool {
	switch c := cell.(type) {
	case []byte:
		switch v := value.(type) {
		case []byte:
			return bytes.Equal(c, v)
		case string:
			return string(c) == v
		}
		return false
	case string:
		if v, ok := value.([]byte); ok {
			return c == string(v)
		}
	}
	return reflect.DeepEqual(cell, value)
}

func keysEqual(left, right Row, leftKeys, rightKeys []string) bool {
	for i := range leftKeys {
		if left[leftKeys[i]] == nil || !Equal(left[leftKeys[i]], right[rightKeys[i]]) {
			return false
		}
	}
	return true
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
