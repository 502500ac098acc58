package assay

import (
	"encoding/json"
	"fmt"
)

// Table is an ordered sequence of rows with named, heterogeneously typed
// fields. Field order is preserved; row order is meaningful and is the
// index space collections link against. The sample table, metadata and
// quantification slots of an experiment are all tables.
type Table struct {
	names []string
	cols  map[string][]any
	nrows int
}

// NewTable returns an empty table with zero rows and no fields.
func NewTable() *Table {
	return &Table{cols: make(map[string][]any)}
}

// NewTableFromColumns builds a table from ordered (name, values) columns.
// All columns must share the same length.
func NewTableFromColumns(columns []TableColumn) (*Table, error) {
	t := NewTable()
	for _, col := range columns {
		if err := t.SetField(col.Name, col.Values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// TableColumn pairs a field name with its per-row values.
type TableColumn struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.nrows
}

// FieldNames returns the field names in declaration order.
func (t *Table) FieldNames() []string {
	return append([]string(nil), t.names...)
}

// HasField reports whether the table declares the named field.
func (t *Table) HasField(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Field returns a copy of the named column and whether it exists.
func (t *Table) Field(name string) ([]any, bool) {
	col, ok := t.cols[name]
	if !ok {
		return nil, false
	}
	return append([]any(nil), col...), true
}

// SetField assigns the named column, creating it when absent. On a table
// with existing rows the value count must match the row count; on an empty
// table the first column defines the row count.
func (t *Table) SetField(name string, values []any) error {
	if name == "" {
		return fmt.Errorf("assay: table field name cannot be empty")
	}
	if (len(t.names) > 0 || t.nrows > 0) && len(values) != t.nrows {
		return fmt.Errorf("assay: field %q has %d values, table has %d rows", name, len(values), t.nrows)
	}
	if _, exists := t.cols[name]; !exists {
		t.names = append(t.names, name)
	}
	t.cols[name] = append([]any(nil), values...)
	t.nrows = len(values)
	return nil
}

// Row returns the 1-based row as a field-name keyed map.
func (t *Table) Row(i int) map[string]any {
	checkIndices("table", []int{i}, t.nrows)
	out := make(map[string]any, len(t.names))
	for _, name := range t.names {
		out[name] = t.cols[name][i-1]
	}
	return out
}

// Select returns a new table holding the rows at the given 1-based indices,
// in order, duplicating repeated indices.
func (t *Table) Select(indices []int) Collection {
	checkIndices("table", indices, t.nrows)
	out := NewTable()
	out.names = append([]string(nil), t.names...)
	out.nrows = len(indices)
	for _, name := range t.names {
		src := t.cols[name]
		col := make([]any, len(indices))
		for k, idx := range indices {
			col[k] = src[idx-1]
		}
		out.cols[name] = col
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := NewTable()
	out.names = append([]string(nil), t.names...)
	out.nrows = t.nrows
	for name, col := range t.cols {
		out.cols[name] = append([]any(nil), col...)
	}
	return out
}

// tableJSON is the stable wire form: ordered columns plus an explicit row
// count so zero-field tables round-trip.
type tableJSON struct {
	Columns []TableColumn `json:"columns"`
	Rows    int           `json:"rows"`
}

// MarshalJSON encodes the table with field order preserved.
func (t *Table) MarshalJSON() ([]byte, error) {
	payload := tableJSON{Rows: t.Len(), Columns: make([]TableColumn, 0, len(t.names))}
	for _, name := range t.names {
		payload.Columns = append(payload.Columns, TableColumn{Name: name, Values: t.cols[name]})
	}
	return json.Marshal(payload)
}

// UnmarshalJSON decodes the stable wire form.
func (t *Table) UnmarshalJSON(data []byte) error {
	var payload tableJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	decoded := NewTable()
	for _, col := range payload.Columns {
		if err := decoded.SetField(col.Name, col.Values); err != nil {
			return err
		}
	}
	if len(payload.Columns) == 0 {
		decoded.nrows = payload.Rows
	}
	*t = *decoded
	return nil
}
