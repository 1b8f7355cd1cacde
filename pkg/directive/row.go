package directive

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is an ordered mapping of column names to values. Column order is
// significant and survives JSON round trips. Values are externally owned;
// directives only read source columns and add or overwrite derived columns.
type Row struct {
	columns []string
	values  []any
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{}
}

// Add appends a column to the row and returns the row for chaining.
// It does not check for duplicates; use AddOrSet for idempotent writes.
func (r *Row) Add(name string, value any) *Row {
	r.columns = append(r.columns, name)
	r.values = append(r.values, value)
	return r
}

// Find returns the index of the named column, or -1 when absent.
func (r *Row) Find(name string) int {
	for i, col := range r.columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Len returns the number of columns.
func (r *Row) Len() int {
	return len(r.columns)
}

// Column returns the name of the column at idx.
func (r *Row) Column(idx int) string {
	return r.columns[idx]
}

// Value returns the value of the column at idx.
func (r *Row) Value(idx int) any {
	return r.values[idx]
}

// AddOrSet writes value under name, overwriting an existing column of the
// same name or appending a new one. Running a directive twice therefore
// yields the same column set.
func (r *Row) AddOrSet(name string, value any) {
	if idx := r.Find(name); idx >= 0 {
		r.values[idx] = value
		return
	}
	r.Add(name, value)
}

// MarshalJSON encodes the row as a JSON object with columns in row order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the row, preserving the key
// order of the input document.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row must be a JSON object, got %v", tok)
	}

	r.columns = r.columns[:0]
	r.values = r.values[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("column %q: %w", key, err)
		}
		r.Add(key, normalizeJSONValue(value))
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// normalizeJSONValue converts json.Number leaves back to plain values so
// directives can type-switch on string without tripping over Number,
// which is a string underneath.
func normalizeJSONValue(v any) any {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case map[string]any:
		for k, inner := range n {
			n[k] = normalizeJSONValue(inner)
		}
		return n
	case []any:
		for i, inner := range n {
			n[i] = normalizeJSONValue(inner)
		}
		return n
	default:
		return v
	}
}
