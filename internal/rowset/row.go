// Package rowset models the loosely-schemed tabular rows produced by the
// spreadsheet decoders. Field names vary per upload in case, spacing, and
// synonyms, so every logical field is resolved through an ordered candidate
// list against a case-insensitive column index built once per row.
package rowset

import "strings"

// Row is a single tabular record with its original column order preserved.
// Column order matters: bracketed-code recovery scans values left to right.
type Row struct {
	cols   []string
	values map[string]string
	lower  map[string]string
}

// NewRow builds a Row from a header and a value slice. Extra values beyond
// the header are dropped; missing trailing values read as empty strings.
func NewRow(header []string, values []string) Row {
	r := Row{
		cols:   make([]string, 0, len(header)),
		values: make(map[string]string, len(header)),
		lower:  make(map[string]string, len(header)),
	}
	for i, col := range header {
		if col == "" {
			continue
		}
		var v string
		if i < len(values) {
			v = values[i]
		}
		if _, dup := r.values[col]; dup {
			continue
		}
		r.cols = append(r.cols, col)
		r.values[col] = v
		if _, seen := r.lower[strings.ToLower(col)]; !seen {
			r.lower[strings.ToLower(col)] = col
		}
	}
	return r
}

// FromMap builds a Row from column/value pairs, preserving the given order.
func FromMap(cols []string, values map[string]string) Row {
	vals := make([]string, len(cols))
	for i, c := range cols {
		vals[i] = values[c]
	}
	return NewRow(cols, vals)
}

// Columns returns the column names in original order.
func (r Row) Columns() []string { return r.cols }

// Len reports the number of columns.
func (r Row) Len() int { return len(r.cols) }

// Get returns the value for an exact column name.
func (r Row) Get(col string) string { return r.values[col] }

// LookupColumn resolves the first candidate that matches a column name,
// case-insensitively, and returns the actual column name.
func (r Row) LookupColumn(candidates []string) (string, bool) {
	for _, cand := range candidates {
		if col, ok := r.lower[strings.ToLower(cand)]; ok {
			return col, true
		}
	}
	return "", false
}

// Lookup resolves the first matching candidate column and returns its
// trimmed value. A matched column with an empty value still reports ok,
// mirroring "the column is present" semantics the district filter needs.
func (r Row) Lookup(candidates []string) (string, bool) {
	col, ok := r.LookupColumn(candidates)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(r.values[col]), true
}

// Values returns all values in column order.
func (r Row) Values() []string {
	out := make([]string, len(r.cols))
	for i, c := range r.cols {
		out[i] = r.values[c]
	}
	return out
}

// Clone returns a deep copy of the row. Used by the corrected-rows export,
// which overwrites resolved columns without touching the source row.
func (r Row) Clone() Row {
	cp := Row{
		cols:   append([]string(nil), r.cols...),
		values: make(map[string]string, len(r.values)),
		lower:  make(map[string]string, len(r.lower)),
	}
	for k, v := range r.values {
		cp.values[k] = v
	}
	for k, v := range r.lower {
		cp.lower[k] = v
	}
	return cp
}

// Set overwrites (or appends) a column value.
func (r *Row) Set(col, value string) {
	if _, ok := r.values[col]; !ok {
		r.cols = append(r.cols, col)
		if _, seen := r.lower[strings.ToLower(col)]; !seen {
			r.lower[strings.ToLower(col)] = col
		}
	}
	r.values[col] = value
}
