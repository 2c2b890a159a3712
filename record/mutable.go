package record

import (
	"github.com/csvdef/csvdef/csverr"
)

// MutableRecord is an editable row, used when building or amending a
// record programmatically (for example, rewriting a field before
// re-printing a stream) rather than parsing one. Call Freeze to obtain
// an immutable Record snapshot once editing is done.
type MutableRecord struct {
	values      []string
	nulls       []bool // same length as values; true marks a null field
	headerIndex map[string]int
	foldCase    bool
}

// NewMutable returns an empty MutableRecord against the given header
// index (nil for a headerless stream). foldCase mirrors the dialect's
// IgnoreHeaderCase, enabling case-insensitive SetByName lookups.
func NewMutable(headerIndex map[string]int, foldCase bool) *MutableRecord {
	return &MutableRecord{headerIndex: headerIndex, foldCase: foldCase}
}

// NewMutableFromRecord copies r's fields and null tracking into an
// editable record sharing the same header index.
func NewMutableFromRecord(r *Record) *MutableRecord {
	nulls := make([]bool, len(r.values))
	copy(nulls, r.nulls)
	return &MutableRecord{values: r.Values(), nulls: nulls, headerIndex: r.headerIndex, foldCase: r.foldCase}
}

// Size returns the number of fields currently set.
func (m *MutableRecord) Size() int {
	return len(m.values)
}

// Append adds a new field at the end of the record.
func (m *MutableRecord) Append(v string) {
	m.values = append(m.values, v)
	m.nulls = append(m.nulls, false)
}

// grow extends values/nulls with empty, non-null fields up to index i.
func (m *MutableRecord) grow(i int) {
	for len(m.values) <= i {
		m.values = append(m.values, "")
		m.nulls = append(m.nulls, false)
	}
}

// Set overwrites the field at index i, growing the record with empty
// fields if i is beyond the current end. The field is marked non-null.
func (m *MutableRecord) Set(i int, v string) error {
	if i < 0 {
		return csverr.ErrUnknownColumn
	}
	m.grow(i)
	m.values[i] = v
	m.nulls[i] = false
	return nil
}

// SetNull marks the field at index i as the dialect's null sentinel,
// growing the record with empty fields if i is beyond the current end.
func (m *MutableRecord) SetNull(i int) error {
	if i < 0 {
		return csverr.ErrUnknownColumn
	}
	m.grow(i)
	m.values[i] = ""
	m.nulls[i] = true
	return nil
}

// SetByName overwrites the field mapped to the given header column.
// Returns ErrMissingHeader if the record has no header, or
// ErrUnknownColumn if name is not a header column.
func (m *MutableRecord) SetByName(name, v string) error {
	if m.headerIndex == nil {
		return csverr.ErrMissingHeader
	}
	idx, ok := resolveHeaderIndex(m.headerIndex, m.foldCase, name)
	if !ok {
		return csverr.ErrUnknownColumn
	}
	return m.Set(idx, v)
}

// Values returns a copy of the fields currently set.
func (m *MutableRecord) Values() []string {
	out := make([]string, len(m.values))
	copy(out, m.values)
	return out
}

// Freeze snapshots the mutable record into an immutable Record,
// stamping it with the given metadata.
func (m *MutableRecord) Freeze(recordNumber, charPosition int64, comment string, hasComment bool) *Record {
	nulls := make([]bool, len(m.nulls))
	copy(nulls, m.nulls)
	return New(m.Values(), nulls, m.headerIndex, m.foldCase, recordNumber, charPosition, comment, hasComment)
}
