// Package record defines the parsed-record value type: an immutable
// row of fields plus the metadata the parser captured alongside it
// (record number, source character offset, and any accumulated
// leading comment), together with the optional name-to-index mapping
// a header row established.
package record

import (
	"strings"

	"github.com/csvdef/csvdef/csverr"
)

// Record is one parsed row. Values are accessed positionally with Get
// or, when the stream has a header, by column name with GetByName. A
// Record is immutable and safe to share; PutIn/ToMap return copies.
type Record struct {
	values       []string
	nulls        []bool         // nil, or same length as values; true marks a null field
	headerIndex  map[string]int // nil when the stream has no header
	foldCase     bool
	recordNumber int64
	charPosition int64
	comment      string
	hasComment   bool
}

// New builds a Record. headerIndex may be nil (no header); it is
// shared, not copied, across every record produced by one parse, so
// callers must not mutate it after handing it to New. foldCase mirrors
// the dialect's IgnoreHeaderCase: when true, GetByName/IsMapped/IsSet
// match header names case-insensitively without altering the names
// ToMap/PutIn/Header report. nulls may be nil when the stream carries
// no null sentinel (no field is ever null); otherwise it must be the
// same length as values, with true marking a field that came from an
// unquoted cell equal to the dialect's null string.
func New(values []string, nulls []bool, headerIndex map[string]int, foldCase bool, recordNumber, charPosition int64, comment string, hasComment bool) *Record {
	return &Record{
		values:       values,
		nulls:        nulls,
		headerIndex:  headerIndex,
		foldCase:     foldCase,
		recordNumber: recordNumber,
		charPosition: charPosition,
		comment:      comment,
		hasComment:   hasComment,
	}
}

// IsNull reports whether the field at the given 0-based index is the
// dialect's null sentinel rather than a literal value.
func (r *Record) IsNull(i int) (bool, error) {
	if i < 0 || i >= len(r.values) {
		return false, csverr.ErrUnknownColumn
	}
	return i < len(r.nulls) && r.nulls[i], nil
}

// resolveIndex finds the header position for name, honoring foldCase.
func (r *Record) resolveIndex(name string) (int, bool) {
	return resolveHeaderIndex(r.headerIndex, r.foldCase, name)
}

// resolveHeaderIndex finds name's position in headerIndex, falling back
// to a case-insensitive scan when foldCase is set. Shared by Record and
// MutableRecord so the two don't drift.
func resolveHeaderIndex(headerIndex map[string]int, foldCase bool, name string) (int, bool) {
	if idx, ok := headerIndex[name]; ok {
		return idx, true
	}
	if !foldCase {
		return 0, false
	}
	lower := strings.ToLower(name)
	for k, idx := range headerIndex {
		if strings.ToLower(k) == lower {
			return idx, true
		}
	}
	return 0, false
}

// Size returns the number of fields in the record.
func (r *Record) Size() int {
	return len(r.values)
}

// Get returns the field at the given 0-based index.
func (r *Record) Get(i int) (string, error) {
	if i < 0 || i >= len(r.values) {
		return "", csverr.ErrUnknownColumn
	}
	return r.values[i], nil
}

// GetByName returns the field mapped to the given header name.
// Returns ErrMissingHeader when the stream has no header, or
// ErrUnknownColumn when name is not one of the header's columns.
func (r *Record) GetByName(name string) (string, error) {
	if r.headerIndex == nil {
		return "", csverr.ErrMissingHeader
	}
	idx, ok := r.resolveIndex(name)
	if !ok {
		return "", csverr.ErrUnknownColumn
	}
	if idx >= len(r.values) {
		return "", csverr.ErrInconsistentRow
	}
	return r.values[idx], nil
}

// IsMapped reports whether name is one of the header's columns,
// regardless of whether this particular record actually has a value
// at that position (see IsConsistent).
func (r *Record) IsMapped(name string) bool {
	if r.headerIndex == nil {
		return false
	}
	_, ok := r.resolveIndex(name)
	return ok
}

// IsSet reports whether name is mapped and this record actually has a
// value at the mapped position.
func (r *Record) IsSet(name string) bool {
	if r.headerIndex == nil {
		return false
	}
	idx, ok := r.resolveIndex(name)
	return ok && idx < len(r.values)
}

// IsConsistent reports whether this record has exactly as many fields
// as the header it was parsed against (always true for headerless
// streams).
func (r *Record) IsConsistent() bool {
	return r.headerIndex == nil || len(r.values) == len(r.headerIndex)
}

// HasComment reports whether any comment lines preceded this record.
func (r *Record) HasComment() bool {
	return r.hasComment
}

// Comment returns the accumulated comment text preceding this record,
// or "" if HasComment is false. Each comment line is followed by "\n",
// the last one included; blank comment lines are dropped rather than
// contributing an empty line to the result.
func (r *Record) Comment() string {
	return r.comment
}

// RecordNumber returns the 1-based ordinal of this record within the
// stream (the header row, if any, does not count).
func (r *Record) RecordNumber() int64 {
	return r.recordNumber
}

// CharacterPosition returns the offset, in characters from the start
// of the input, at which this record began.
func (r *Record) CharacterPosition() int64 {
	return r.charPosition
}

// Values returns a copy of the record's fields in order.
func (r *Record) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// AnyValues returns the record's fields in order, suitable for handing
// straight to Printer.Print: a null field (see IsNull) comes back as a
// nil interface value rather than its literal text.
func (r *Record) AnyValues() []interface{} {
	out := make([]interface{}, len(r.values))
	for i, v := range r.values {
		if i < len(r.nulls) && r.nulls[i] {
			out[i] = nil
			continue
		}
		out[i] = v
	}
	return out
}

// ToMap builds a fresh map from header column name to field value.
// Returns ErrMissingHeader if the stream has no header. Columns beyond
// the end of an inconsistent record are omitted rather than panicking.
func (r *Record) ToMap() (map[string]string, error) {
	return r.PutIn(make(map[string]string, len(r.headerIndex)))
}

// PutIn writes this record's fields into dst, keyed by header column
// name, and returns dst. Returns ErrMissingHeader if the stream has no
// header.
func (r *Record) PutIn(dst map[string]string) (map[string]string, error) {
	if r.headerIndex == nil {
		return nil, csverr.ErrMissingHeader
	}
	for name, idx := range r.headerIndex {
		if idx >= len(r.values) {
			continue
		}
		dst[name] = r.values[idx]
	}
	return dst, nil
}

// String renders the record as a comma-joined, double-quoted list of
// fields, for debugging and log output only — not a CSV encoding.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range r.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('"')
		sb.WriteString(v)
		sb.WriteByte('"')
	}
	sb.WriteByte(']')
	return sb.String()
}
