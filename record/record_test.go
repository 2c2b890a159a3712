package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csvdef/csvdef/csverr"
)

func headerIndex(names ...string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

func TestGetByIndex(t *testing.T) {
	r := New([]string{"a", "b"}, nil, nil, false, 1, 0, "", false)
	v, err := r.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = r.Get(5)
	assert.ErrorIs(t, err, csverr.ErrUnknownColumn)
}

func TestGetByNameRequiresHeader(t *testing.T) {
	r := New([]string{"a"}, nil, nil, false, 1, 0, "", false)
	_, err := r.GetByName("x")
	assert.ErrorIs(t, err, csverr.ErrMissingHeader)
}

func TestGetByNameUnknownColumn(t *testing.T) {
	r := New([]string{"a", "b"}, nil, headerIndex("x", "y"), false, 1, 0, "", false)
	_, err := r.GetByName("z")
	assert.ErrorIs(t, err, csverr.ErrUnknownColumn)
}

func TestGetByNameInconsistentRow(t *testing.T) {
	r := New([]string{"a"}, nil, headerIndex("x", "y"), false, 1, 0, "", false)
	_, err := r.GetByName("y")
	assert.ErrorIs(t, err, csverr.ErrInconsistentRow)
	assert.False(t, r.IsConsistent())
	assert.True(t, r.IsMapped("y"))
	assert.False(t, r.IsSet("y"))
}

func TestToMapAndPutIn(t *testing.T) {
	r := New([]string{"1", "2"}, nil, headerIndex("x", "y"), false, 1, 0, "", false)
	m, err := r.ToMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x": "1", "y": "2"}, m)

	dst := map[string]string{"z": "keep"}
	m2, err := r.PutIn(dst)
	require.NoError(t, err)
	assert.Equal(t, "keep", m2["z"])
	assert.Equal(t, "1", m2["x"])
}

func TestToMapOmitsColumnsBeyondShortRow(t *testing.T) {
	r := New([]string{"1"}, nil, headerIndex("x", "y"), false, 1, 0, "", false)
	m, err := r.ToMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x": "1"}, m)
}

func TestCommentAndPosition(t *testing.T) {
	r := New([]string{"a"}, nil, nil, false, 3, 42, "leading note", true)
	assert.True(t, r.HasComment())
	assert.Equal(t, "leading note", r.Comment())
	assert.EqualValues(t, 3, r.RecordNumber())
	assert.EqualValues(t, 42, r.CharacterPosition())
}

func TestValuesReturnsACopy(t *testing.T) {
	r := New([]string{"a", "b"}, nil, nil, false, 1, 0, "", false)
	v := r.Values()
	v[0] = "mutated"
	v2, _ := r.Get(0)
	assert.Equal(t, "a", v2)
}

func TestIsNullAndAnyValues(t *testing.T) {
	r := New([]string{"1", "", "3"}, []bool{false, true, false}, nil, false, 1, 0, "", false)

	null0, err := r.IsNull(0)
	require.NoError(t, err)
	assert.False(t, null0)

	null1, err := r.IsNull(1)
	require.NoError(t, err)
	assert.True(t, null1)

	_, err = r.IsNull(5)
	assert.ErrorIs(t, err, csverr.ErrUnknownColumn)

	assert.Equal(t, []interface{}{"1", nil, "3"}, r.AnyValues())
}

func TestIsNullWithoutNullTrackingIsAlwaysFalse(t *testing.T) {
	r := New([]string{"a", "b"}, nil, nil, false, 1, 0, "", false)
	null0, err := r.IsNull(0)
	require.NoError(t, err)
	assert.False(t, null0)
}

func TestMutableRecordSetGrowsAndFreezes(t *testing.T) {
	m := NewMutable(headerIndex("x", "y", "z"), false)
	require.NoError(t, m.SetByName("z", "3"))
	assert.Equal(t, 3, m.Size())
	assert.Equal(t, []string{"", "", "3"}, m.Values())

	require.NoError(t, m.SetByName("x", "1"))
	require.NoError(t, m.SetByName("y", "2"))
	frozen := m.Freeze(1, 0, "", false)
	assert.Equal(t, []string{"1", "2", "3"}, frozen.Values())
}

func TestMutableRecordSetByNameUnknown(t *testing.T) {
	m := NewMutable(headerIndex("x"), false)
	err := m.SetByName("nope", "v")
	assert.ErrorIs(t, err, csverr.ErrUnknownColumn)
}

func TestNewMutableFromRecordCopies(t *testing.T) {
	r := New([]string{"a", "b"}, nil, headerIndex("x", "y"), false, 1, 0, "", false)
	m := NewMutableFromRecord(r)
	require.NoError(t, m.Set(0, "changed"))
	v, _ := r.Get(0)
	assert.Equal(t, "a", v)
	assert.Equal(t, "changed", m.Values()[0])
}

func TestMutableRecordPreservesUntouchedNullsThroughFreeze(t *testing.T) {
	r := New([]string{"1", "", "3"}, []bool{false, true, false}, headerIndex("x", "y", "z"), false, 1, 0, "", false)
	m := NewMutableFromRecord(r)
	require.NoError(t, m.SetByName("z", "changed"))
	frozen := m.Freeze(2, 0, "", false)

	null0, err := frozen.IsNull(0)
	require.NoError(t, err)
	assert.False(t, null0)

	null1, err := frozen.IsNull(1)
	require.NoError(t, err)
	assert.True(t, null1)

	null2, err := frozen.IsNull(2)
	require.NoError(t, err)
	assert.False(t, null2)
}

func TestMutableRecordSetClearsNullAndSetNullMarksField(t *testing.T) {
	m := NewMutable(nil, false)
	require.NoError(t, m.SetNull(0))
	require.NoError(t, m.Set(0, "v"))
	frozen := m.Freeze(1, 0, "", false)
	null0, err := frozen.IsNull(0)
	require.NoError(t, err)
	assert.False(t, null0)

	require.NoError(t, m.SetNull(1))
	frozen = m.Freeze(2, 0, "", false)
	null1, err := frozen.IsNull(1)
	require.NoError(t, err)
	assert.True(t, null1)
}

func TestMutableRecordSetByNameFoldsCase(t *testing.T) {
	m := NewMutable(headerIndex("Name"), true)
	require.NoError(t, m.SetByName("name", "alice"))
	assert.Equal(t, []string{"alice"}, m.Values())
}
