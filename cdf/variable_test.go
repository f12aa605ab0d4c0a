package cdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-cdf/internal/binary"
)

// physRecData builds n records of a scalar variable whose record r holds
// 1000 + 11*r, mirroring a monotone physical record counter.
func physRecData(n int) []any {
	out := make([]any, n)
	for r := range out {
		out[r] = 1000 + 11*r
	}
	return out
}

func physRecVar(t *testing.T, majority Majority) (*MemoryEngine, *Variable) {
	t.Helper()
	e := NewMemoryEngine(majority)
	v, err := e.CreateWithData(
		VarMeta{Name: "PhysRecNo", Type: Int4, NumElems: 1, RecordVarying: true},
		physRecData(100))
	require.NoError(t, err)
	return e, v
}

func TestGetScalarRecord(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	got, err := v.Get(At(4))
	require.NoError(t, err)
	assert.Equal(t, int32(1044), got)

	got, err = v.Get(At(-1))
	require.NoError(t, err)
	assert.Equal(t, int32(2089), got)
}

func TestGetDescendingSlice(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	got, err := v.Get(Span(8, 2).By(-2))
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1088), int32(1066), int32(1044)}, got)
}

func TestGetEmptySlice(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	got, err := v.Get(Span(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)
}

func TestGetOutOfRangeScalar(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	_, err := v.Get(At(800))
	var ie *IndexingError
	require.ErrorAs(t, err, &ie)

	_, err = v.Get(At(-1000))
	require.ErrorAs(t, err, &ie)
}

func TestSetInPlace(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	require.NoError(t, v.Set([]Index{Span(10, 12)}, []any{-1, -2}))

	got, err := v.Get(Span(9, 13))
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1099), int32(-1), int32(-2), int32(1132)}, got)

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestSetExtendsPastEnd(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	extra := make([]any, 20)
	for i := range extra {
		extra[i] = 9000 + i
	}
	require.NoError(t, v.Set([]Index{From(95)}, extra))

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 115, n)

	got, err := v.Get(At(114))
	require.NoError(t, err)
	assert.Equal(t, int32(9019), got)

	// Records before the write are untouched.
	got, err = v.Get(At(94))
	require.NoError(t, err)
	assert.Equal(t, int32(2034), got)
}

func TestSetInsertsIntoInterior(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	require.NoError(t, v.Set([]Index{Span(5, 6)}, []any{-5, -6}))

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 101, n)

	got, err := v.Get(Span(4, 8))
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1044), int32(-5), int32(-6), int32(1066)}, got)

	// The old tail shifted out by one.
	got, err = v.Get(At(100))
	require.NoError(t, err)
	assert.Equal(t, int32(2089), got)
}

func TestSetTruncates(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	require.NoError(t, v.Set([]Index{All()}, physRecData(20)))

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestSetWrongShapeMessage(t *testing.T) {
	e := NewMemoryEngine(RowMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "SpinRateScalersCounts", Type: Real8, NumElems: 1, RecordVarying: true},
		nestedFloats(6, 6, 2))
	require.NoError(t, err)

	// A strided record slice never stretches to fit, so the mismatch
	// surfaces as an error.
	err = v.Set([]Index{Span(0, 6).By(2)}, nestedFloats(2, 6, 2))
	require.Error(t, err)
	assert.Equal(t,
		"attempt to assign data of dimensions [2, 6, 2] to slice of dimensions [3, 6, 2]",
		err.Error())
}

func TestInsertRecord(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	require.NoError(t, v.Insert(5, 4))

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 101, n)

	got, err := v.Get(Span(4, 7))
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1044), int32(4), int32(1055)}, got)
}

func TestInsertBadShapeLeavesVariableUntouched(t *testing.T) {
	e := NewMemoryEngine(RowMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "pairs", Type: Int4, NumElems: 1, RecordVarying: true},
		[]any{
			[]any{1, 2},
			[]any{3, 4},
		})
	require.NoError(t, err)

	err = v.Insert(1, []any{1, 2, 3})
	var sme *ShapeMismatchError
	require.ErrorAs(t, err, &sme)

	// A rejected insert opens no gap.
	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := v.Get(At(1))
	require.NoError(t, err)
	assert.Equal(t, []any{int32(3), int32(4)}, got)
}

func TestInsertBadValueLeavesVariableUntouched(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	require.Error(t, v.Insert(5, "not a number"))

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	got, err := v.Get(Span(4, 7))
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1044), int32(1055), int32(1066)}, got)
}

func TestSetBadValueLeavesVariableUntouched(t *testing.T) {
	_, v := physRecVar(t, RowMajor)

	// The record plan would grow the variable to 115, but the conversion
	// failure in packing must surface before any resize.
	extra := make([]any, 20)
	for i := range extra {
		extra[i] = 9000 + i
	}
	extra[19] = "not a number"
	require.Error(t, v.Set([]Index{From(95)}, extra))

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	got, err := v.Get(Span(95, 100))
	require.NoError(t, err)
	assert.Equal(t, []any{
		int32(2045), int32(2056), int32(2067), int32(2078), int32(2089),
	}, got)
}

func TestInsertNonVarying(t *testing.T) {
	e := NewMemoryEngine(RowMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "SpinNumbers", Type: Int4, NumElems: 1, RecordVarying: false},
		[]any{0, 1, 2, 3})
	require.NoError(t, err)

	err = v.Insert(0, []any{9, 9, 9, 9})
	var rae *RecordAxisUsageError
	require.ErrorAs(t, err, &rae)
	assert.Equal(t, "cannot insert records into non-record-varying variable", err.Error())
}

func TestDeleteEveryOther(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	require.NoError(t, v.Delete(All().By(2)))

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	got, err := v.Get(Span(0, 3))
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1011), int32(1033), int32(1055)}, got)
}

func TestDeleteEmptySelection(t *testing.T) {
	_, v := physRecVar(t, RowMajor)
	require.NoError(t, v.Delete(Span(4, 4)))

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestDeletePartialRecord(t *testing.T) {
	e := NewMemoryEngine(RowMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "SectorNumbers", Type: Int4, NumElems: 1, RecordVarying: true},
		nestedFloats(4, 6, 2))
	require.NoError(t, err)

	err = v.Delete(Span(0, 2), Span(0, 3))
	var rae *RecordAxisUsageError
	require.ErrorAs(t, err, &rae)
	assert.Equal(t, "can only delete entire records", err.Error())
}

func TestNonVaryingRoundTrip(t *testing.T) {
	e := NewMemoryEngine(RowMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "SpinNumbers", Type: Int4, NumElems: 1, RecordVarying: false},
		[]any{0, 1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)

	// The record axis is synthetic: the expression addresses only the
	// fixed axes and the result carries no record axis.
	got, err := v.Get(Span(2, 5))
	require.NoError(t, err)
	assert.Equal(t, []any{int32(2), int32(3), int32(4)}, got)

	got, err = v.Get(At(7))
	require.NoError(t, err)
	assert.Equal(t, int32(7), got)
}

func TestMultiDimBothMajorities(t *testing.T) {
	data := nestedFloats(5, 3, 2)
	for _, majority := range []Majority{RowMajor, ColumnMajor} {
		e := NewMemoryEngine(majority)
		v, err := e.CreateWithData(
			VarMeta{Name: "m", Type: Real8, NumElems: 1, RecordVarying: true},
			data)
		require.NoError(t, err)

		got, err := v.Get(Ellipsis)
		require.NoError(t, err)
		assert.Equal(t, data, got, "majority %s", majority)

		got, err = v.Get(At(2), At(1))
		require.NoError(t, err)
		assert.Equal(t, []any{210.0, 211.0}, got)
	}
}

func TestColumnMajorStorageOrder(t *testing.T) {
	e := NewMemoryEngine(ColumnMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "m", Type: Real8, NumElems: 1, RecordVarying: true},
		[]any{[]any{
			[]any{1.0, 2.0},
			[]any{3.0, 4.0},
		}})
	require.NoError(t, err)
	_ = v

	// The engine's native record is the flipped nesting of the logical
	// record, laid out flat.
	flipped, err := FlipMajority([]any{
		[]any{1.0, 2.0},
		[]any{3.0, 4.0},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{
		[]any{1.0, 3.0},
		[]any{2.0, 4.0},
	}, flipped)

	buf := make([]byte, 4*8)
	require.NoError(t, e.ReadHyperslab("m",
		[]int{0, 0, 0}, []int{1, 2, 2}, []int{1, 1, 1}, buf))

	got := []float64{
		binary.Float64(buf[0:]), binary.Float64(buf[8:]),
		binary.Float64(buf[16:]), binary.Float64(buf[24:]),
	}
	assert.Equal(t, []float64{1.0, 3.0, 2.0, 4.0}, got)
}

func TestEpochVariable(t *testing.T) {
	times := []any{
		time.Date(2008, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2009, 1, 1, 1, 0, 0, 0, time.UTC),
	}
	e := NewMemoryEngine(RowMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "ATC", Type: Epoch, NumElems: 1, RecordVarying: true},
		times)
	require.NoError(t, err)

	got, err := v.Get(At(1))
	require.NoError(t, err)
	assert.Equal(t, times[1], got)

	got, err = v.Get(All())
	require.NoError(t, err)
	assert.Equal(t, times, got)
}

func TestEpoch16Variable(t *testing.T) {
	ts := time.Date(2009, 1, 1, 0, 0, 0, 123456000, time.UTC)
	e := NewMemoryEngine(RowMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "ATC16", Type: Epoch16, NumElems: 1, RecordVarying: true},
		[]any{ts})
	require.NoError(t, err)

	got, err := v.Get(At(0))
	require.NoError(t, err)
	assert.Equal(t, ts, got)
}

func TestCharVariable(t *testing.T) {
	e := NewMemoryEngine(RowMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "Instrument", Type: Char, NumElems: 10, RecordVarying: false},
		"EPI")
	require.NoError(t, err)

	got, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, "EPI", got)
}

func TestCreateWithDataInfersDims(t *testing.T) {
	e := NewMemoryEngine(RowMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "m", Type: Real8, NumElems: 1, RecordVarying: true},
		nestedFloats(4, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, v.Shape())

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestOpenUnknownVariable(t *testing.T) {
	e := NewMemoryEngine(RowMajor)
	_, err := OpenVariable(e, "nope")
	require.ErrorIs(t, err, ErrNoSuchVariable)
}

func TestCopy(t *testing.T) {
	data := nestedFloats(4, 3, 2)
	e := NewMemoryEngine(ColumnMajor)
	v, err := e.CreateWithData(
		VarMeta{Name: "m", Type: Real8, NumElems: 1, RecordVarying: true},
		data)
	require.NoError(t, err)

	got, err := v.Copy()
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

// nestedFloats builds rectangular float64 data of the given shape with
// distinct values per position.
func nestedFloats(shape ...int) any {
	var build func(prefix int, shape []int) any
	build = func(prefix int, shape []int) any {
		if len(shape) == 0 {
			return float64(prefix)
		}
		out := make([]any, shape[0])
		for i := range out {
			out[i] = build(prefix*10+i, shape[1:])
		}
		return out
	}
	return build(0, shape)
}
