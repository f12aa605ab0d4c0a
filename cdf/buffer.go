package cdf

// Buffer packing strategy
//
// A native buffer is a flat byte slice holding the elements of one
// hyperslab access in storage order: the record axis outermost, then the
// non-record axes, inverted for a column-major container. Three per-axis
// translations sit between that layout and the logical nested data callers
// see:
//
//   - rev: a descending logical slice is stored as an ascending range, so
//     elements are placed back-to-front along that axis.
//   - degen: an axis addressed by a scalar occupies one storage slot but is
//     absent from the logical shape.
//   - majority: a column-major container inverts the intra-record axis
//     order, expressed here as an axis permutation over the buffer strides.
//
// Leaf values convert between logical Go values and the declared element
// encoding on the way through; timestamps pass through the epoch codec.
// Packing never partially succeeds: shape and conversion problems surface
// before the buffer is handed to the storage engine.

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/robert-malhotra/go-cdf/internal/binary"
	"github.com/robert-malhotra/go-cdf/internal/epoch"
	"github.com/robert-malhotra/go-cdf/internal/index"
	"github.com/robert-malhotra/go-cdf/internal/nested"
)

// bufferLayout maps between logical axis indices and storage-order offsets
// for one hyperslab access.
type bufferLayout struct {
	hs       *index.Hyperslab
	meta     VarMeta
	column   bool
	pos      []int // logical axis -> storage axis
	logical  []int // storage axis -> logical axis
	counts   []int // per storage axis
	strides  []int // in elements, per storage axis
	elemSize int
}

func newBufferLayout(hs *index.Hyperslab, meta VarMeta, majority Majority) *bufferLayout {
	l := &bufferLayout{
		hs:       hs,
		meta:     meta,
		column:   majority == ColumnMajor,
		elemSize: meta.ElemSize(),
	}
	d := hs.Dims
	l.pos = make([]int, d)
	l.logical = make([]int, d)
	for a := 0; a < d; a++ {
		s := a
		if l.column && a > 0 {
			s = d - a
		}
		l.pos[a] = s
		l.logical[s] = a
	}
	l.counts = make([]int, d)
	for s := 0; s < d; s++ {
		l.counts[s] = hs.Counts[l.logical[s]]
	}
	l.strides = make([]int, d)
	stride := 1
	for s := d - 1; s >= 0; s-- {
		l.strides[s] = stride
		stride *= l.counts[s]
	}
	return l
}

// storageTriples returns the starts, counts and intervals arranged in the
// storage axis order the engine expects.
func (l *bufferLayout) storageTriples() (starts, counts, intervals []int) {
	d := l.hs.Dims
	starts = make([]int, d)
	counts = make([]int, d)
	intervals = make([]int, d)
	for s := 0; s < d; s++ {
		a := l.logical[s]
		starts[s] = l.hs.Starts[a]
		counts[s] = l.hs.Counts[a]
		intervals[s] = l.hs.Intervals[a]
	}
	return starts, counts, intervals
}

// totalElements is the buffer capacity in elements; zero for an empty
// selection on any axis.
func (l *bufferLayout) totalElements() int {
	n := 1
	for _, c := range l.counts {
		n *= c
	}
	return n
}

// createBuffer allocates a zero-initialized native buffer sized for the
// access.
func (l *bufferLayout) createBuffer() []byte {
	return make([]byte, l.totalElements()*l.elemSize)
}

// offset computes the element offset for a full logical index, applying
// per-axis reversal and the majority permutation.
func (l *bufferLayout) offset(full []int) int {
	off := 0
	for a, li := range full {
		if l.hs.Rev[a] {
			li = l.hs.Counts[a] - 1 - li
		}
		off += li * l.strides[l.pos[a]]
	}
	return off
}

// pack writes logical data into a fresh native buffer. The data's shape
// must equal the descriptor's expected logical shape; degenerate axes
// broadcast their single value into the sole storage slot.
func (l *bufferLayout) pack(data any) ([]byte, error) {
	shape, err := nested.Dimensions(data)
	if err != nil {
		return nil, err
	}
	expected := l.hs.ExpectedShape()
	if !equalDims(shape, expected) {
		return nil, &ShapeMismatchError{Got: shape, Want: expected}
	}

	buf := l.createBuffer()
	full := make([]int, l.hs.Dims)
	path := make([]int, 0, len(expected))
	err = l.walk(0, full, path, func(full, path []int) error {
		v := nested.At(data, path)
		dst := buf[l.offset(full)*l.elemSize:]
		return l.encode(dst[:l.elemSize], v)
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// unpack reads a native buffer back into logical nested data shaped to the
// descriptor's expected logical shape, dropping degenerate axes and
// restoring descending order on reversed axes. An empty selection yields
// empty nesting, not an error.
func (l *bufferLayout) unpack(buf []byte) any {
	full := make([]int, l.hs.Dims)
	return l.build(buf, 0, full)
}

func (l *bufferLayout) build(buf []byte, axis int, full []int) any {
	if axis == l.hs.Dims {
		off := l.offset(full) * l.elemSize
		return l.decode(buf[off : off+l.elemSize])
	}
	if l.hs.Degen[axis] {
		full[axis] = 0
		return l.build(buf, axis+1, full)
	}
	out := make([]any, l.hs.Counts[axis])
	for i := range out {
		full[axis] = i
		out[i] = l.build(buf, axis+1, full)
	}
	return out
}

// walk visits every logical element of the access in expected-shape order,
// passing both the full per-axis index and the logical path into the data.
func (l *bufferLayout) walk(axis int, full, path []int, fn func(full, path []int) error) error {
	if axis == l.hs.Dims {
		return fn(full, path)
	}
	if l.hs.Degen[axis] {
		full[axis] = 0
		return l.walk(axis+1, full, path, fn)
	}
	for i := 0; i < l.hs.Counts[axis]; i++ {
		full[axis] = i
		if err := l.walk(axis+1, full, append(path, i), fn); err != nil {
			return err
		}
	}
	return nil
}

func (l *bufferLayout) encode(dst []byte, v any) error {
	t := l.meta.Type
	switch t {
	case Int1, Int2, Int4, Int8, Byte:
		i, err := cast.ToInt64E(v)
		if err != nil {
			return fmt.Errorf("converting %v to %s: %w", v, t, err)
		}
		w := t.Size()
		if w < 8 {
			lo, hi := int64(-1)<<(8*w-1), int64(1)<<(8*w-1)-1
			if i < lo || i > hi {
				return fmt.Errorf("value %d overflows %s", i, t)
			}
		}
		binary.PutInt(dst, w, i)
	case UInt1, UInt2, UInt4:
		u, err := cast.ToUint64E(v)
		if err != nil {
			return fmt.Errorf("converting %v to %s: %w", v, t, err)
		}
		w := t.Size()
		if u > uint64(1)<<(8*w)-1 {
			return fmt.Errorf("value %d overflows %s", u, t)
		}
		binary.PutUint(dst, w, u)
	case Real4, Float:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("converting %v to %s: %w", v, t, err)
		}
		binary.PutFloat32(dst, float32(f))
	case Real8, Double:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("converting %v to %s: %w", v, t, err)
		}
		binary.PutFloat64(dst, f)
	case Char, UChar:
		s, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("converting %v to %s: %w", v, t, err)
		}
		if len(s) > len(dst) {
			return fmt.Errorf("string %q exceeds %d declared elements", s, len(dst))
		}
		copy(dst, s)
		for i := len(s); i < len(dst); i++ {
			dst[i] = 0
		}
	case Epoch:
		if ts, ok := v.(time.Time); ok {
			binary.PutFloat64(dst, epoch.FromTime(ts))
			break
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("converting %v to %s: %w", v, t, err)
		}
		binary.PutFloat64(dst, f)
	case Epoch16:
		ts, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("%s requires a time.Time value, got %T", t, v)
		}
		sec, psec := epoch.FromTime16(ts)
		binary.PutFloat64(dst, sec)
		binary.PutFloat64(dst[8:], psec)
	default:
		return fmt.Errorf("unsupported element type %d", t)
	}
	return nil
}

func (l *bufferLayout) decode(src []byte) any {
	switch l.meta.Type {
	case Int1, Byte:
		return int8(binary.Int(src, 1))
	case Int2:
		return int16(binary.Int(src, 2))
	case Int4:
		return int32(binary.Int(src, 4))
	case Int8:
		return binary.Int(src, 8)
	case UInt1:
		return uint8(binary.Uint(src, 1))
	case UInt2:
		return uint16(binary.Uint(src, 2))
	case UInt4:
		return uint32(binary.Uint(src, 4))
	case Real4, Float:
		return binary.Float32(src)
	case Real8, Double:
		return binary.Float64(src)
	case Char, UChar:
		b := src[:l.elemSize]
		end := len(b)
		for end > 0 && b[end-1] == 0 {
			end--
		}
		return string(b[:end])
	case Epoch:
		return epoch.ToTime(binary.Float64(src))
	case Epoch16:
		return epoch.ToTime16(binary.Float64(src), binary.Float64(src[8:]))
	}
	return nil
}

func equalDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
