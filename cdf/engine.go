package cdf

import "fmt"

// Majority is the storage nesting order of a multi-axis variable relative
// to the logical, outermost-dimension-first model.
type Majority int

const (
	// RowMajor stores non-record axes in logical order.
	RowMajor Majority = iota
	// ColumnMajor stores non-record axes in inverted order.
	ColumnMajor
)

func (m Majority) String() string {
	if m == ColumnMajor {
		return "column"
	}
	return "row"
}

// VarMeta is the immutable declared geometry of a variable. Dims are the
// fixed non-record axes in logical order; the record axis is implicit and
// its current extent lives with the engine. NumElems is the character count
// per element for Char/UChar variables and 1 otherwise.
type VarMeta struct {
	Name          string
	Type          Type
	Dims          []int
	NumElems      int
	RecordVarying bool
}

// ElemSize returns the byte width of one element, including the declared
// character count for character types.
func (m VarMeta) ElemSize() int {
	if m.Type.isChar() {
		n := m.NumElems
		if n < 1 {
			n = 1
		}
		return m.Type.Size() * n
	}
	return m.Type.Size()
}

func (m VarMeta) validate() error {
	if m.Name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	if m.Type.Size() == 0 {
		return fmt.Errorf("variable %q: unknown element type %d", m.Name, m.Type)
	}
	for i, d := range m.Dims {
		if d < 1 {
			return fmt.Errorf("variable %q: axis %d has non-positive size %d", m.Name, i+1, d)
		}
	}
	return nil
}

// Engine is the storage collaborator holding variable data in native
// buffers. Axis triples passed to the hyperslab primitives are in storage
// order: record axis first, then the non-record axes in the engine's
// majority order, with strictly non-negative intervals.
//
// The engine provides mutual exclusion: a sequence of shape-changing calls
// plus a hyperslab write belongs to a single writer, and no other writer
// may interleave.
type Engine interface {
	// Majority reports the container-level storage nesting order.
	Majority() Majority

	// Meta returns the declared geometry of a variable.
	Meta(name string) (VarMeta, error)

	// RecordCount returns the current record-axis extent.
	RecordCount(name string) (int, error)

	// SetRecordCount grows or truncates the record axis. Newly addressed
	// records are left to the engine's fill convention.
	SetRecordCount(name string, n int) error

	// ShiftRecords moves records at indices >= at by the given distance:
	// positive opens a gap of uninitialized records, negative closes one.
	ShiftRecords(name string, at, by int) error

	// DeleteRecords removes whole records by ascending index, shifting the
	// remainder down.
	DeleteRecords(name string, records []int) error

	// ReadHyperslab fills buf with the addressed elements in storage order.
	ReadHyperslab(name string, starts, counts, intervals []int, buf []byte) error

	// WriteHyperslab stores buf's elements at the addressed positions.
	WriteHyperslab(name string, starts, counts, intervals []int, buf []byte) error
}
