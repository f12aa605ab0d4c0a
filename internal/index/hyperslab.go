// Package index translates high-level indexing expressions into hyperslab
// descriptors the storage engine understands.
//
// An indexing expression is a list of per-axis components: a bare integer, a
// slice with optional start/stop/step, or a single ellipsis standing for
// "all remaining axes". The package resolves the expression against a
// variable's declared shape (Python slice semantics, including negative
// indices and negative steps), converts each axis to a non-negative-stride
// range, and collects the per-axis results into a Hyperslab.
package index

import "fmt"

// IndexingError reports a malformed or out-of-range indexing expression.
type IndexingError struct {
	Msg string
}

func (e *IndexingError) Error() string { return e.Msg }

type componentKind int

const (
	kindRange componentKind = iota
	kindScalar
	kindEllipsis
)

// Component is one axis of an indexing expression.
type Component struct {
	kind              componentKind
	index             int
	start, stop, step *int
}

// Scalar addresses a single position on one axis, collapsing it out of the
// logical result.
func Scalar(i int) Component {
	return Component{kind: kindScalar, index: i}
}

// Range addresses a slice of one axis. Nil endpoints are open in the
// direction of the step; a nil step means +1.
func Range(start, stop, step *int) Component {
	return Component{kind: kindRange, start: start, stop: stop, step: step}
}

// Ellipsis expands to full-range slices for all axes the rest of the
// expression leaves unconsumed. At most one per expression.
func Ellipsis() Component {
	return Component{kind: kindEllipsis}
}

// Shape is the immutable snapshot of a variable's declared geometry taken
// when a descriptor is built. RecordCount is the record-axis extent at that
// moment; Dims are the fixed non-record axes in logical order.
type Shape struct {
	RecordCount   int
	Dims          []int
	RecordVarying bool
}

// Hyperslab describes one variable access in storage terms: per-axis start,
// count and interval (all non-negative), plus bookkeeping for axes that were
// addressed by a scalar (degenerate, absent from the logical result) and
// axes whose logical traversal order is descending (reversed relative to
// storage order). Axis 0 is always the record axis.
//
// A Hyperslab captures the variable's shape at construction and is only
// valid for the single operation that built it.
type Hyperslab struct {
	Dims      int
	DimSizes  []int
	Starts    []int
	Counts    []int
	Intervals []int
	Degen     []bool
	Rev       []bool

	// RV records whether the variable is record-varying; a false value
	// means axis 0 is the synthetic shared-record axis.
	RV bool
}

// New resolves an indexing expression against a shape. The record axis is
// prepended automatically: for a record-varying variable the expression's
// first component addresses it, while a non-record-varying variable keeps a
// synthetic degenerate record axis and the expression addresses only the
// fixed axes.
func New(shape Shape, expr []Component) (*Hyperslab, error) {
	addressable := len(shape.Dims)
	if shape.RecordVarying {
		addressable++
	}
	expanded, err := expand(expr, addressable)
	if err != nil {
		return nil, err
	}

	hs := &Hyperslab{Dims: len(shape.Dims) + 1, RV: shape.RecordVarying}
	hs.DimSizes = make([]int, 0, hs.Dims)
	if shape.RecordVarying {
		hs.DimSizes = append(hs.DimSizes, shape.RecordCount)
	} else {
		hs.DimSizes = append(hs.DimSizes, 1)
	}
	hs.DimSizes = append(hs.DimSizes, shape.Dims...)

	hs.Starts = make([]int, hs.Dims)
	hs.Counts = make([]int, hs.Dims)
	hs.Intervals = make([]int, hs.Dims)
	hs.Degen = make([]bool, hs.Dims)
	hs.Rev = make([]bool, hs.Dims)

	axis := 0
	if !shape.RecordVarying {
		// Non-record-varying data is shared across records; address the
		// single stored record and drop the axis from the result.
		hs.Counts[0] = 1
		hs.Intervals[0] = 1
		hs.Degen[0] = true
		axis = 1
	}
	for i, comp := range expanded {
		if err := hs.apply(axis+i, comp); err != nil {
			return nil, err
		}
	}
	return hs, nil
}

func (hs *Hyperslab) apply(axis int, comp Component) error {
	length := hs.DimSizes[axis]
	switch comp.kind {
	case kindScalar:
		idx := comp.index
		if idx < 0 {
			idx += length
		}
		if idx < 0 || idx >= length {
			return &IndexingError{Msg: fmt.Sprintf(
				"index %d out of range for axis %d of length %d",
				comp.index, axis, length)}
		}
		hs.Starts[axis] = idx
		hs.Counts[axis] = 1
		hs.Intervals[axis] = 1
		hs.Degen[axis] = true
	case kindRange:
		start, count, interval, rev, err := ConvertRange(
			comp.start, comp.stop, comp.step, length)
		if err != nil {
			return err
		}
		hs.Starts[axis] = start
		hs.Counts[axis] = count
		hs.Intervals[axis] = interval
		hs.Rev[axis] = rev
	default:
		return &IndexingError{Msg: "unexpected ellipsis"}
	}
	return nil
}

// expand replaces the ellipsis (if any) with full-range slices and pads
// trailing omitted axes, yielding exactly n components.
func expand(expr []Component, n int) ([]Component, error) {
	full := Range(nil, nil, nil)
	given := 0
	ellipses := 0
	for _, c := range expr {
		if c.kind == kindEllipsis {
			ellipses++
		} else {
			given++
		}
	}
	if ellipses > 1 {
		return nil, &IndexingError{Msg: "indexing expression may contain at most one ellipsis"}
	}
	if given > n {
		return nil, &IndexingError{Msg: fmt.Sprintf(
			"indexing expression has %d components; variable has %d addressable axes",
			given, n)}
	}
	out := make([]Component, 0, n)
	for _, c := range expr {
		if c.kind == kindEllipsis {
			for i := 0; i < n-given; i++ {
				out = append(out, full)
			}
			continue
		}
		out = append(out, c)
	}
	for len(out) < n {
		out = append(out, full)
	}
	return out, nil
}

// ExpectedShape is the logical shape of the data this access reads or
// writes: the counts of all non-degenerate axes in order. Degenerate axes
// are dropped entirely, not kept as size 1.
func (hs *Hyperslab) ExpectedShape() []int {
	shape := make([]int, 0, hs.Dims)
	for i := 0; i < hs.Dims; i++ {
		if !hs.Degen[i] {
			shape = append(shape, hs.Counts[i])
		}
	}
	return shape
}

// SetRecordCount rewrites the record-axis count, used when an assignment
// grows or shrinks the record axis to fit the data.
func (hs *Hyperslab) SetRecordCount(n int) {
	hs.Counts[0] = n
}

// Expanded reproduces the logical index sequence this descriptor visits on
// the given axis, in logical (possibly descending) order.
func (hs *Hyperslab) Expanded(axis int) []int {
	out := make([]int, hs.Counts[axis])
	for i := range out {
		out[i] = hs.Starts[axis] + i*hs.Intervals[axis]
	}
	if hs.Rev[axis] {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
