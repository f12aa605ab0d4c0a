package cdf

import "github.com/robert-malhotra/go-cdf/internal/index"

// Index is one component of an indexing expression passed to Variable.Get,
// Set or Delete: a single position, a slice of an axis, or an ellipsis.
// Omitted trailing axes are treated as full-range slices.
//
// Slices follow Python semantics: negative positions count from the end of
// the axis, open endpoints extend in the direction of the step, and a
// negative step walks the axis in descending order:
//
//	v.Get(cdf.At(0))                // first record
//	v.Get(cdf.Span(10, 2).By(-2))   // records 10, 8, 6, 4
//	v.Get(cdf.All().By(-1))         // every record, reversed
//	v.Get(cdf.Ellipsis, cdf.At(-1)) // last position of the final axis
type Index struct {
	scalar            *int
	start, stop, step *int
	ellipsis          bool
}

// Ellipsis expands to full-range slices for all axes the expression does
// not otherwise address. An expression may contain at most one.
var Ellipsis = Index{ellipsis: true}

// At addresses a single position on one axis. The axis is collapsed out of
// the result shape.
func At(i int) Index { return Index{scalar: &i} }

// All addresses an entire axis.
func All() Index { return Index{} }

// Span addresses the half-open range [start, stop) of one axis.
func Span(start, stop int) Index { return Index{start: &start, stop: &stop} }

// From addresses an axis from start through its end.
func From(start int) Index { return Index{start: &start} }

// To addresses an axis from its beginning up to stop.
func To(stop int) Index { return Index{stop: &stop} }

// By sets the slice step. A negative step walks the axis in descending
// order; endpoints left open extend in the step's direction.
func (ix Index) By(step int) Index {
	ix.step = &step
	return ix
}

func (ix Index) component() index.Component {
	switch {
	case ix.ellipsis:
		return index.Ellipsis()
	case ix.scalar != nil:
		return index.Scalar(*ix.scalar)
	default:
		return index.Range(ix.start, ix.stop, ix.step)
	}
}

func components(idx []Index) []index.Component {
	out := make([]index.Component, len(idx))
	for i, ix := range idx {
		out[i] = ix.component()
	}
	return out
}
