// Package nested handles regular nested sequences of logical values.
//
// A nested sequence is the logical, in-memory form of a multi-dimensional
// array: at every depth each element is either a uniform scalar or a
// sequence, and sibling sequences at the same depth must agree in length.
// Strings, byte slices and timestamps are scalars, not sequences.
//
// The package computes shapes, fetches leaves by index path, and flips the
// nesting order (array majority) of a whole sequence.
package nested

import (
	"fmt"
	"reflect"
	"time"
)

// IrregularityError reports a nested sequence whose sibling elements
// disagree in length, making it non-rectangular. Depth is the nesting depth
// (0 = outermost) at which the disagreement was found.
type IrregularityError struct {
	Depth int
}

func (e *IrregularityError) Error() string {
	return fmt.Sprintf("data irregular in dimension %d", e.Depth)
}

// IsSequence reports whether v participates in nesting. Strings, byte
// slices and time.Time values are leaves even though Go considers some of
// them slices.
func IsSequence(v any) bool {
	switch v.(type) {
	case nil, string, []byte, time.Time:
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// Dimensions computes the shape of a nested sequence by inspecting the
// first element at each depth, then verifies that every sibling agrees.
// Scalars have shape []int{} (zero rank). A non-rectangular input returns an
// IrregularityError naming the offending depth.
func Dimensions(v any) ([]int, error) {
	shape := []int{}
	for cur := v; IsSequence(cur); {
		rv := reflect.ValueOf(cur)
		shape = append(shape, rv.Len())
		if rv.Len() == 0 {
			break
		}
		cur = rv.Index(0).Interface()
	}
	if err := validate(v, shape, 0); err != nil {
		return nil, err
	}
	return shape, nil
}

func validate(v any, shape []int, depth int) error {
	if depth == len(shape) {
		if IsSequence(v) {
			return &IrregularityError{Depth: depth}
		}
		return nil
	}
	if !IsSequence(v) {
		return &IrregularityError{Depth: depth}
	}
	rv := reflect.ValueOf(v)
	if rv.Len() != shape[depth] {
		return &IrregularityError{Depth: depth}
	}
	for i := 0; i < rv.Len(); i++ {
		if err := validate(rv.Index(i).Interface(), shape, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// At returns the leaf element of v at the given index path. The path length
// must equal the rank of v; At panics on a malformed path, since callers
// index within a shape they already validated.
func At(v any, path []int) any {
	cur := v
	for _, i := range path {
		cur = reflect.ValueOf(cur).Index(i).Interface()
	}
	return cur
}

// Flip reverses the nesting order of a regular nested sequence: element
// [i0, i1, ..., ik] of the input is element [ik, ..., i1, i0] of the
// output. Inputs of rank 0 or 1 pass through unchanged. Rectangularity is a
// precondition; irregular input returns an IrregularityError.
func Flip(v any) (any, error) {
	shape, err := Dimensions(v)
	if err != nil {
		return nil, err
	}
	if len(shape) < 2 {
		return v, nil
	}
	rshape := make([]int, len(shape))
	for i, n := range shape {
		rshape[len(shape)-1-i] = n
	}
	return flipLevel(v, rshape, make([]int, 0, len(rshape))), nil
}

func flipLevel(v any, rshape, prefix []int) any {
	if len(prefix) == len(rshape) {
		path := make([]int, len(prefix))
		for i, idx := range prefix {
			path[len(prefix)-1-i] = idx
		}
		return At(v, path)
	}
	out := make([]any, rshape[len(prefix)])
	for i := range out {
		out[i] = flipLevel(v, rshape, append(prefix, i))
	}
	return out
}
