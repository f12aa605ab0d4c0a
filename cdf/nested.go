package cdf

import "github.com/robert-malhotra/go-cdf/internal/nested"

// NestedShape probes the dimensions of nested slice data, validating that
// every level is rectangular. A scalar has an empty shape. Strings,
// byte slices and timestamps count as scalars.
func NestedShape(data any) ([]int, error) {
	return nested.Dimensions(data)
}

// FlipMajority transposes nested data by reversing its axis order, so that
// row-major nesting becomes column-major nesting and back. Data of rank 0
// or 1 is returned unchanged.
func FlipMajority(data any) (any, error) {
	return nested.Flip(data)
}
