package cdf

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-cdf/internal/index"
	"github.com/robert-malhotra/go-cdf/internal/nested"
)

// IndexingError reports a malformed indexing expression: wrong arity,
// multiple ellipses, or a scalar index out of bounds.
type IndexingError = index.IndexingError

// StructuralIrregularityError reports nested data that is not rectangular,
// naming the nesting depth at which sibling lengths disagree.
type StructuralIrregularityError = nested.IrregularityError

// ShapeMismatchError reports assigned data whose shape does not match the
// logical shape the indexing expression selects.
type ShapeMismatchError struct {
	Got  []int
	Want []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("attempt to assign data of dimensions %s to slice of dimensions %s",
		fmtDims(e.Got), fmtDims(e.Want))
}

// RecordAxisUsageError reports insert or delete misuse on the record axis.
// Partial-record deletes and record operations on non-record-varying
// variables are never coerced into something legal.
type RecordAxisUsageError struct {
	Reason string
}

func (e *RecordAxisUsageError) Error() string { return e.Reason }

// RecordAxisUsageError reasons.
const (
	errPartialDelete    = "can only delete entire records"
	errDeleteNonVarying = "cannot delete records from non-record-varying variable"
	errInsertNonVarying = "cannot insert records into non-record-varying variable"
)

func fmtDims(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
