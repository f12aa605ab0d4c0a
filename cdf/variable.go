package cdf

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-cdf/internal/index"
	"github.com/robert-malhotra/go-cdf/internal/nested"
)

// Variable is the record-oriented view over one named array in an engine.
// All reads and writes go through indexing expressions; each operation
// snapshots the record count once, so a descriptor never mixes two
// generations of the record axis.
type Variable struct {
	engine Engine
	meta   VarMeta
}

// OpenVariable binds a variable by name, fetching its declared geometry
// from the engine.
func OpenVariable(e Engine, name string) (*Variable, error) {
	meta, err := e.Meta(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening variable %q", name)
	}
	return &Variable{engine: e, meta: meta}, nil
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.meta.Name }

// Type returns the declared element type.
func (v *Variable) Type() Type { return v.meta.Type }

// Shape returns the fixed non-record axis sizes in logical order.
func (v *Variable) Shape() []int {
	out := make([]int, len(v.meta.Dims))
	copy(out, v.meta.Dims)
	return out
}

// RecordVarying reports whether the variable has per-record data.
func (v *Variable) RecordVarying() bool { return v.meta.RecordVarying }

// Len returns the current record count.
func (v *Variable) Len() (int, error) {
	n, err := v.engine.RecordCount(v.meta.Name)
	if err != nil {
		return 0, errors.Wrapf(err, "reading record count of %q", v.meta.Name)
	}
	return n, nil
}

func (v *Variable) slab(expr []Index) (*index.Hyperslab, error) {
	current, err := v.Len()
	if err != nil {
		return nil, err
	}
	return v.slabAt(current, expr)
}

func (v *Variable) slabAt(current int, expr []Index) (*index.Hyperslab, error) {
	shape := index.Shape{
		RecordCount:   current,
		Dims:          v.meta.Dims,
		RecordVarying: v.meta.RecordVarying,
	}
	return index.New(shape, components(expr))
}

// Get reads the elements addressed by the indexing expression and returns
// them as nested data in the expression's logical shape. Scalar-indexed
// axes are dropped; a fully scalar expression yields a bare element. An
// empty selection yields empty nesting, not an error.
func (v *Variable) Get(expr ...Index) (any, error) {
	hs, err := v.slab(expr)
	if err != nil {
		return nil, err
	}
	layout := newBufferLayout(hs, v.meta, v.engine.Majority())
	buf := layout.createBuffer()
	if len(buf) > 0 {
		starts, counts, intervals := layout.storageTriples()
		if err := v.engine.ReadHyperslab(v.meta.Name, starts, counts, intervals, buf); err != nil {
			return nil, errors.Wrapf(err, "reading %q", v.meta.Name)
		}
	}
	return layout.unpack(buf), nil
}

// Set writes nested data to the elements addressed by the indexing
// expression. The data's shape must match the expression's logical shape,
// except along a plain ascending record-axis slice, where extra records
// grow or insert and missing records truncate the variable. All shape and
// conversion errors surface before the variable is touched.
func (v *Variable) Set(expr []Index, data any) error {
	current, err := v.Len()
	if err != nil {
		return err
	}
	hs, err := v.slabAt(current, expr)
	if err != nil {
		return err
	}
	dataShape, err := nested.Dimensions(data)
	if err != nil {
		return err
	}
	plan := planRecordWrite(hs, current, dataShape)

	layout := newBufferLayout(hs, v.meta, v.engine.Majority())
	buf, err := layout.pack(data)
	if err != nil {
		return err
	}

	if plan.shiftBy > 0 {
		if err := v.engine.ShiftRecords(v.meta.Name, plan.shiftAt, plan.shiftBy); err != nil {
			return errors.Wrapf(err, "shifting records of %q", v.meta.Name)
		}
	}
	if plan.records >= 0 {
		if err := v.engine.SetRecordCount(v.meta.Name, plan.records); err != nil {
			return errors.Wrapf(err, "resizing %q", v.meta.Name)
		}
	}
	if plan.truncate >= 0 {
		if err := v.engine.SetRecordCount(v.meta.Name, plan.truncate); err != nil {
			return errors.Wrapf(err, "truncating %q", v.meta.Name)
		}
	}
	if len(buf) == 0 {
		return nil
	}
	starts, counts, intervals := layout.storageTriples()
	if err := v.engine.WriteHyperslab(v.meta.Name, starts, counts, intervals, buf); err != nil {
		return errors.Wrapf(err, "writing %q", v.meta.Name)
	}
	return nil
}

// Insert opens a gap of one record at the given index and writes data,
// shifting later records outward. The data must be a single record shaped
// to the variable's fixed axes.
func (v *Variable) Insert(at int, data any) error {
	if !v.meta.RecordVarying {
		return &RecordAxisUsageError{Reason: errInsertNonVarying}
	}
	current, err := v.Len()
	if err != nil {
		return err
	}
	if at < 0 || at > current {
		return &IndexingError{Msg: fmt.Sprintf(
			"insert index %d out of range for %d records", at, current)}
	}
	// Resolve and pack against the post-insert count before touching the
	// variable, so bad data never leaves a half-opened gap behind.
	hs, err := v.slabAt(current+1, []Index{At(at)})
	if err != nil {
		return err
	}
	layout := newBufferLayout(hs, v.meta, v.engine.Majority())
	buf, err := layout.pack(data)
	if err != nil {
		return err
	}
	if err := v.engine.ShiftRecords(v.meta.Name, at, 1); err != nil {
		return errors.Wrapf(err, "shifting records of %q", v.meta.Name)
	}
	if err := v.engine.SetRecordCount(v.meta.Name, current+1); err != nil {
		return errors.Wrapf(err, "resizing %q", v.meta.Name)
	}
	starts, counts, intervals := layout.storageTriples()
	if err := v.engine.WriteHyperslab(v.meta.Name, starts, counts, intervals, buf); err != nil {
		return errors.Wrapf(err, "writing %q", v.meta.Name)
	}
	return nil
}

// Delete removes the whole records addressed by the indexing expression.
// The expression must span every non-record axis in full; an empty
// selection is a no-op.
func (v *Variable) Delete(expr ...Index) error {
	hs, err := v.slab(expr)
	if err != nil {
		return err
	}
	records, err := planRecordDelete(hs)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	if err := v.engine.DeleteRecords(v.meta.Name, records); err != nil {
		return errors.Wrapf(err, "deleting records of %q", v.meta.Name)
	}
	return nil
}

// Copy reads the variable in full and returns its records as nested data.
func (v *Variable) Copy() (any, error) {
	return v.Get(Ellipsis)
}
