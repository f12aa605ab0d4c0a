package cdf

import (
	"sync"

	"github.com/pkg/errors"
)

// Engine sentinel errors. Callers match them with errors.Is after
// unwrapping the variable-name context.
var (
	ErrNoSuchVariable  = errors.New("no such variable")
	ErrVariableExists  = errors.New("variable already exists")
	ErrSlabOutOfBounds = errors.New("hyperslab exceeds variable bounds")
)

// MemoryEngine is an in-process Engine keeping each variable as one flat
// native buffer. New records are zero filled. All methods are safe for
// concurrent use; writers that compose several calls must hold their own
// exclusion, as the Engine contract requires.
type MemoryEngine struct {
	mu       sync.RWMutex
	majority Majority
	vars     map[string]*memVariable
}

type memVariable struct {
	meta VarMeta
	// storageDims are the per-record axes in storage order, inverted from
	// the logical order for a column-major engine.
	storageDims []int
	records     int
	data        []byte
}

func (mv *memVariable) recordSize() int {
	n := mv.meta.ElemSize()
	for _, d := range mv.storageDims {
		n *= d
	}
	return n
}

// NewMemoryEngine creates an empty engine with the given majority.
func NewMemoryEngine(majority Majority) *MemoryEngine {
	return &MemoryEngine{majority: majority, vars: make(map[string]*memVariable)}
}

// Majority reports the engine's storage nesting order.
func (e *MemoryEngine) Majority() Majority { return e.majority }

// Create declares a new empty variable.
func (e *MemoryEngine) Create(meta VarMeta) error {
	if err := meta.validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.vars[meta.Name]; ok {
		return errors.Wrap(ErrVariableExists, meta.Name)
	}
	dims := make([]int, len(meta.Dims))
	copy(dims, meta.Dims)
	if e.majority == ColumnMajor {
		for i, j := 0, len(dims)-1; i < j; i, j = i+1, j-1 {
			dims[i], dims[j] = dims[j], dims[i]
		}
	}
	mv := &memVariable{meta: meta, storageDims: dims}
	if !meta.RecordVarying {
		// Non-record-varying data lives in a single shared record,
		// present from creation.
		mv.records = 1
		mv.data = make([]byte, mv.recordSize())
	}
	e.vars[meta.Name] = mv
	return nil
}

// CreateWithData declares a variable and writes its initial contents in one
// step. When meta.Dims is nil the fixed axes are inferred from the data's
// shape: all of it for a non-record-varying variable, everything past the
// leading record axis otherwise.
func (e *MemoryEngine) CreateWithData(meta VarMeta, data any) (*Variable, error) {
	if meta.Dims == nil {
		shape, err := NestedShape(data)
		if err != nil {
			return nil, err
		}
		if meta.RecordVarying {
			if len(shape) == 0 {
				return nil, errors.Errorf(
					"variable %q: record-varying data must have a record axis", meta.Name)
			}
			meta.Dims = shape[1:]
		} else {
			meta.Dims = shape
		}
	}
	if err := e.Create(meta); err != nil {
		return nil, err
	}
	v, err := OpenVariable(e, meta.Name)
	if err != nil {
		return nil, err
	}
	if err := v.Set([]Index{Ellipsis}, data); err != nil {
		return nil, err
	}
	return v, nil
}

func (e *MemoryEngine) lookup(name string) (*memVariable, error) {
	mv, ok := e.vars[name]
	if !ok {
		return nil, errors.Wrap(ErrNoSuchVariable, name)
	}
	return mv, nil
}

// Meta returns the declared geometry of a variable.
func (e *MemoryEngine) Meta(name string) (VarMeta, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	mv, err := e.lookup(name)
	if err != nil {
		return VarMeta{}, err
	}
	return mv.meta, nil
}

// RecordCount returns the current record-axis extent.
func (e *MemoryEngine) RecordCount(name string) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	mv, err := e.lookup(name)
	if err != nil {
		return 0, err
	}
	return mv.records, nil
}

// SetRecordCount grows the record axis with zero-filled records or
// truncates it, freeing the tail.
func (e *MemoryEngine) SetRecordCount(name string, n int) error {
	if n < 0 {
		return errors.Errorf("negative record count %d", n)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	mv, err := e.lookup(name)
	if err != nil {
		return err
	}
	rs := mv.recordSize()
	switch {
	case n > mv.records:
		mv.data = append(mv.data, make([]byte, (n-mv.records)*rs)...)
	case n < mv.records:
		mv.data = mv.data[:n*rs]
	}
	mv.records = n
	return nil
}

// ShiftRecords moves records at indices >= at by the given distance. A
// positive shift opens a zero-filled gap and grows the variable; a negative
// shift closes one, discarding the records it lands on.
func (e *MemoryEngine) ShiftRecords(name string, at, by int) error {
	if by == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	mv, err := e.lookup(name)
	if err != nil {
		return err
	}
	if at < 0 || at > mv.records {
		return errors.Wrapf(ErrSlabOutOfBounds,
			"shift at record %d of %d", at, mv.records)
	}
	rs := mv.recordSize()
	if by > 0 {
		gap := make([]byte, by*rs)
		tail := mv.data[at*rs:]
		mv.data = append(mv.data[:at*rs:at*rs], append(gap, tail...)...)
		mv.records += by
		return nil
	}
	if at+by < 0 {
		return errors.Wrapf(ErrSlabOutOfBounds,
			"shift by %d at record %d", by, at)
	}
	mv.data = append(mv.data[:(at+by)*rs], mv.data[at*rs:]...)
	mv.records += by
	return nil
}

// DeleteRecords removes whole records by ascending index, shifting the
// remainder down.
func (e *MemoryEngine) DeleteRecords(name string, records []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	mv, err := e.lookup(name)
	if err != nil {
		return err
	}
	rs := mv.recordSize()
	doomed := make(map[int]bool, len(records))
	for _, r := range records {
		if r < 0 || r >= mv.records {
			return errors.Wrapf(ErrSlabOutOfBounds,
				"delete record %d of %d", r, mv.records)
		}
		doomed[r] = true
	}
	kept := mv.data[:0:len(mv.data)]
	n := 0
	for r := 0; r < mv.records; r++ {
		if doomed[r] {
			continue
		}
		kept = append(kept, mv.data[r*rs:(r+1)*rs]...)
		n++
	}
	mv.data = kept
	mv.records = n
	return nil
}

// slabOffsets walks a storage-order hyperslab and calls fn with the flat
// element index of each addressed element, in buffer order.
func (mv *memVariable) slabOffsets(starts, counts, intervals []int, fn func(off int)) error {
	dims := 1 + len(mv.storageDims)
	if len(starts) != dims || len(counts) != dims || len(intervals) != dims {
		return errors.Wrapf(ErrSlabOutOfBounds,
			"%d axis triples for %d storage axes", len(starts), dims)
	}
	sizes := append([]int{mv.records}, mv.storageDims...)
	for a := 0; a < dims; a++ {
		if counts[a] == 0 {
			return nil
		}
		last := starts[a] + (counts[a]-1)*intervals[a]
		if starts[a] < 0 || intervals[a] < 1 || last >= sizes[a] {
			return errors.Wrapf(ErrSlabOutOfBounds,
				"axis %d: start %d count %d interval %d of %d",
				a, starts[a], counts[a], intervals[a], sizes[a])
		}
	}
	strides := make([]int, dims)
	stride := 1
	for a := dims - 1; a >= 0; a-- {
		strides[a] = stride
		stride *= sizes[a]
	}
	idx := make([]int, dims)
	for {
		off := 0
		for a := 0; a < dims; a++ {
			off += (starts[a] + idx[a]*intervals[a]) * strides[a]
		}
		fn(off)
		a := dims - 1
		for ; a >= 0; a-- {
			idx[a]++
			if idx[a] < counts[a] {
				break
			}
			idx[a] = 0
		}
		if a < 0 {
			return nil
		}
	}
}

// ReadHyperslab fills buf with the addressed elements in storage order.
func (e *MemoryEngine) ReadHyperslab(name string, starts, counts, intervals []int, buf []byte) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	mv, err := e.lookup(name)
	if err != nil {
		return err
	}
	es := mv.meta.ElemSize()
	i := 0
	return mv.slabOffsets(starts, counts, intervals, func(off int) {
		copy(buf[i:i+es], mv.data[off*es:])
		i += es
	})
}

// WriteHyperslab stores buf's elements at the addressed positions.
func (e *MemoryEngine) WriteHyperslab(name string, starts, counts, intervals []int, buf []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	mv, err := e.lookup(name)
	if err != nil {
		return err
	}
	es := mv.meta.ElemSize()
	i := 0
	return mv.slabOffsets(starts, counts, intervals, func(off int) {
		copy(mv.data[off*es:(off+1)*es], buf[i:])
		i += es
	})
}
