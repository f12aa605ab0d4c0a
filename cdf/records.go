package cdf

import (
	"sort"

	"github.com/robert-malhotra/go-cdf/internal/index"
)

// writePlan captures the record-axis mutations a write requires, computed
// before any byte is packed or stored.
type writePlan struct {
	// records is the record count the variable must hold before the
	// hyperslab write lands; -1 means leave it alone.
	records int
	// shiftAt/shiftBy describe an insert of shiftBy blank records at
	// shiftAt, applied before the write; shiftBy is zero when no shift is
	// needed.
	shiftAt int
	shiftBy int
	// truncate is the record count to cut the variable down to after a
	// shorter-than-selected assignment; -1 means no truncation.
	truncate int
}

// planRecordWrite decides how the record axis must change to accommodate an
// assignment, mirroring how an interactive array interface stretches or
// shrinks along a sliced leading axis. It only engages for a
// record-varying variable addressed by an ascending unit-stride range whose
// data rank matches the selection rank; every other access writes strictly
// in place.
func planRecordWrite(hs *index.Hyperslab, current int, dataShape []int) writePlan {
	plan := writePlan{records: -1, truncate: -1}
	if !hs.RV || hs.Degen[0] || hs.Rev[0] || hs.Intervals[0] != 1 {
		return plan
	}
	expected := hs.ExpectedShape()
	if len(dataShape) != len(expected) {
		return plan
	}

	n := dataShape[0]
	old := hs.Counts[0]
	switch {
	case n > old:
		if hs.Starts[0]+old < current {
			// Assigning extra records into the interior pushes the
			// tail outward rather than overwriting it.
			plan.shiftAt = hs.Starts[0] + old
			plan.shiftBy = n - old
			plan.records = current + plan.shiftBy
		} else if hs.Starts[0]+n > current {
			plan.records = hs.Starts[0] + n
		}
		hs.SetRecordCount(n)
	case n < old:
		// A shorter assignment deletes the records it no longer covers,
		// all the way through the end of the variable.
		plan.truncate = hs.Starts[0] + n
		hs.SetRecordCount(n)
	}
	return plan
}

// planRecordDelete validates a deletion selection and returns the affected
// record indices in ascending order. Deletion must address whole records:
// the variable must be record-varying and every non-record axis must span
// its full extent.
func planRecordDelete(hs *index.Hyperslab) ([]int, error) {
	if !hs.RV {
		return nil, &RecordAxisUsageError{Reason: errDeleteNonVarying}
	}
	for a := 1; a < hs.Dims; a++ {
		if hs.Degen[a] || hs.Starts[a] != 0 || hs.Intervals[a] != 1 ||
			hs.Counts[a] != hs.DimSizes[a] {
			return nil, &RecordAxisUsageError{Reason: errPartialDelete}
		}
	}
	records := hs.Expanded(0)
	sort.Ints(records)
	return records, nil
}
