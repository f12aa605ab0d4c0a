package index

// ConvertRange turns one slice range over an axis of the given length into a
// storage-legal tuple (start, count, interval, reverse). start and stop may
// be negative (offset from the end) or nil (open in the direction of step).
// The storage engine only understands non-negative strides, so a descending
// slice becomes an ascending range beginning at the lowest index actually
// visited, plus a reversal flag applied when packing or unpacking the
// buffer.
//
// A zero count is a legal empty selection, never an error; only a zero step
// is rejected.
func ConvertRange(start, stop, step *int, length int) (int, int, int, bool, error) {
	stepv := 1
	if step != nil {
		stepv = *step
	}
	if stepv == 0 {
		return 0, 0, 0, false, &IndexingError{Msg: "slice step cannot be zero"}
	}
	startv, stopv := resolveEndpoints(start, stop, stepv, length)

	var count, interval int
	rev := false
	out := startv
	if stepv < 0 {
		interval = -stepv
		count = (startv - stopv + interval - 1) / interval
		out = startv - (count-1)*interval
		rev = true
	} else {
		interval = stepv
		count = (stopv - startv + interval - 1) / interval
	}
	if count < 0 {
		count = 0
		out = 0
	}
	return out, count, interval, rev, nil
}

// resolveEndpoints fills in open endpoints and clips both into the valid
// half-open range for the step direction. For a negative step the floor
// sentinel is -1, one before the first element, so that a descending slice
// can include index 0.
func resolveEndpoints(start, stop *int, step, length int) (int, int) {
	lower, upper := 0, length
	if step < 0 {
		lower, upper = -1, length-1
	}

	clip := func(p *int, open int) int {
		if p == nil {
			return open
		}
		v := *p
		if v < 0 {
			v += length
			if v < lower {
				v = lower
			}
			return v
		}
		if v > upper {
			v = upper
		}
		return v
	}

	openStart, openStop := lower, upper
	if step < 0 {
		openStart, openStop = upper, lower
	}
	return clip(start, openStart), clip(stop, openStop)
}
