package irq

import "fmt"

// Range is a closed interval [Min, Max] declared by a controller for ids,
// priorities or thresholds. A zero Range with Supported false means the
// controller has no such scheme.
type Range struct {
	Supported bool
	Min       uint32
	Max       uint32
}

// MakeRange creates a supported range.
func MakeRange(min, max uint32) Range {
	if min > max {
		panic(fmt.Sprintf("range min %d is larger than max %d", min, max))
	}

	return Range{Supported: true, Min: min, Max: max}
}

// Contains tells if v is within the range.
func (r Range) Contains(v uint32) bool {
	return r.Supported && v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	if !r.Supported {
		return "unsupported"
	}

	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// IDSet is the set of interrupt ids a controller accepts. Controllers like
// the core-local one accept a sparse set, so the set is a list of ranges.
type IDSet struct {
	ranges []Range
}

// MakeIDSet creates an IDSet from closed intervals.
func MakeIDSet(ranges ...Range) IDSet {
	s := IDSet{}
	for _, r := range ranges {
		if r.Supported {
			s.ranges = append(s.ranges, r)
		}
	}

	return s
}

// IDRange creates an IDSet covering [first, last].
func IDRange(first, last ID) IDSet {
	return MakeIDSet(MakeRange(uint32(first), uint32(last)))
}

// Contains tells if the id is in the set.
func (s IDSet) Contains(id ID) bool {
	if id < 0 {
		return false
	}

	for _, r := range s.ranges {
		if r.Contains(uint32(id)) {
			return true
		}
	}

	return false
}

// Ranges returns the intervals that make up the set.
func (s IDSet) Ranges() []Range {
	return append([]Range(nil), s.ranges...)
}

// Count returns the number of ids in the set.
func (s IDSet) Count() int {
	n := 0
	for _, r := range s.ranges {
		n += int(r.Max-r.Min) + 1
	}

	return n
}

func (s IDSet) String() string {
	str := ""
	for i, r := range s.ranges {
		if i > 0 {
			str += ","
		}

		if r.Min == r.Max {
			str += fmt.Sprintf("%d", r.Min)
		} else {
			str += fmt.Sprintf("%d-%d", r.Min, r.Max)
		}
	}

	return "{" + str + "}"
}
