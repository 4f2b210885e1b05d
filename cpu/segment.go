package cpu

import (
	"cmp"
	"iter"
	"slices"
)

// SegReg names a segment kind.
type SegReg uint8

//go:generate go tool stringer -linecomment -type=SegReg
const (
	SEG_CS = SegReg(0) // Code Segment
	SEG_DS = SegReg(1) // Data Segment
	SEG_SS = SegReg(2) // Stack Segment
	SEG_ES = SegReg(3) // Extra Segment
)

// Segment is an inclusive range of memory word indices.
type Segment struct {
	Start uint32
	End   uint32
}

// Contains reports whether addr falls inside the segment.
func (s Segment) Contains(addr uint32) bool {
	return addr >= s.Start && addr <= s.End
}

// Size returns the number of words the segment spans.
func (s Segment) Size() uint32 {
	return s.End - s.Start + 1
}

// Segments maps each segment kind to its range.
type Segments map[SegReg]Segment

// Validate checks the map against a memory of memSize words: all four
// kinds present, each range ordered and in bounds, ranges pairwise
// disjoint, and the aggregate no larger than the memory.
func (sg Segments) Validate(memSize uint32) (err error) {
	for _, kind := range []SegReg{SEG_CS, SEG_DS, SEG_SS, SEG_ES} {
		if _, ok := sg[kind]; !ok {
			err = ErrSegmentMissing
			return
		}
	}

	ranges := make([]Segment, 0, len(sg))
	for _, rng := range sg {
		if rng.Start > rng.End || rng.End >= memSize {
			err = ErrSegmentRange
			return
		}
		ranges = append(ranges, rng)
	}

	slices.SortFunc(ranges, func(a, b Segment) int {
		return cmp.Compare(a.Start, b.Start)
	})

	var total uint64
	for n, rng := range ranges {
		if n > 0 && ranges[n-1].End >= rng.Start {
			err = ErrSegmentOverlap
			return
		}
		total += uint64(rng.Size())
	}

	if total > uint64(memSize) {
		err = ErrSegmentSize
		return
	}

	return
}

// All iterates the segments in kind order (CS, DS, SS, ES), for trace
// emission and define export.
func (sg Segments) All() iter.Seq2[SegReg, Segment] {
	return func(yield func(SegReg, Segment) bool) {
		for _, kind := range []SegReg{SEG_CS, SEG_DS, SEG_SS, SEG_ES} {
			rng, ok := sg[kind]
			if !ok {
				continue
			}
			if !yield(kind, rng) {
				return
			}
		}
	}
}
