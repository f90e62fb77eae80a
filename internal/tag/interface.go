package tag

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// End names a member end for interface-node identity.
type End string

const (
	EndI End = "I"
	EndJ End = "J"
)

// Interface nodes created by rigid-end splitting get deterministic tags in
// a reserved 32-bit band: [interfaceBase, interfaceBase+2*interfaceSlots).
// Each slot is two tags wide, even for the I end and odd for the J end.
const (
	interfaceBase  = 1_500_000_000
	interfaceSlots = 300_000_000
)

// Allocator hands out interface-node tags. Allocation is idempotent per
// (iTag, jTag, end) source: asking again returns the tag already assigned.
// Hash collisions advance whole slots (tag += 2) until a free one is
// found; exhausting the band is an error, not a panic.
type Allocator struct {
	used     map[int]bool
	bySource map[string]int
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		used:     map[int]bool{},
		bySource: map[string]int{},
	}
}

func interfaceSlot(minTag, maxTag int, end End) int {
	h, _ := blake2b.New(8, nil)
	fmt.Fprintf(h, "%d|%d|%s", minTag, maxTag, end)
	return int(binary.BigEndian.Uint64(h.Sum(nil)) % interfaceSlots)
}

// Interface returns the tag for the interface node at one end of the
// member spanning the given node tags.
func (a *Allocator) Interface(iTag, jTag int, end End) (int, error) {
	if end != EndI && end != EndJ {
		return 0, fmt.Errorf("interface end must be I or J, got %q", end)
	}
	source := fmt.Sprintf("interface(%d,%d,%s)", iTag, jTag, end)
	if t, ok := a.bySource[source]; ok {
		return t, nil
	}

	lo, hi := iTag, jTag
	if lo > hi {
		lo, hi = hi, lo
	}
	endCode := 0
	if end == EndJ {
		endCode = 1
	}
	slot := interfaceSlot(lo, hi, end)
	for step := 0; step < interfaceSlots; step++ {
		cand := interfaceBase + ((slot+step)%interfaceSlots)*2 + endCode
		if !a.used[cand] {
			a.used[cand] = true
			a.bySource[source] = cand
			return cand, nil
		}
	}
	return 0, fmt.Errorf("interface tag band exhausted for %s", source)
}

// Reserved reports whether a tag has been handed out by this allocator.
func (a *Allocator) Reserved(t int) bool {
	return a.used[t]
}
