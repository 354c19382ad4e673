// Package arena provides index-addressed node storage for the linked
// structures in cachekit.
//
// Nodes refer to each other by int32 slot index instead of by pointer. Every
// slot carries a generation that is bumped when the slot is released, so a
// Handle issued before a release no longer validates afterwards.
package arena

// Kind describes what a slot currently holds.
type Kind uint8

const (
	// Free slots are unused and sit on the free list.
	Free Kind = iota
	// Sentinel slots bound a structure and never carry data.
	Sentinel
	// Data slots carry a live element.
	Data
)

func (k Kind) String() string {
	switch k {
	case Free:
		return "free"
	case Sentinel:
		return "sentinel"
	case Data:
		return "data"
	}
	return "unknown"
}

// Handle addresses a slot as of the generation it was issued at.
type Handle struct {
	Index int32
	Gen   uint32
}

type slot[N any] struct {
	kind Kind
	gen  uint32
	node N
}

// Arena stores nodes of type N. It is not safe for concurrent use.
type Arena[N any] struct {
	slots []slot[N]
	free  []int32
	live  int
}

// New returns an arena whose first sentinels slots are reserved as sentinels.
func New[N any](sentinels int) *Arena[N] {
	a := &Arena[N]{slots: make([]slot[N], sentinels)}
	for i := range a.slots {
		a.slots[i].kind = Sentinel
	}
	return a
}

// Alloc stores n in a free slot, reusing released slots first.
func (a *Arena[N]) Alloc(n N) int32 {
	if k := len(a.free); k > 0 {
		idx := a.free[k-1]
		a.free = a.free[:k-1]
		s := &a.slots[idx]
		s.kind = Data
		s.node = n
		a.live++
		return idx
	}
	a.slots = append(a.slots, slot[N]{kind: Data, node: n})
	a.live++
	return int32(len(a.slots) - 1)
}

// Release frees a data slot and invalidates every handle issued for it.
func (a *Arena[N]) Release(idx int32) {
	s := &a.slots[idx]
	if s.kind != Data {
		panic("arena: release of non-data slot " + s.kind.String())
	}
	var zero N
	s.node = zero
	s.kind = Free
	s.gen++
	a.free = append(a.free, idx)
	a.live--
}

// Node returns the payload stored at idx. Sentinels have payloads too; only
// their links are meaningful.
func (a *Arena[N]) Node(idx int32) *N {
	return &a.slots[idx].node
}

// Kind reports the kind of the slot at idx, or Free when idx is out of range.
func (a *Arena[N]) Kind(idx int32) Kind {
	if idx < 0 || int(idx) >= len(a.slots) {
		return Free
	}
	return a.slots[idx].kind
}

// Handle returns a handle for the slot at idx at its current generation.
func (a *Arena[N]) Handle(idx int32) Handle {
	return Handle{Index: idx, Gen: a.slots[idx].gen}
}

// Valid reports whether h still refers to the slot it was issued for.
func (a *Arena[N]) Valid(h Handle) bool {
	if h.Index < 0 || int(h.Index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.Index]
	return s.kind != Free && s.gen == h.Gen
}

// Live returns the number of data slots.
func (a *Arena[N]) Live() int {
	return a.live
}

// Slots returns the number of slots ever allocated, including sentinels and
// free slots.
func (a *Arena[N]) Slots() int {
	return len(a.slots)
}

// Clone returns a copy of the arena. Payloads are copied by value, so index
// links between nodes stay valid in the copy.
func (a *Arena[N]) Clone() *Arena[N] {
	c := &Arena[N]{
		slots: make([]slot[N], len(a.slots)),
		free:  make([]int32, len(a.free)),
		live:  a.live,
	}
	copy(c.slots, a.slots)
	copy(c.free, a.free)
	return c
}
