package jumper

import "sort"

// Handle identifies a platform slot. A handle goes stale as soon as its slot
// is released; stale handles never alias the platform that reuses the slot.
type Handle struct {
	index int32
	gen   uint32
}

// Valid reports whether the handle was ever issued.
func (h Handle) Valid() bool {
	return h.gen != 0
}

type slot struct {
	p    Platform
	gen  uint32
	live bool
}

// Pool is a fixed-capacity platform arena. Slots are allocated once per
// Reset and recycled through a free list; steady-state play never allocates.
//
// Live handles are also kept in spawn order. Because the spawner emits
// strictly decreasing Y, that order doubles as a sorted index for band
// queries.
type Pool struct {
	slots []slot
	free  []int32
	order []Handle
}

// NewPool creates a pool with room for capacity platforms.
func NewPool(capacity int) *Pool {
	p := &Pool{}
	p.Reset(capacity)
	return p
}

// Reset empties the pool. Backing storage is reused when it is large enough.
func (p *Pool) Reset(capacity int) {
	if capacity < 1 {
		capacity = 1
	}

	if cap(p.slots) >= capacity {
		p.slots = p.slots[:capacity]
	} else {
		grown := make([]slot, capacity)
		// Generations carry over so handles from before the resize stay stale
		old := p.slots[:cap(p.slots)]
		for i := range old {
			grown[i].gen = old[i].gen
		}
		p.slots = grown
		p.free = make([]int32, 0, capacity)
		p.order = make([]Handle, 0, capacity)
	}

	p.free = p.free[:0]
	p.order = p.order[:0]
	for i := capacity - 1; i >= 0; i-- {
		s := &p.slots[i]
		s.live = false
		s.p = Platform{}
		s.gen++ // invalidates handles from the previous run
		p.free = append(p.free, int32(i))
	}
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return len(p.slots)
}

// Len returns the number of live platforms.
func (p *Pool) Len() int {
	return len(p.order)
}

// Spawn stores a platform and returns its handle.
// Returns false when the pool is full.
func (p *Pool) Spawn(pl Platform) (Handle, bool) {
	if len(p.free) == 0 {
		return Handle{}, false
	}

	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	s := &p.slots[idx]
	s.p = pl
	s.live = true

	h := Handle{index: idx, gen: s.gen}
	p.order = append(p.order, h)
	return h, true
}

// Get returns the platform for a live handle.
func (p *Pool) Get(h Handle) (Platform, bool) {
	s, ok := p.lookup(h)
	if !ok {
		return Platform{}, false
	}
	return s.p, true
}

// Remove releases the handle's slot. Removing from an empty pool or with a
// stale handle is a no-op that returns false.
func (p *Pool) Remove(h Handle) bool {
	s, ok := p.lookup(h)
	if !ok {
		return false
	}

	i := p.position(s.p.Seq)
	if i >= len(p.order) || p.order[i] != h {
		return false
	}
	copy(p.order[i:], p.order[i+1:])
	p.order = p.order[:len(p.order)-1]

	s.live = false
	s.p = Platform{}
	s.gen++
	p.free = append(p.free, h.index)
	return true
}

// Oldest returns the earliest spawned live platform, which is also the lowest.
func (p *Pool) Oldest() (Handle, Platform, bool) {
	if len(p.order) == 0 {
		return Handle{}, Platform{}, false
	}
	h := p.order[0]
	return h, p.slots[h.index].p, true
}

// Newest returns the latest spawned live platform, which is also the highest.
func (p *Pool) Newest() (Handle, Platform, bool) {
	if len(p.order) == 0 {
		return Handle{}, Platform{}, false
	}
	h := p.order[len(p.order)-1]
	return h, p.slots[h.index].p, true
}

// Each calls fn for every live platform from lowest to highest.
// fn may modify the platform in place but must not change Y or Seq.
func (p *Pool) Each(fn func(h Handle, pl *Platform)) {
	for _, h := range p.order {
		fn(h, &p.slots[h.index].p)
	}
}

// Band calls fn for every live platform whose top lies in [lo, hi], lowest
// first, until fn returns false. Cost is O(log n) plus the band size.
func (p *Pool) Band(lo, hi float64, fn func(h Handle, pl Platform) bool) {
	if lo > hi {
		return
	}

	// order has decreasing Y: find the first entry at or above hi
	start := sort.Search(len(p.order), func(i int) bool {
		return p.slots[p.order[i].index].p.Y <= hi
	})

	for i := start; i < len(p.order); i++ {
		h := p.order[i]
		pl := p.slots[h.index].p
		if pl.Y < lo {
			return
		}
		if !fn(h, pl) {
			return
		}
	}
}

func (p *Pool) lookup(h Handle) (*slot, bool) {
	if h.index < 0 || int(h.index) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return s, true
}

// position returns the index in order of the platform with the given Seq.
func (p *Pool) position(seq uint64) int {
	return sort.Search(len(p.order), func(i int) bool {
		return p.slots[p.order[i].index].p.Seq >= seq
	})
}
