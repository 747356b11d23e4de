package gesture

import "fmt"

// Handle is a stable, generation-checked reference to a recognizer in the
// engine's arena. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "#nil"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type arenaSlot struct {
	gen uint32
	rec Recognizer
}

// arena owns every live recognizer. Scopes and groups refer to recognizers
// by Handle; a released slot bumps its generation so stale handles resolve
// to nothing.
type arena struct {
	slots []arenaSlot
	free  []uint32
	live  int
}

// alloc reserves a slot and returns its handle. The caller stores the
// recognizer with set before the handle escapes.
func (a *arena) alloc() Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, arenaSlot{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.live++
	return Handle{index: idx, gen: s.gen}
}

func (a *arena) set(h Handle, r Recognizer) {
	if s := a.slot(h); s != nil {
		s.rec = r
	}
}

// get resolves h. A released or never-allocated handle yields nil.
func (a *arena) get(h Handle) Recognizer {
	if s := a.slot(h); s != nil {
		return s.rec
	}
	return nil
}

// release frees the slot behind h. Releasing a stale handle is a no-op.
func (a *arena) release(h Handle) {
	s := a.slot(h)
	if s == nil {
		return
	}
	s.rec = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, h.index)
	a.live--
}

// Len returns the number of live recognizers.
func (a *arena) Len() int { return a.live }

func (a *arena) slot(h Handle) *arenaSlot {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return s
}
