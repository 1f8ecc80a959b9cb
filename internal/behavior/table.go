package behavior

// MaxActiveKeys is the number of presses an ActiveTable can track at once.
const MaxActiveKeys = 10

// Slot is one entry of an ActiveTable.
type Slot struct {
	active   bool
	position uint32
	binding  Binding
}

// Position returns the key position the slot was allocated for.
func (s *Slot) Position() uint32 {
	return s.position
}

// Binding returns the binding resolved when the slot was allocated.
func (s *Slot) Binding() Binding {
	return s.binding
}

// Active reports whether the slot is occupied.
func (s *Slot) Active() bool {
	return s.active
}

// ActiveTable maps key positions to the binding chosen at press time.
//
// It is a fixed array searched linearly. At most one occupied slot exists
// per position; the event source guarantees press/release pairing per
// position, so Allocate does not check for duplicates.
type ActiveTable struct {
	slots [MaxActiveKeys]Slot
}

// Find returns the occupied slot for position, or nil.
func (t *ActiveTable) Find(position uint32) *Slot {
	for i := range t.slots {
		if t.slots[i].active && t.slots[i].position == position {
			return &t.slots[i]
		}
	}
	return nil
}

// Allocate occupies the first free slot with position and b.
// It returns nil without changing anything when the table is full.
func (t *ActiveTable) Allocate(position uint32, b Binding) *Slot {
	for i := range t.slots {
		if !t.slots[i].active {
			t.slots[i] = Slot{active: true, position: position, binding: b}
			return &t.slots[i]
		}
	}
	return nil
}

// Release frees s. Each allocated slot must be released exactly once.
func (t *ActiveTable) Release(s *Slot) {
	s.active = false
}

// Len returns the number of occupied slots.
func (t *ActiveTable) Len() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].active {
			n++
		}
	}
	return n
}

// Cap returns the table capacity.
func (t *ActiveTable) Cap() int {
	return len(t.slots)
}
