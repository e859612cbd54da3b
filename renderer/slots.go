package renderer

// SlotTable maps texture handles to sampler units for the lifetime of one
// batch. Slot 0 always holds the white texture.
type SlotTable struct {
	handles   []uint32
	size      int
	overflows int
}

// NewSlotTable returns a table with size slots, slot 0 bound to white.
func NewSlotTable(size int, white uint32) *SlotTable {
	if size < 1 {
		size = 1
	}
	handles := make([]uint32, 1, size)
	handles[0] = white
	return &SlotTable{handles: handles, size: size}
}

// Lookup returns the slot already assigned to handle in this batch.
func (t *SlotTable) Lookup(handle uint32) (int, bool) {
	for i, h := range t.handles {
		if h == handle {
			return i, true
		}
	}
	return 0, false
}

func (t *SlotTable) Full() bool {
	return len(t.handles) >= t.size
}

// GetOrAssignSlot returns handle's slot, assigning the next free one if it
// has none. The table never flushes: callers check Full first. A forced
// assignment on a full table falls back to slot 0 and is counted.
func (t *SlotTable) GetOrAssignSlot(handle uint32) int {
	if slot, ok := t.Lookup(handle); ok {
		return slot
	}
	if t.Full() {
		t.overflows++
		return 0
	}
	t.handles = append(t.handles, handle)
	return len(t.handles) - 1
}

// Reset drops every assignment except the white texture.
func (t *SlotTable) Reset() {
	t.handles = t.handles[:1]
}

// Bound returns the handles by slot. The slice is only valid until the next
// mutation.
func (t *SlotTable) Bound() []uint32 {
	return t.handles
}

func (t *SlotTable) Len() int       { return len(t.handles) }
func (t *SlotTable) Size() int      { return t.size }
func (t *SlotTable) Overflows() int { return t.overflows }
