package rotation

// Registry maps slot indices to their media handles. Slots are added as the
// render layer mounts them and are never removed until Reset.
//
// Registry is not safe for concurrent use.
type Registry struct {
	size  int
	slots map[int]Slot
}

// NewRegistry returns an empty registry accepting indices in [0, size).
func NewRegistry(size int) *Registry {
	return &Registry{size: size, slots: make(map[int]Slot, size)}
}

// Register records media for index. The first registration for an index wins;
// later calls and out-of-range indices are ignored. It reports whether the
// handle was stored.
func (r *Registry) Register(index int, m Media) bool {
	if m == nil || index < 0 || index >= r.size {
		return false
	}
	if _, exists := r.slots[index]; exists {
		return false
	}
	r.slots[index] = Slot{Index: index, Media: m}
	return true
}

// Lookup returns the media registered for index.
func (r *Registry) Lookup(index int) (Media, bool) {
	slot, ok := r.slots[index]
	if !ok {
		return nil, false
	}
	return slot.Media, true
}

// Len returns the number of registered slots.
func (r *Registry) Len() int {
	return len(r.slots)
}

// Size returns the fixed number of positions in the sequence.
func (r *Registry) Size() int {
	return r.size
}

// Reset drops every registered handle.
func (r *Registry) Reset() {
	r.slots = make(map[int]Slot, r.size)
}
