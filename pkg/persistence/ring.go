package persistence

import "github.com/braunma/rackfloor/pkg/models"

// Ring retains the most recent rack snapshots up to a fixed capacity
type Ring struct {
	slots [][]*models.Rack
	next  int
	size  int
}

// NewRing creates a ring holding at most capacity snapshots
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{slots: make([][]*models.Rack, capacity)}
}

// Push stores a deep copy of racks, evicting the oldest snapshot when full
func (r *Ring) Push(racks []*models.Rack) {
	snap := make([]*models.Rack, len(racks))
	for i, rack := range racks {
		snap[i] = rack.Clone()
	}
	r.slots[r.next] = snap
	r.next = (r.next + 1) % len(r.slots)
	if r.size < len(r.slots) {
		r.size++
	}
}

// Latest returns a copy of the newest snapshot
func (r *Ring) Latest() ([]*models.Rack, bool) {
	if r.size == 0 {
		return nil, false
	}
	idx := (r.next - 1 + len(r.slots)) % len(r.slots)
	return cloneAll(r.slots[idx]), true
}

// Snapshots returns copies of all retained snapshots, newest first
func (r *Ring) Snapshots() [][]*models.Rack {
	out := make([][]*models.Rack, 0, r.size)
	for i := 1; i <= r.size; i++ {
		idx := (r.next - i + len(r.slots)) % len(r.slots)
		out = append(out, cloneAll(r.slots[idx]))
	}
	return out
}

// Len returns the number of retained snapshots
func (r *Ring) Len() int {
	return r.size
}

// Cap returns the ring capacity
func (r *Ring) Cap() int {
	return len(r.slots)
}

func cloneAll(racks []*models.Rack) []*models.Rack {
	out := make([]*models.Rack, len(racks))
	for i, rack := range racks {
		out[i] = rack.Clone()
	}
	return out
}
