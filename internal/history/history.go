// Package history holds the bounded record of past derivative
// evaluations that the multistep extrapolation is built from.
package history

import "github.com/askeland/multistep/internal/ode"

type Entry struct {
	Time  float64
	Deriv ode.State
}

// Buffer is a fixed-capacity ring of (time, derivative) entries ordered
// newest first. Slot storage is reused across evictions so pushing never
// allocates once the ring is warm. Entries are immutable once pushed.
type Buffer struct {
	slots []Entry
	head  int // slot index of the newest entry
	n     int
}

func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{slots: make([]Entry, capacity)}
}

func (b *Buffer) Cap() int { return len(b.slots) }

func (b *Buffer) Len() int { return b.n }

// Push inserts a new newest entry, evicting the oldest when full. The
// derivative is copied into the slot's buffer.
func (b *Buffer) Push(t float64, deriv ode.State) {
	b.head = (b.head - 1 + len(b.slots)) % len(b.slots)
	slot := &b.slots[b.head]
	slot.Time = t
	if cap(slot.Deriv) < len(deriv) {
		slot.Deriv = make(ode.State, len(deriv))
	}
	slot.Deriv = slot.Deriv[:len(deriv)]
	copy(slot.Deriv, deriv)
	if b.n < len(b.slots) {
		b.n++
	}
}

// Time reports the time of the i-th entry, newest first.
func (b *Buffer) Time(i int) float64 {
	return b.slots[(b.head+i)%len(b.slots)].Time
}

// Deriv returns the derivative of the i-th entry, newest first. Callers
// must not mutate it.
func (b *Buffer) Deriv(i int) ode.State {
	return b.slots[(b.head+i)%len(b.slots)].Deriv
}

// TruncateTo drops all but the n newest entries.
func (b *Buffer) TruncateTo(n int) {
	if n < 0 {
		n = 0
	}
	if n < b.n {
		b.n = n
	}
}

func (b *Buffer) Clear() {
	b.n = 0
}
