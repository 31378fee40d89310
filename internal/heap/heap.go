// Package heap implements a fixed-capacity indexed binary heap.
// Every element remembers its own slot, which gives O(1) membership tests
// and in-place priority updates (decrease-key) without searching the array.
package heap

import "errors"

var (
	// ErrFull is returned by Insert when every slot of the backing array is occupied.
	ErrFull = errors.New("heap: capacity exceeded")
	// ErrEmpty is returned by ExtractBest on an empty heap.
	ErrEmpty = errors.New("heap: empty")
)

// Item is the capability set required from heap elements.
// Less reports whether the receiver must be extracted before other.
// The slot index belongs to the heap; callers must not modify it
// except to reset it to -1 before first insertion.
type Item[T any] interface {
	comparable
	Less(other T) bool
	HeapIndex() int
	SetHeapIndex(i int)
}

// Heap is a binary heap whose backing array is allocated once.
// Not safe for concurrent use.
type Heap[T Item[T]] struct {
	items []T
	count int
}

// New creates a heap able to hold up to capacity live elements.
func New[T Item[T]](capacity int) *Heap[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Heap[T]{items: make([]T, capacity)}
}

// Count returns the number of live elements.
func (h *Heap[T]) Count() int {
	return h.count
}

// Cap returns the configured maximum number of live elements.
func (h *Heap[T]) Cap() int {
	return len(h.items)
}

// Insert adds item and sifts it toward the root.
func (h *Heap[T]) Insert(item T) error {
	if h.count == len(h.items) {
		return ErrFull
	}
	item.SetHeapIndex(h.count)
	h.items[h.count] = item
	h.count++
	h.up(item)
	return nil
}

// ExtractBest removes and returns the highest priority element.
func (h *Heap[T]) ExtractBest() (T, error) {
	var zero T
	if h.count == 0 {
		return zero, ErrEmpty
	}

	best := h.items[0]
	h.count--
	last := h.items[h.count]
	h.items[h.count] = zero
	best.SetHeapIndex(-1)

	if h.count > 0 {
		h.items[0] = last
		last.SetHeapIndex(0)
		h.down(last)
	}
	return best, nil
}

// UpdateItem restores order after item's priority was improved externally.
// Only upward movement is performed: priorities are never worsened in place.
func (h *Heap[T]) UpdateItem(item T) {
	if !h.Contains(item) {
		return
	}
	h.up(item)
}

// Contains reports whether item is live in the heap.
// Identity is checked against the slot, so a stale or default index never
// matches an unrelated element.
func (h *Heap[T]) Contains(item T) bool {
	i := item.HeapIndex()
	return i >= 0 && i < h.count && h.items[i] == item
}

func (h *Heap[T]) up(item T) {
	for {
		i := item.HeapIndex()
		if i == 0 {
			return
		}
		parent := h.items[(i-1)/2]
		if !item.Less(parent) {
			return
		}
		h.swap(item, parent)
	}
}

func (h *Heap[T]) down(item T) {
	for {
		i := item.HeapIndex()
		left := 2*i + 1
		if left >= h.count {
			return
		}

		child := h.items[left]
		if right := left + 1; right < h.count && h.items[right].Less(child) {
			child = h.items[right]
		}

		if !child.Less(item) {
			return
		}
		h.swap(item, child)
	}
}

func (h *Heap[T]) swap(a, b T) {
	ia, ib := a.HeapIndex(), b.HeapIndex()
	h.items[ia], h.items[ib] = b, a
	a.SetHeapIndex(ib)
	b.SetHeapIndex(ia)
}
