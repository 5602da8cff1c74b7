package containers

import "sort"

// SortedList keeps elements ordered by a caller-supplied less function.
// Insertion is stable: an element whose key equals existing keys is placed
// after them, so equal-keyed elements coexist in arrival order.
type SortedList[T any] struct {
	items []T
	less  func(a, b T) bool
}

// Create a new SortedList ordered by less.
func NewSortedList[T any](less func(a, b T) bool) *SortedList[T] {
	return &SortedList[T]{
		less: less,
	}
}

// Add inserts an element at its sorted position.
func (sl *SortedList[T]) Add(value T) {
	idx := sort.Search(len(sl.items), func(i int) bool {
		return sl.less(value, sl.items[i])
	})
	sl.items = append(sl.items, value)
	copy(sl.items[idx+1:], sl.items[idx:])
	sl.items[idx] = value
}

// Values returns the backing slice in sorted order. Callers must not
// mutate it while iterating.
func (sl *SortedList[T]) Values() []T {
	return sl.items
}

func (sl *SortedList[T]) Len() int {
	return len(sl.items)
}

// Clear empties the list, keeping the allocation for reuse.
func (sl *SortedList[T]) Clear() {
	sl.items = sl.items[:0]
}
