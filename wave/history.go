package wave

import (
	"iter"
	"slices"
)

// History stores one value per year, kept in chronological order.
type History[T float32 | float64 | string] struct {
	years  []int
	values []T
}

// Len returns the number of years in the history.
func (h *History[T]) Len() int { return len(h.years) }

// Append sets the value of a year.
//
// Existing value at that year is overwritten.
func (h *History[T]) Append(year int, v T) *History[T] {
	i, found := slices.BinarySearch(h.years, year)
	if found {
		h.values[i] = v
		return h
	}
	h.years = slices.Insert(h.years, i, year)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the value of year and true or zero value and false.
func (h *History[T]) Get(year int) (T, bool) {
	if i, found := slices.BinarySearch(h.years, year); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// Years returns a copy of the years in the history.
func (h *History[T]) Years() []int { return slices.Clone(h.years) }

// Values returns an iterator over all year/value pairs in chronological order.
func (h *History[T]) Values() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, y := range h.years {
			if !yield(y, h.values[i]) {
				return
			}
		}
	}
}
