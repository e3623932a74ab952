// Package bitset implements a growable set of non-negative integers.
// It backs codepoint sets and rule index sets.
package bitset

import "math/bits"

const intSizeShift = 5 + (^uint(0) >> 32 & 1)
const intSize = 1 << intSizeShift

// Set stores items from lowItem (inclusive) to highItem (exclusive) as a bit array.
// Zero value is an empty set.
type Set struct {
	lowItem, highItem int
	chunks            []uint
}

func New(items ...int) *Set {
	result := &Set{}
	if len(items) > 0 {
		result.Add(items...)
	}
	return result
}

// Range returns a set containing all items from low to high inclusive.
func Range(low, high int) *Set {
	return New().AddRange(low, high)
}

func baseItem(item int) int {
	return item & ^(intSize - 1)
}

func (s *Set) allocate(low, high int) {
	lowItem := baseItem(low)
	highItem := baseItem(high) + intSize
	if s.chunks != nil && lowItem >= s.lowItem && highItem <= s.highItem {
		return
	}

	if s.chunks != nil {
		lowItem = min(lowItem, s.lowItem)
		highItem = max(highItem, s.highItem)
	}

	chunks := make([]uint, (highItem-lowItem)>>intSizeShift)
	if s.chunks != nil {
		copy(chunks[(s.lowItem-lowItem)>>intSizeShift:], s.chunks)
	}
	s.chunks = chunks
	s.lowItem = lowItem
	s.highItem = highItem
}

func (s *Set) chunkIndex(item int) int {
	return (item - s.lowItem) >> intSizeShift
}

func bitMask(item int) uint {
	return 1 << (uint(item) & (intSize - 1))
}

func (s *Set) Add(items ...int) *Set {
	if len(items) == 0 {
		return s
	}

	s.allocate(minMax(items))
	for _, item := range items {
		s.chunks[s.chunkIndex(item)] |= bitMask(item)
	}
	return s
}

// AddRange adds all items from low to high inclusive. Does nothing if high < low.
func (s *Set) AddRange(low, high int) *Set {
	if high < low {
		return s
	}

	s.allocate(low, high)
	for item := low; item <= high; item++ {
		s.chunks[s.chunkIndex(item)] |= bitMask(item)
	}
	return s
}

func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if s.Contains(item) {
			s.chunks[s.chunkIndex(item)] &= ^bitMask(item)
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < s.lowItem || item >= s.highItem {
		return false
	}
	return s.chunks[s.chunkIndex(item)]&bitMask(item) != 0
}

func (s *Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}
	return true
}

func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount(chunk)
	}
	return result
}

// ToSlice returns set items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	item := s.lowItem
	for _, chunk := range s.chunks {
		for chunk != 0 {
			shift := bits.TrailingZeros(chunk)
			result = append(result, item+shift)
			chunk &= chunk - 1
		}
		item += intSize
	}
	return result
}

// Ranges returns set items as ascending list of [low, high] inclusive pairs.
func (s *Set) Ranges() [][2]int {
	var result [][2]int
	for _, item := range s.ToSlice() {
		l := len(result)
		if l > 0 && result[l-1][1] == item-1 {
			result[l-1][1] = item
		} else {
			result = append(result, [2]int{item, item})
		}
	}
	return result
}

func (s *Set) Copy() *Set {
	result := &Set{lowItem: s.lowItem, highItem: s.highItem}
	if s.chunks != nil {
		result.chunks = make([]uint, len(s.chunks))
		copy(result.chunks, s.chunks)
	}
	return result
}

// Union adds all items of t to s.
func (s *Set) Union(t *Set) *Set {
	if t.IsEmpty() {
		return s
	}

	s.allocate(t.lowItem, t.highItem-1)
	offset := s.chunkIndex(t.lowItem)
	for i, chunk := range t.chunks {
		s.chunks[offset+i] |= chunk
	}
	return s
}

// Overlaps reports whether s and t have at least one common item.
func (s *Set) Overlaps(t *Set) bool {
	low := max(s.lowItem, t.lowItem)
	high := min(s.highItem, t.highItem)
	for item := low; item < high; item += intSize {
		if s.chunks[s.chunkIndex(item)]&t.chunks[t.chunkIndex(item)] != 0 {
			return true
		}
	}
	return false
}

func minMax(items []int) (low, high int) {
	low = items[0]
	high = items[0]
	for _, item := range items[1:] {
		low = min(low, item)
		high = max(high, item)
	}
	return
}
