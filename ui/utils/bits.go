package utils

import (
	"iter"
	"math/bits"
)

const wordBits = 64

// StaticBitSet is a fixed-size set of bits. The model uses one bit per
// line to remember which lines must go through the shaping pass again.
type StaticBitSet struct {
	words []uint64
	size  int
}

// NewStaticBitSet creates a StaticBitSet holding size bits, all unset.
func NewStaticBitSet(size int) *StaticBitSet {
	Assert(size >= 0, "negative bit set size")
	return &StaticBitSet{
		words: make([]uint64, (size+wordBits-1)/wordBits),
		size:  size,
	}
}

// NewStaticBitSetFull creates a StaticBitSet holding size bits, all set.
func NewStaticBitSetFull(size int) *StaticBitSet {
	s := NewStaticBitSet(size)
	s.SetRange(0, size)
	return s
}

// Len returns the number of bits the set can hold.
func (s *StaticBitSet) Len() int {
	return s.size
}

// Set sets the bit at idx.
func (s *StaticBitSet) Set(idx int) {
	s.check(idx)
	s.words[idx/wordBits] |= 1 << (idx % wordBits)
}

// Unset clears the bit at idx.
func (s *StaticBitSet) Unset(idx int) {
	s.check(idx)
	s.words[idx/wordBits] &^= 1 << (idx % wordBits)
}

// IsSet reports whether the bit at idx is set.
func (s *StaticBitSet) IsSet(idx int) bool {
	s.check(idx)
	return s.words[idx/wordBits]&(1<<(idx%wordBits)) != 0
}

// SetRange sets every bit in [start, end).
func (s *StaticBitSet) SetRange(start, end int) {
	Assert(0 <= start && start <= end && end <= s.size, "bit range out of bounds")
	for idx := start; idx < end; {
		word, offset := idx/wordBits, idx%wordBits
		// Whole words are filled at once, the edges bit by bit.
		if offset == 0 && end-idx >= wordBits {
			s.words[word] = ^uint64(0)
			idx += wordBits
			continue
		}
		s.words[word] |= 1 << offset
		idx++
	}
}

// Count returns the number of set bits.
func (s *StaticBitSet) Count() int {
	total := 0
	for _, w := range s.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// Any reports whether at least one bit is set.
func (s *StaticBitSet) Any() bool {
	for _, w := range s.words {
		if w != 0 {
			return true
		}
	}
	return false
}

// Clear unsets every bit.
func (s *StaticBitSet) Clear() {
	clear(s.words)
}

// All yields the index of every set bit in ascending order.
func (s *StaticBitSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, w := range s.words {
			for w != 0 {
				tz := bits.TrailingZeros64(w)
				if !yield(i*wordBits + tz) {
					return
				}
				w &= w - 1
			}
		}
	}
}

func (s *StaticBitSet) check(idx int) {
	Assert(idx >= 0 && idx < s.size, "bit index out of bounds")
}
