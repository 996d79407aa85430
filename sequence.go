package strindex

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Symbol is the element type of every sequence the package indexes.
// []byte is the common case; sequences of wider integers work as well.
type Symbol interface {
	constraints.Integer
}

// Alphabet is the contiguous symbol range [First, First+Size).
type Alphabet struct {
	First int
	Size  int
}

// LowercaseLatin is 'a'..'z'.
var LowercaseLatin = Alphabet{First: 'a', Size: 26}

// Index returns the position of c inside the alphabet.
func (a Alphabet) Index(c int) (int, bool) {
	if c < a.First || c >= a.First+a.Size {
		return 0, false
	}
	return c - a.First, true
}

// Symbol returns the i-th symbol of the alphabet.
func (a Alphabet) Symbol(i int) int {
	return a.First + i
}

func (a Alphabet) fitsInByte() bool {
	return a.Size > 0 && a.First >= 0 && a.First+a.Size <= 256
}

// joined is the virtual sequence left + SEP + right. The separator slot
// never compares equal to anything, so no value of S has to be reserved
// for it.
type joined[S Symbol] struct {
	left, right []S
}

func (j joined[S]) len() int {
	return len(j.left) + 1 + len(j.right)
}

func (j joined[S]) at(i int) (S, bool) {
	switch {
	case i < len(j.left):
		return j.left[i], true
	case i == len(j.left):
		var zero S
		return zero, false
	default:
		return j.right[i-len(j.left)-1], true
	}
}

func (j joined[S]) equal(a, b int) bool {
	x, okX := j.at(a)
	y, okY := j.at(b)
	return okX && okY && x == y
}

// denseRanks maps every symbol to its rank among the distinct symbols of
// seq, so that later stages can work with small non-negative integers
// whatever the width of S. It also returns the number of distinct symbols.
func denseRanks[S Symbol](seq []S) ([]int, int) {
	distinct := slices.Clone(seq)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	ranks := make([]int, len(seq))
	for i, c := range seq {
		r, _ := slices.BinarySearch(distinct, c)
		ranks[i] = r
	}
	return ranks, len(distinct)
}

func reversed[S any](seq []S) []S {
	out := slices.Clone(seq)
	slices.Reverse(out)
	return out
}
