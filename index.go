package strindex

import (
	"slices"
	"sort"

	"github.com/viniciusth/rmq"
)

type IndexBuilder[S Symbol] struct {
	seq    []S
	useLCP bool
}

func NewIndexBuilder[S Symbol](seq []S) *IndexBuilder[S] {
	return &IndexBuilder[S]{
		seq:    seq,
		useLCP: true,
	}
}

// Skips the LCP array and its RMQ, this makes Lookup O(|P| * log(|S|)) instead of O(|P| + log(|S|)).
// Saves O(|S|) memory.
// Trade-off: LCPOf, LongestRepeated and DistinctSubstringCount fall back to direct comparison.
func (b *IndexBuilder[S]) SkipLCP() *IndexBuilder[S] {
	b.useLCP = false
	return b
}

func (b *IndexBuilder[S]) Build() (*Index[S], error) {
	if len(b.seq) == 0 {
		return nil, ErrEmptySequence
	}

	seq := slices.Clone(b.seq)
	sa, err := BuildSuffixArray(seq, false)
	if err != nil {
		return nil, err
	}
	rank, err := inverse(sa, len(seq))
	if err != nil {
		return nil, err
	}

	var lcp []int
	var lcpRMQ *rmq.RMQHybridNaive[int]
	if b.useLCP && len(seq) > 1 {
		lcp = kasai(seq, sa, rank)
		lcpRMQ = rmq.NewRMQHybridNaive(lcp)
	}
	return &Index[S]{
		seq:         seq,
		suffixArray: sa,
		rank:        rank,
		lcp:         lcp,
		lcpRMQ:      lcpRMQ,
	}, nil
}

// Index is a suffix array over an owned copy of a sequence, with the inverse
// permutation, the LCP array and a range-minimum structure over it. It is
// read-only once built and safe for concurrent queries.
type Index[S Symbol] struct {
	seq         []S
	suffixArray []int
	rank        []int
	lcp         []int
	lcpRMQ      *rmq.RMQHybridNaive[int]
}

func (x *Index[S]) Len() int {
	return len(x.seq)
}

func (x *Index[S]) SuffixArray() []int {
	return slices.Clone(x.suffixArray)
}

// LCP returns a copy of the LCP array, or nil if it was skipped.
func (x *Index[S]) LCP() []int {
	return slices.Clone(x.lcp)
}

// Lookup returns the ascending start offsets of every occurrence of pattern.
func (x *Index[S]) Lookup(pattern []S) []int {
	l, r := x.findBoundaries(pattern)
	if l == -1 {
		return nil
	}
	offsets := slices.Clone(x.suffixArray[l : r+1])
	slices.Sort(offsets)
	return offsets
}

// Count returns the number of occurrences of pattern.
func (x *Index[S]) Count(pattern []S) int {
	l, r := x.findBoundaries(pattern)
	if l == -1 {
		return 0
	}
	return r - l + 1
}

// lcpRange is the longest common prefix of the suffixes at suffix array
// positions a < b.
func (x *Index[S]) lcpRange(a, b int) int {
	return x.lcp[x.lcpRMQ.Query(a, b-1)]
}

// LCPOf returns the longest common prefix of the suffixes starting at text
// offsets i and j. It panics if either offset is out of range.
func (x *Index[S]) LCPOf(i, j int) int {
	n := len(x.seq)
	if i < 0 || i >= n {
		outOfRange("LCPOf", i, n)
	}
	if j < 0 || j >= n {
		outOfRange("LCPOf", j, n)
	}
	if i == j {
		return n - i
	}
	if x.lcp == nil {
		return commonPrefix(x.seq[i:], x.seq[j:])
	}
	a, b := x.rank[i], x.rank[j]
	return x.lcpRange(min(a, b), max(a, b))
}

// LongestRepeated returns the longest substring occurring at least twice, as
// a start offset and a length. The length is 0 if no symbol repeats.
func (x *Index[S]) LongestRepeated() (start, length int) {
	for i := 0; i+1 < len(x.suffixArray); i++ {
		h := x.adjacentLCP(i)
		if h > length {
			start, length = x.suffixArray[i], h
		}
	}
	return start, length
}

// DistinctSubstringCount returns the number of distinct non-empty
// substrings: every suffix contributes its length minus the prefix it shares
// with its predecessor in suffix order.
func (x *Index[S]) DistinctSubstringCount() int64 {
	n := int64(len(x.seq))
	total := n * (n + 1) / 2
	for i := 0; i+1 < len(x.suffixArray); i++ {
		total -= int64(x.adjacentLCP(i))
	}
	return total
}

func (x *Index[S]) adjacentLCP(i int) int {
	if x.lcp != nil {
		return x.lcp[i]
	}
	return commonPrefix(x.seq[x.suffixArray[i]:], x.seq[x.suffixArray[i+1]:])
}

func commonPrefix[S Symbol](a, b []S) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// findBoundaries returns the inclusive suffix array range [l, r] of the
// suffixes that start with pattern, or (-1, -1).
func (x *Index[S]) findBoundaries(pattern []S) (int, int) {
	str, suffixArray := x.seq, x.suffixArray
	n := len(suffixArray)
	if len(pattern) == 0 {
		return 0, n - 1
	}

	// best is the length of the common prefix of pattern and the suffix at
	// suffix array position bestIdx.
	bestIdx, best := -1, 0

	// expand compares pattern with the suffix at suffix array position i,
	// knowing they agree on the first best symbols, and reports whether
	// pattern <= suffix (up to the pattern's length).
	expand := func(i int) bool {
		p := suffixArray[i]
		for best < len(pattern) && p+best < len(str) && pattern[best] == str[p+best] {
			best++
		}
		bestIdx = i
		if best == len(pattern) {
			return true
		} else if p+best == len(str) {
			return false
		}
		return pattern[best] < str[p+best]
	}

	// find first index where pattern <= suffix
	l := sort.Search(n, func(i int) bool {
		if x.lcp != nil {
			if bestIdx == -1 {
				best = 0
				return expand(i)
			}
			if bestIdx == i {
				return best == len(pattern) || expand(i)
			}
			lcpLen := x.lcpRange(min(bestIdx, i), max(bestIdx, i))
			if lcpLen < best {
				// the suffix at i leaves the group sharing best symbols with
				// pattern on the same side as it sits relative to bestIdx.
				return i > bestIdx
			}
			return expand(i)
		}

		// naive compare as we dont have lcp
		p := suffixArray[i]
		return slices.Compare(pattern, str[p:min(len(str), p+len(pattern))]) <= 0
	})

	if l == n || commonPrefix(pattern, str[suffixArray[l]:]) < len(pattern) {
		return -1, -1
	}

	// last index where pattern is a prefix
	// we have T T T F F F, so search for the first F and step back.
	r := sort.Search(n-l, func(i int) bool {
		if i == 0 {
			return false
		}
		if x.lcp != nil {
			return x.lcpRange(l, l+i) < len(pattern)
		}
		return commonPrefix(pattern, str[suffixArray[l+i]:]) < len(pattern)
	})

	return l, l + r - 1
}
