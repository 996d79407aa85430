package strindex

import (
	"github.com/pkg/errors"
)

// ComputeLCP builds the LCP array of seq with Kasai's algorithm in O(n):
// lcp[i] is the longest common prefix of the suffixes at sa[i] and sa[i+1].
//
// Suffixes are visited in text order. If the suffix at i shares h symbols
// with its successor in sa, the suffix at i+1 shares at least h-1 with its
// own successor, so h only drops by one between steps.
func ComputeLCP[S Symbol](seq []S, sa []int) ([]int, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	rank, err := inverse(sa, len(seq))
	if err != nil {
		return nil, err
	}
	return kasai(seq, sa, rank), nil
}

func kasai[S Symbol](seq []S, sa, rank []int) []int {
	n := len(sa)
	lcp := make([]int, n-1)
	h := 0
	for i := range sa {
		if rank[i]+1 == n {
			h = 0
			continue
		}
		j := sa[rank[i]+1]
		for i+h < n && j+h < n && seq[i+h] == seq[j+h] {
			h++
		}
		lcp[rank[i]] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}

// inverse returns rank = sa⁻¹ and checks that sa is a permutation of [0,n).
func inverse(sa []int, n int) ([]int, error) {
	if len(sa) != n {
		return nil, errors.Wrapf(ErrInvalidSuffixArray, "length %d, sequence length %d", len(sa), n)
	}
	rank := make([]int, n)
	seen := make([]bool, n)
	for i, p := range sa {
		if p < 0 || p >= n || seen[p] {
			return nil, errors.Wrapf(ErrInvalidSuffixArray, "entry %d at position %d", p, i)
		}
		seen[p] = true
		rank[p] = i
	}
	return rank, nil
}
