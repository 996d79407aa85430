package strindex

import (
	"slices"
)

// BuildSuffixArray sorts the suffixes of seq by prefix doubling.
//
// In the terminated variant a suffix that is a proper prefix of another
// sorts first. In the cyclic variant the suffixes are read with wraparound,
// so the result orders the rotations of seq; equal rotations keep ascending
// start offsets.
func BuildSuffixArray[S Symbol](seq []S, cyclic bool) ([]int, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	sa, _ := rankDoubling(seq, cyclic)
	return sa, nil
}

// rankDoubling returns the sorted order and the final rank of every
// position. After the round for length k, rank[i] orders the prefixes of
// length 2k of the suffix (or rotation) at i; equal prefixes share a rank.
// Each round is two stable counting sorts, least significant key first.
func rankDoubling[S Symbol](seq []S, cyclic bool) (sa, rank []int) {
	n := len(seq)
	rank, classes := denseRanks(seq)

	sa = make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	sa = countingSort(sa, rank, classes)

	next := make([]int, n)
	newRank := make([]int, n)
	for k := 1; classes < n && k < n; k *= 2 {
		// next[i] is the rank of the second half shifted by one; 0 is the
		// sentinel for a suffix that ends inside the first half.
		for i := range next {
			switch {
			case i+k < n:
				next[i] = rank[i+k] + 1
			case cyclic:
				next[i] = rank[(i+k)%n] + 1
			default:
				next[i] = 0
			}
		}

		sa = countingSort(sa, next, classes+1)
		sa = countingSort(sa, rank, classes)

		classes = 1
		newRank[sa[0]] = 0
		for j := 1; j < n; j++ {
			prev, cur := sa[j-1], sa[j]
			if rank[prev] != rank[cur] || next[prev] != next[cur] {
				classes++
			}
			newRank[cur] = classes - 1
		}
		rank, newRank = newRank, rank
	}
	return sa, rank
}

// countingSort stably orders positions by key, whose values lie in
// [0, buckets).
func countingSort(order, key []int, buckets int) []int {
	start := make([]int, buckets+1)
	for _, i := range order {
		start[key[i]+1]++
	}
	for b := 1; b <= buckets; b++ {
		start[b] += start[b-1]
	}

	out := make([]int, len(order))
	for _, i := range order {
		out[start[key[i]]] = i
		start[key[i]]++
	}
	return out
}

// DistinctRotations returns the start offsets of the distinct rotations of
// seq in lexicographic order. Among equal rotations only the smallest start
// offset is kept.
func DistinctRotations[S Symbol](seq []S) ([]int, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}

	sa, rank := rankDoubling(seq, true)
	distinct := []int{sa[0]}
	for j := 1; j < len(sa); j++ {
		if rank[sa[j]] != rank[sa[j-1]] {
			distinct = append(distinct, sa[j])
		}
	}
	return distinct, nil
}

// KthDistinctRotation returns the k-th (1-based) lexicographically smallest
// distinct rotation of seq, or false when there are fewer than k.
func KthDistinctRotation[S Symbol](seq []S, k int) ([]S, bool) {
	rotations, err := DistinctRotations(seq)
	if err != nil || k < 1 || k > len(rotations) {
		return nil, false
	}
	start := rotations[k-1]
	return slices.Concat(seq[start:], seq[:start]), true
}
