package strindex

import (
	"slices"

	"github.com/pkg/errors"
)

// Z-function over an abstract sequence of length n. [left, right) is the
// rightmost segment known to match a prefix of the sequence.
func zArray(n int, eq func(i, j int) bool) []int {
	z := make([]int, n)
	left, right := 0, 0
	for i := 1; i < n; i++ {
		if i < right {
			z[i] = min(z[i-left], right-i)
		}
		for i+z[i] < n && eq(z[i], i+z[i]) {
			z[i]++
		}
		if i+z[i] > right {
			left, right = i, i+z[i]
		}
	}
	return z
}

// ComputeZ returns the Z-function of seq. z[0] is 0 by convention.
func ComputeZ[S Symbol](seq []S) ([]int, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	return zArray(len(seq), func(i, j int) bool { return seq[i] == seq[j] }), nil
}

func joinedZ[S Symbol](left, right []S) []int {
	j := joined[S]{left: left, right: right}
	return zArray(j.len(), j.equal)
}

// FindOccurrencesZ is FindOccurrences computed with the Z-function. Both
// always return the same offsets.
func FindOccurrencesZ[S Symbol](text, pattern []S) ([]int, error) {
	if len(pattern) == 0 {
		return nil, errors.Wrap(ErrEmptySequence, "pattern")
	}
	if len(text) < len(pattern) {
		return nil, nil
	}

	m := len(pattern)
	z := joinedZ(pattern, text)
	var offsets []int
	for i := m + 1; i < len(z); i++ {
		if z[i] == m {
			offsets = append(offsets, i-m-1)
		}
	}
	return offsets, nil
}

// LongestSuffixMatches returns, for every offset i of text, the length of
// the longest suffix of pattern that ends at text[i].
func LongestSuffixMatches[S Symbol](text, pattern []S) ([]int, error) {
	if len(pattern) == 0 {
		return nil, errors.Wrap(ErrEmptySequence, "pattern")
	}

	n, m := len(text), len(pattern)
	z := joinedZ(reversed(pattern), reversed(text))
	out := make([]int, n)
	for i := range out {
		out[i] = z[m+1+n-1-i]
	}
	return out, nil
}

// FindOccurrencesWithOneMismatch returns the ascending start offsets of the
// windows of text that differ from pattern in at most one position.
//
// A window starting at s qualifies when the longest prefix of pattern read
// forward from s and the longest suffix of pattern read backward from the
// window's last symbol together cover all but at most one position.
func FindOccurrencesWithOneMismatch[S Symbol](text, pattern []S) ([]int, error) {
	if len(pattern) == 0 {
		return nil, errors.Wrap(ErrEmptySequence, "pattern")
	}
	if len(text) < len(pattern) {
		return nil, nil
	}

	m := len(pattern)
	forward := joinedZ(pattern, text)
	backward, err := LongestSuffixMatches(text, pattern)
	if err != nil {
		return nil, err
	}

	var offsets []int
	for s := 0; s+m <= len(text); s++ {
		if forward[m+1+s]+backward[s+m-1] >= m-1 {
			offsets = append(offsets, s)
		}
	}
	return offsets, nil
}

// CountSplitOccurrences counts the end offsets t of text where pattern
// occurs split in two: with p the length of the longest prefix of pattern
// ending at t, either p == |pattern| or text[t-p] ends a suffix of pattern
// of length at least |pattern|-p.
//
// p comes from the prefix function of pattern+SEP+text, the suffix lengths
// from LongestSuffixMatches.
func CountSplitOccurrences[S Symbol](text, pattern []S) (int, error) {
	if len(pattern) == 0 {
		return 0, errors.Wrap(ErrEmptySequence, "pattern")
	}

	m := len(pattern)
	pi := joinedBorders(pattern, text)
	suffix, err := LongestSuffixMatches(text, pattern)
	if err != nil {
		return 0, err
	}

	count := 0
	for t := range text {
		p := pi[m+1+t]
		if p == m || (t-p >= 0 && suffix[t-p]+p >= m) {
			count++
		}
	}
	return count, nil
}

// BordersFromZ converts a Z-function into the prefix function of the same
// string. Every z[i] sets the borders of positions i+z[i]-1 down to i, and
// stops at the first slot an earlier (hence longer) match already filled,
// so the conversion is linear.
func BordersFromZ(z []int) ([]int, error) {
	n := len(z)
	if n == 0 {
		return nil, ErrEmptySequence
	}
	for i := 1; i < n; i++ {
		if z[i] < 0 || i+z[i] > n {
			return nil, errors.Wrapf(ErrInvalidZ, "value %d at position %d", z[i], i)
		}
	}

	pi := make([]int, n)
	for i := 1; i < n; i++ {
		for j := z[i]; j > 0; j-- {
			if pi[i+j-1] > 0 {
				break
			}
			pi[i+j-1] = j
		}
	}
	return pi, nil
}

// ReconstructMinimalStringFromZ returns the lexicographically smallest string
// over alphabet whose Z-function is z. z[0] is ignored.
func ReconstructMinimalStringFromZ(z []int, alphabet Alphabet) ([]byte, error) {
	pi, err := BordersFromZ(z)
	if err != nil {
		return nil, err
	}
	out, err := ReconstructMinimalString(pi, alphabet)
	if err != nil {
		return nil, err
	}

	got, _ := ComputeZ(out)
	if !slices.Equal(got[1:], z[1:]) {
		return nil, errors.Wrap(ErrUnsatisfiable, "z array is not realizable")
	}
	return out, nil
}
