package strindex

import (
	"slices"

	"github.com/pkg/errors"
)

// Knuth-Morris-Pratt prefix function over an abstract sequence of length n.
// eq(i, j) reports whether positions i and j hold the same symbol.
func borders(n int, eq func(i, j int) bool) []int {
	pi := make([]int, n)
	for i := 1; i < n; i++ {
		k := pi[i-1]
		for k > 0 && !eq(i, k) {
			k = pi[k-1]
		}
		if eq(i, k) {
			k++
		}
		pi[i] = k
	}
	return pi
}

// ComputeBorders returns the prefix function of seq: for every i, the length
// of the longest proper border of seq[:i+1].
func ComputeBorders[S Symbol](seq []S) ([]int, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	return borders(len(seq), func(i, j int) bool { return seq[i] == seq[j] }), nil
}

func joinedBorders[S Symbol](left, right []S) []int {
	j := joined[S]{left: left, right: right}
	return borders(j.len(), j.equal)
}

// FindOccurrences returns the start offsets of every (possibly overlapping)
// occurrence of pattern in text, in ascending order.
func FindOccurrences[S Symbol](text, pattern []S) ([]int, error) {
	if len(pattern) == 0 {
		return nil, errors.Wrap(ErrEmptySequence, "pattern")
	}
	if len(text) < len(pattern) {
		return nil, nil
	}

	m := len(pattern)
	pi := joinedBorders(pattern, text)
	var offsets []int
	for i := m + 1; i < len(pi); i++ {
		if pi[i] == m {
			offsets = append(offsets, i-2*m)
		}
	}
	return offsets, nil
}

// MergeWithMaxOverlap concatenates words left to right, dropping from every
// word the longest prefix that is already a suffix of the accumulated result.
func MergeWithMaxOverlap[S Symbol](words [][]S) ([]S, error) {
	if len(words) == 0 {
		return nil, errors.Wrap(ErrEmptySequence, "no words to merge")
	}

	merged := slices.Clone(words[0])
	for _, word := range words[1:] {
		if len(word) == 0 {
			continue
		}
		tail := merged[len(merged)-min(len(merged), len(word)):]
		overlap := 0
		if len(tail) > 0 {
			pi := joinedBorders(word, tail)
			overlap = pi[len(pi)-1]
		}
		merged = append(merged, word[overlap:]...)
	}
	return merged, nil
}

// DecomposeIntoPrefixes splits word into pieces that are all prefixes of
// text. It returns the ascending start offsets of the pieces (the first is
// always 0), or false when no such split exists.
//
// Pieces are peeled from the end of word, each time taking the longest
// prefix of text that ends there. Any prefix of a prefix of text is itself a
// prefix of text, so the greedy choice never rules out a valid split.
func DecomposeIntoPrefixes[S Symbol](text, word []S) ([]int, bool) {
	if len(text) == 0 || len(word) == 0 {
		return nil, false
	}

	pi := joinedBorders(text, word)
	wordPi := pi[len(text)+1:]

	var cuts []int
	for end := len(word); end > 0; {
		k := wordPi[end-1]
		if k == 0 {
			return nil, false
		}
		end -= k
		cuts = append(cuts, end)
	}
	slices.Reverse(cuts)
	return cuts, true
}

// Period returns the length of the smallest period of seq.
func Period[S Symbol](seq []S) (int, error) {
	pi, err := ComputeBorders(seq)
	if err != nil {
		return 0, err
	}
	return len(seq) - pi[len(pi)-1], nil
}

func validateBorders(pi []int) error {
	if len(pi) == 0 {
		return ErrEmptySequence
	}
	for i, b := range pi {
		if b < 0 || b > i {
			return errors.Wrapf(ErrInvalidBorders, "border %d at position %d", b, i)
		}
	}
	return nil
}

// ReconstructMinimalString returns the lexicographically smallest string over
// alphabet whose prefix function is pi.
//
// A position with a positive border copies the symbol the border points at.
// A position with border 0 takes the smallest symbol that does not extend
// any border of the preceding prefix. ErrUnsatisfiable is returned when the
// alphabet runs out or pi is not the prefix function of any string.
func ReconstructMinimalString(pi []int, alphabet Alphabet) ([]byte, error) {
	if err := validateBorders(pi); err != nil {
		return nil, err
	}
	if !alphabet.fitsInByte() {
		return nil, errors.Wrapf(ErrInvalidAlphabet, "first=%d size=%d", alphabet.First, alphabet.Size)
	}

	out := make([]byte, len(pi))
	forced := make([]bool, alphabet.Size)
	for i, b := range pi {
		if b > 0 {
			out[i] = out[b-1]
			continue
		}

		clear(forced)
		for k := i; k > 0; {
			k = pi[k-1]
			if idx, ok := alphabet.Index(int(out[k])); ok {
				forced[idx] = true
			}
		}
		c := slices.Index(forced, false)
		if c < 0 {
			return nil, errors.Wrapf(ErrUnsatisfiable, "position %d: all %d symbols are forced", i, alphabet.Size)
		}
		out[i] = byte(alphabet.Symbol(c))
	}

	got, _ := ComputeBorders(out)
	if !slices.Equal(got, pi) {
		return nil, errors.Wrap(ErrUnsatisfiable, "border array is not realizable")
	}
	return out, nil
}
