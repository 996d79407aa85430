package strindex

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBorders(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"a", []int{0}},
		{"aaaa", []int{0, 1, 2, 3}},
		{"abab", []int{0, 0, 1, 2}},
		{"aabaaab", []int{0, 1, 0, 1, 2, 2, 3}},
		{"abacaba", []int{0, 0, 1, 0, 1, 2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ComputeBorders([]byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ComputeBorders([]byte{})
	assert.ErrorIs(t, err, ErrEmptySequence)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBordersAreMaximal(t *testing.T) {
	for _, s := range allStrings("abc", 7) {
		got, err := ComputeBorders([]byte(s))
		require.NoError(t, err)
		require.Equal(t, naiveBorders([]byte(s)), got, s)
	}
}

func TestBordersOfIntegers(t *testing.T) {
	got, err := ComputeBorders([]uint32{7, 1 << 30, 7, 1 << 30, 7})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 2, 3}, got)
}

func TestFindOccurrences(t *testing.T) {
	tests := []struct {
		text, pattern string
		want          []int
	}{
		{"abab", "ab", []int{0, 2}},
		{"aaaaa", "aa", []int{0, 1, 2, 3}},
		{"abc", "d", nil},
		{"ab", "abc", nil},
		{"", "a", nil},
		{"abcabc", "abc", []int{0, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.text+"/"+tc.pattern, func(t *testing.T) {
			got, err := FindOccurrences([]byte(tc.text), []byte(tc.pattern))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := FindOccurrences([]byte("abc"), []byte{})
	assert.ErrorIs(t, err, ErrEmptySequence)
}

// A symbol value that would collide with a fixed separator must not create
// matches across the pattern/text boundary.
func TestFindOccurrencesNoReservedSeparator(t *testing.T) {
	text := []byte{'#', 'a', '#'}
	pattern := []byte{'a', '#'}
	got, err := FindOccurrences(text, pattern)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)

	got, err = FindOccurrences([]int{-1, 0, -1, 0}, []int{-1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, got)
}

func TestMergeWithMaxOverlap(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{"single", []string{"abc"}, "abc"},
		{"overlap", []string{"abcab", "cabd"}, "abcabd"},
		{"contained", []string{"abcd", "cd"}, "abcd"},
		{"none", []string{"abc", "def"}, "abcdef"},
		{"longer next", []string{"ab", "abab"}, "abab"},
		{"chain", []string{"sample", "please", "ease", "in", "out"}, "sampleaseinout"},
		{"empty words", []string{"", "ab", "", "bc"}, "abc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			words := make([][]byte, len(tc.words))
			for i, w := range tc.words {
				words[i] = []byte(w)
			}
			got, err := MergeWithMaxOverlap(words)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}

	_, err := MergeWithMaxOverlap[byte](nil)
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestMergeDoesNotAliasInput(t *testing.T) {
	first := make([]byte, 2, 16)
	copy(first, "ab")
	_, err := MergeWithMaxOverlap([][]byte{first, []byte("cd")})
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), first)
	assert.Equal(t, byte(0), first[:3][2])
}

func TestDecomposeIntoPrefixes(t *testing.T) {
	tests := []struct {
		text, word string
		want       []int
		ok         bool
	}{
		{"abacaba", "abaabacab", []int{0, 3}, true},
		{"abacaba", "abaab", []int{0, 3}, true},
		{"abc", "abcabc", []int{0, 3}, true},
		{"abc", "aaa", []int{0, 1, 2}, true},
		{"abc", "abd", nil, false},
		{"abc", "bc", nil, false},
		{"", "a", nil, false},
		{"a", "", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.text+"/"+tc.word, func(t *testing.T) {
			got, ok := DecomposeIntoPrefixes([]byte(tc.text), []byte(tc.word))
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecomposePiecesArePrefixes(t *testing.T) {
	text := []byte("abab")
	for _, w := range allStrings("ab", 6) {
		word := []byte(w)
		cuts, ok := DecomposeIntoPrefixes(text, word)
		require.Equal(t, canDecompose(text, word), ok, w)
		if !ok {
			continue
		}
		require.Equal(t, 0, cuts[0])
		for i, c := range cuts {
			end := len(word)
			if i+1 < len(cuts) {
				end = cuts[i+1]
			}
			require.Less(t, c, end)
			assert.True(t, bytes.HasPrefix(text, word[c:end]), "%s: piece %q", w, word[c:end])
		}
	}
}

// canDecompose is the quadratic dynamic program over split points.
func canDecompose(text, word []byte) bool {
	reach := make([]bool, len(word)+1)
	reach[0] = true
	for i := 0; i < len(word); i++ {
		if !reach[i] {
			continue
		}
		for j := i + 1; j <= len(word) && bytes.HasPrefix(text, word[i:j]); j++ {
			reach[j] = true
		}
	}
	return reach[len(word)]
}

func TestPeriod(t *testing.T) {
	p, err := Period([]byte("abcabcab"))
	require.NoError(t, err)
	assert.Equal(t, 3, p)

	p, err = Period([]byte("abcd"))
	require.NoError(t, err)
	assert.Equal(t, 4, p)
}

func TestReconstructMinimalString(t *testing.T) {
	got, err := ReconstructMinimalString([]int{0, 0, 1, 2, 3}, LowercaseLatin)
	require.NoError(t, err)
	assert.Equal(t, "ababa", string(got))

	got, err = ReconstructMinimalString([]int{0, 1, 0, 1, 2}, LowercaseLatin)
	require.NoError(t, err)
	assert.Equal(t, "aabaa", string(got))
}

func TestReconstructMinimalStringErrors(t *testing.T) {
	_, err := ReconstructMinimalString(nil, LowercaseLatin)
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = ReconstructMinimalString([]int{1}, LowercaseLatin)
	assert.ErrorIs(t, err, ErrInvalidBorders)

	_, err = ReconstructMinimalString([]int{0, 2}, LowercaseLatin)
	assert.ErrorIs(t, err, ErrInvalidBorders)

	// a border can grow by at most one per position
	_, err = ReconstructMinimalString([]int{0, 0, 2}, LowercaseLatin)
	assert.ErrorIs(t, err, ErrUnsatisfiable)

	// "aba" then a position that must differ from both 'a' and 'b'
	_, err = ReconstructMinimalString([]int{0, 0, 1, 0}, Alphabet{First: 'a', Size: 2})
	assert.ErrorIs(t, err, ErrUnsatisfiable)

	_, err = ReconstructMinimalString([]int{0}, Alphabet{First: 250, Size: 26})
	assert.ErrorIs(t, err, ErrInvalidAlphabet)
}

// Every border array of a short string over {a,b,c} must reconstruct to the
// smallest string (in length-then-lexicographic enumeration order) with that
// border array. Up to length 6 no position is forced away from more than two
// symbols, so the answer never needs a fourth one.
func TestReconstructMatchesExhaustiveSearch(t *testing.T) {
	smallest := make(map[string]string)
	for _, s := range allStrings("abc", 6) {
		key := bordersKey(naiveBorders([]byte(s)))
		if _, ok := smallest[key]; !ok {
			smallest[key] = s
		}
	}

	for _, want := range smallest {
		pi := naiveBorders([]byte(want))
		got, err := ReconstructMinimalString(pi, LowercaseLatin)
		require.NoError(t, err, want)
		require.Equal(t, want, string(got), "borders %v", pi)
	}
}

func bordersKey(pi []int) string {
	b := make([]byte, len(pi))
	for i, v := range pi {
		b[i] = byte('0' + v)
	}
	return string(b)
}

func FuzzFindOccurrencesDuality(f *testing.F) {
	f.Add([]byte("abababab"), []byte("aba"))
	f.Add([]byte("mississippi"), []byte("ssi"))

	f.Fuzz(func(t *testing.T, text, pattern []byte) {
		if len(pattern) == 0 || len(text) > 2000 || len(pattern) > 50 {
			return
		}
		kmp, err := FindOccurrences(text, pattern)
		if err != nil {
			t.Fatal(err)
		}
		z, err := FindOccurrencesZ(text, pattern)
		if err != nil {
			t.Fatal(err)
		}
		naive := naiveOccurrences(text, pattern)
		if !equalInts(kmp, naive) || !equalInts(z, naive) {
			t.Errorf("kmp %v, z %v, naive %v", kmp, z, naive)
		}
	})
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
