package strindex

import (
	"bytes"
	"sort"
	"strings"
)

// Reference implementations the fast paths are checked against.

func naiveBorders(s []byte) []int {
	pi := make([]int, len(s))
	for i := range s {
		for k := i; k > 0; k-- {
			if bytes.Equal(s[:k], s[i+1-k:i+1]) {
				pi[i] = k
				break
			}
		}
	}
	return pi
}

func naiveZ(s []byte) []int {
	z := make([]int, len(s))
	for i := 1; i < len(s); i++ {
		z[i] = commonPrefix(s, s[i:])
	}
	return z
}

func naiveOccurrences(text, pattern []byte) []int {
	var out []int
	for i := 0; i+len(pattern) <= len(text); i++ {
		if bytes.Equal(text[i:i+len(pattern)], pattern) {
			out = append(out, i)
		}
	}
	return out
}

func naiveSuffixArray(s []byte) []int {
	sa := make([]int, len(s))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(a, b int) bool {
		return bytes.Compare(s[sa[a]:], s[sa[b]:]) < 0
	})
	return sa
}

func naiveDistinctSubstrings(s []byte) int64 {
	seen := make(map[string]struct{})
	for i := range s {
		for j := i + 1; j <= len(s); j++ {
			seen[string(s[i:j])] = struct{}{}
		}
	}
	return int64(len(seen))
}

func naiveBestRefrain(s []byte) int {
	best := 0
	for i := range s {
		for j := i + 1; j <= len(s); j++ {
			if score := (j - i) * len(naiveOccurrences(s, s[i:j])); score > best {
				best = score
			}
		}
	}
	return best
}

// allStrings returns every string over alphabet with length in [1, maxLen],
// shorter ones first and each length in lexicographic order.
func allStrings(alphabet string, maxLen int) []string {
	var out []string
	level := []string{""}
	for l := 1; l <= maxLen; l++ {
		var next []string
		for _, prefix := range level {
			for _, c := range alphabet {
				next = append(next, prefix+string(c))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

func rotate(s string, k int) string {
	return s[k:] + s[:k]
}

func naiveDistinctRotations(s string) []string {
	set := make(map[string]struct{})
	for k := range s {
		set[rotate(s, k)] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func naiveMismatchOccurrences(text, pattern string) []int {
	var out []int
	for s := 0; s+len(pattern) <= len(text); s++ {
		diff := 0
		for i := range pattern {
			if text[s+i] != pattern[i] {
				diff++
			}
		}
		if diff <= 1 {
			out = append(out, s)
		}
	}
	return out
}

func naiveRotationCount(text, pattern string) int {
	count := 0
	doubled := pattern + pattern
	for s := 0; s+len(pattern) <= len(text); s++ {
		if strings.Contains(doubled, text[s:s+len(pattern)]) {
			count++
		}
	}
	return count
}

func naiveSuffixMatches(text, pattern []byte) []int {
	out := make([]int, len(text))
	for i := range text {
		for k := min(len(pattern), i+1); k > 0; k-- {
			if bytes.Equal(text[i+1-k:i+1], pattern[len(pattern)-k:]) {
				out[i] = k
				break
			}
		}
	}
	return out
}

func naiveSplitOccurrences(text, pattern []byte) int {
	m := len(pattern)
	count := 0
	for t := range text {
		p := 0
		for k := min(m, t+1); k > 0; k-- {
			if bytes.Equal(text[t+1-k:t+1], pattern[:k]) {
				p = k
				break
			}
		}
		if p == m {
			count++
			continue
		}
		if t-p < 0 {
			continue
		}
		if naiveSuffixMatches(text, pattern)[t-p]+p >= m {
			count++
		}
	}
	return count
}
