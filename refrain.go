package strindex

// Refrain is a substring scored by its length times its number of
// (possibly overlapping) occurrences.
type Refrain struct {
	Score       int
	Length      int
	Start       int
	Occurrences int
}

type refrainFrame struct {
	length int
	first  int // suffix array index of the first suffix in the group
}

// FindMaximalRefrain returns the substring of seq maximizing
// length × occurrences. The whole sequence, occurring once, is the baseline;
// on equal scores the first refrain found is kept.
//
// Every group of suffixes sharing a prefix of length L is a maximal run
// sa[l..r] with all of lcp[l..r-1] ≥ L. A monotonic stack over the LCP array
// closes each run at the first smaller value and scores it L × (r-l+1).
func FindMaximalRefrain[S Symbol](seq []S) (Refrain, error) {
	sa, err := BuildSuffixArray(seq, false)
	if err != nil {
		return Refrain{}, err
	}
	lcp, err := ComputeLCP(seq, sa)
	if err != nil {
		return Refrain{}, err
	}

	n := len(seq)
	best := Refrain{Score: n, Length: n, Start: 0, Occurrences: 1}
	var stack []refrainFrame
	for i := 0; i < n; i++ {
		h := 0
		if i < n-1 {
			h = lcp[i]
		}

		first := i
		for len(stack) > 0 && stack[len(stack)-1].length > h {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			occurrences := i - top.first + 1
			if score := top.length * occurrences; score > best.Score {
				best = Refrain{
					Score:       score,
					Length:      top.length,
					Start:       sa[top.first],
					Occurrences: occurrences,
				}
			}
			first = top.first
		}
		if h > 0 && (len(stack) == 0 || stack[len(stack)-1].length < h) {
			stack = append(stack, refrainFrame{length: h, first: first})
		}
	}
	return best, nil
}
