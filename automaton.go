package strindex

import (
	"maps"
	"slices"

	"github.com/pkg/errors"
)

type edges[S Symbol] interface {
	get(c S) (int, bool)
	set(c S, to int)
	clone() edges[S]
}

type mapEdges[S Symbol] map[S]int

func (m mapEdges[S]) get(c S) (int, bool) {
	to, ok := m[c]
	return to, ok
}

func (m mapEdges[S]) set(c S, to int) { m[c] = to }

func (m mapEdges[S]) clone() edges[S] { return mapEdges[S](maps.Clone(m)) }

// tableEdges is a fixed-size transition table over an alphabet; -1 marks a
// missing transition.
type tableEdges[S Symbol] struct {
	first int
	to    []int
}

func newTableEdges[S Symbol](alphabet Alphabet) tableEdges[S] {
	to := make([]int, alphabet.Size)
	for i := range to {
		to[i] = -1
	}
	return tableEdges[S]{first: alphabet.First, to: to}
}

func (t tableEdges[S]) get(c S) (int, bool) {
	i := int(c) - t.first
	if i < 0 || i >= len(t.to) || t.to[i] < 0 {
		return 0, false
	}
	return t.to[i], true
}

func (t tableEdges[S]) set(c S, to int) { t.to[int(c)-t.first] = to }

func (t tableEdges[S]) clone() edges[S] {
	return tableEdges[S]{first: t.first, to: slices.Clone(t.to)}
}

type state[S Symbol] struct {
	maxLen int // longest substring in the class
	link   int // suffix link, -1 for the initial state
	next   edges[S]
}

// Automaton is the suffix automaton of the sequence fed to it so far: the
// minimal DFA accepting exactly its substrings. It grows one symbol at a
// time and is not safe for concurrent use; a clone created by Extend can
// change which state represents a substring, so queries must not overlap
// with Extend.
type Automaton[S Symbol] struct {
	states   []state[S]
	last     int
	alphabet *Alphabet
	distinct int64
}

// NewAutomaton returns an empty automaton with map-based transitions,
// accepting any symbol.
func NewAutomaton[S Symbol]() *Automaton[S] {
	a := &Automaton[S]{}
	a.states = append(a.states, state[S]{link: -1, next: a.newEdges()})
	return a
}

// NewAutomatonWithAlphabet returns an empty automaton whose states use a
// fixed transition table over alphabet. Extending it with a symbol outside
// the alphabet fails with ErrInvalidSymbol.
func NewAutomatonWithAlphabet[S Symbol](alphabet Alphabet) (*Automaton[S], error) {
	if alphabet.Size <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "alphabet size %d", alphabet.Size)
	}
	a := &Automaton[S]{alphabet: &alphabet}
	a.states = append(a.states, state[S]{link: -1, next: a.newEdges()})
	return a, nil
}

// BuildAutomaton feeds all of seq to a new map-based automaton.
func BuildAutomaton[S Symbol](seq []S) (*Automaton[S], error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	a := NewAutomaton[S]()
	for _, c := range seq {
		if err := a.Extend(c); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Automaton[S]) newEdges() edges[S] {
	if a.alphabet != nil {
		return newTableEdges[S](*a.alphabet)
	}
	return mapEdges[S]{}
}

// Extend appends c to the indexed sequence in amortized O(1).
func (a *Automaton[S]) Extend(c S) error {
	if a.alphabet != nil {
		if _, ok := a.alphabet.Index(int(c)); !ok {
			return errors.Wrapf(ErrInvalidSymbol, "symbol %d", c)
		}
	}

	cur := len(a.states)
	a.states = append(a.states, state[S]{
		maxLen: a.states[a.last].maxLen + 1,
		next:   a.newEdges(),
	})

	p := a.last
	for p != -1 {
		if _, ok := a.states[p].next.get(c); ok {
			break
		}
		a.states[p].next.set(c, cur)
		p = a.states[p].link
	}

	if p != -1 {
		q, _ := a.states[p].next.get(c)
		if a.states[p].maxLen+1 == a.states[q].maxLen {
			a.states[cur].link = q
		} else {
			clone := len(a.states)
			a.states = append(a.states, state[S]{
				maxLen: a.states[p].maxLen + 1,
				link:   a.states[q].link,
				next:   a.states[q].next.clone(),
			})
			for p != -1 {
				if to, ok := a.states[p].next.get(c); !ok || to != q {
					break
				}
				a.states[p].next.set(c, clone)
				p = a.states[p].link
			}
			a.states[q].link = clone
			a.states[cur].link = clone
		}
	}

	a.last = cur
	a.distinct += int64(a.states[cur].maxLen - a.states[a.states[cur].link].maxLen)
	return nil
}

// Len returns the number of symbols processed.
func (a *Automaton[S]) Len() int {
	return a.states[a.last].maxLen
}

// NumStates returns the number of states, the initial one included.
func (a *Automaton[S]) NumStates() int {
	return len(a.states)
}

// DistinctSubstringCount returns the number of distinct non-empty
// substrings of the sequence processed so far.
func (a *Automaton[S]) DistinctSubstringCount() int64 {
	return a.distinct
}

// Contains reports whether sub is a substring of the processed sequence.
func (a *Automaton[S]) Contains(sub []S) bool {
	v := 0
	for _, c := range sub {
		to, ok := a.states[v].next.get(c)
		if !ok {
			return false
		}
		v = to
	}
	return true
}

// MatchingLengths returns, for every offset i of text, the length of the
// longest suffix of text[:i+1] that is a substring of the processed
// sequence.
func (a *Automaton[S]) MatchingLengths(text []S) []int {
	out := make([]int, len(text))
	v, l := 0, 0
	for i, c := range text {
		for v != 0 {
			if _, ok := a.states[v].next.get(c); ok {
				break
			}
			v = a.states[v].link
			l = a.states[v].maxLen
		}
		if to, ok := a.states[v].next.get(c); ok {
			v = to
			l++
		} else {
			l = 0
		}
		out[i] = l
	}
	return out
}

// LongestCommonSubstring returns the longest sequence occurring in both a
// and b as its start offset in b and its length. The length is 0 when they
// share no symbol.
func LongestCommonSubstring[S Symbol](a, b []S) (start, length int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0
	}
	sam, _ := BuildAutomaton(a)
	for i, l := range sam.MatchingLengths(b) {
		if l > length {
			start, length = i-l+1, l
		}
	}
	return start, length
}

// CountRotationOccurrences counts the windows of text that equal some
// cyclic rotation of pattern. The rotations of pattern are exactly the
// substrings of length |pattern| of pattern+pattern[:|pattern|-1].
func CountRotationOccurrences[S Symbol](text, pattern []S) (int, error) {
	m := len(pattern)
	if m == 0 {
		return 0, errors.Wrap(ErrEmptySequence, "pattern")
	}

	sam, err := BuildAutomaton(slices.Concat(pattern, pattern[:m-1]))
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range sam.MatchingLengths(text) {
		if l >= m {
			count++
		}
	}
	return count, nil
}
