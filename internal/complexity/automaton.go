package complexity

// samState is one state of a suffix automaton. firstEnd is the end offset of
// the first occurrence of the strings the state recognizes.
type samState struct {
	length   int
	link     int
	firstEnd int
	next     map[int]int
}

// suffixAutomaton recognizes every substring of the symbols added so far.
type suffixAutomaton struct {
	states []samState
	last   int
}

func newSuffixAutomaton(capacity int) *suffixAutomaton {
	states := make([]samState, 1, 2*capacity+1)
	states[0] = samState{link: -1, firstEnd: -1, next: map[int]int{}}
	return &suffixAutomaton{states: states}
}

// extend appends symbol c found at text offset pos
func (a *suffixAutomaton) extend(c, pos int) {
	cur := len(a.states)
	a.states = append(a.states, samState{
		length:   a.states[a.last].length + 1,
		link:     0,
		firstEnd: pos,
		next:     map[int]int{},
	})

	p := a.last
	for p != -1 {
		if _, ok := a.states[p].next[c]; ok {
			break
		}
		a.states[p].next[c] = cur
		p = a.states[p].link
	}

	if p != -1 {
		q := a.states[p].next[c]
		if a.states[p].length+1 == a.states[q].length {
			a.states[cur].link = q
		} else {
			clone := len(a.states)
			next := make(map[int]int, len(a.states[q].next))
			for k, v := range a.states[q].next {
				next[k] = v
			}
			a.states = append(a.states, samState{
				length:   a.states[p].length + 1,
				link:     a.states[q].link,
				firstEnd: a.states[q].firstEnd,
				next:     next,
			})
			for p != -1 && a.states[p].next[c] == q {
				a.states[p].next[c] = clone
				p = a.states[p].link
			}
			a.states[q].link = clone
			a.states[cur].link = clone
		}
	}
	a.last = cur
}

// automatonMatcher answers prefix-window queries. The automaton is grown
// lazily to cover exactly seq[0:pos] before each query, so every match it
// reports ends at or before pos.
type automatonMatcher struct {
	seq   []int
	sam   *suffixAutomaton
	built int
}

func newAutomatonMatcher(seq []int) *automatonMatcher {
	return &automatonMatcher{seq: seq, sam: newSuffixAutomaton(len(seq))}
}

func (m *automatonMatcher) longestPrior(pos int) (int, int) {
	for ; m.built < pos; m.built++ {
		m.sam.extend(m.seq[m.built], m.built)
	}

	state, k := 0, 0
	for pos+k < len(m.seq) {
		nxt, ok := m.sam.states[state].next[m.seq[pos+k]]
		if !ok {
			break
		}
		state = nxt
		k++
	}
	if k == 0 {
		return 0, -1
	}
	return k, m.sam.states[state].firstEnd - k + 1
}
