package complexity

import (
	"cmp"
	"slices"
)

// suffixArray sorts the suffixes of seq by prefix doubling.
func suffixArray(seq []int) []int {
	n := len(seq)
	sa := make([]int, n)
	if n == 0 {
		return sa
	}
	for i := range sa {
		sa[i] = i
	}
	slices.SortFunc(sa, func(a, b int) int { return cmp.Compare(seq[a], seq[b]) })

	rank := make([]int, n)
	tmp := make([]int, n)
	for i := 1; i < n; i++ {
		rank[sa[i]] = rank[sa[i-1]]
		if seq[sa[i]] != seq[sa[i-1]] {
			rank[sa[i]]++
		}
	}

	for k := 1; rank[sa[n-1]] < n-1; k <<= 1 {
		second := func(i int) int {
			if i+k < n {
				return rank[i+k]
			}
			return -1
		}
		compare := func(a, b int) int {
			if c := cmp.Compare(rank[a], rank[b]); c != 0 {
				return c
			}
			return cmp.Compare(second(a), second(b))
		}
		slices.SortFunc(sa, compare)
		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if compare(sa[i-1], sa[i]) != 0 {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)
	}
	return sa
}

// suffixArrayMatcher answers self-overlapping queries. Among suffixes that
// start before pos, the longest common prefix with suffix pos is reached at
// the nearest smaller text position on either side of pos in suffix order.
// Comparing naively is linear overall because each comparison is bounded by
// the factor it produces.
type suffixArrayMatcher struct {
	seq  []int
	prev []int // text position of the previous smaller value, or -1
	next []int // text position of the next smaller value, or -1
}

func newSuffixArrayMatcher(seq []int) *suffixArrayMatcher {
	n := len(seq)
	sa := suffixArray(seq)
	m := &suffixArrayMatcher{
		seq:  seq,
		prev: make([]int, n),
		next: make([]int, n),
	}

	stack := make([]int, 0, 64)
	for r := 0; r < n; r++ {
		for len(stack) > 0 && stack[len(stack)-1] > sa[r] {
			stack = stack[:len(stack)-1]
		}
		m.prev[sa[r]] = -1
		if len(stack) > 0 {
			m.prev[sa[r]] = stack[len(stack)-1]
		}
		stack = append(stack, sa[r])
	}

	stack = stack[:0]
	for r := n - 1; r >= 0; r-- {
		for len(stack) > 0 && stack[len(stack)-1] > sa[r] {
			stack = stack[:len(stack)-1]
		}
		m.next[sa[r]] = -1
		if len(stack) > 0 {
			m.next[sa[r]] = stack[len(stack)-1]
		}
		stack = append(stack, sa[r])
	}
	return m
}

func (m *suffixArrayMatcher) longestPrior(pos int) (int, int) {
	best, src := 0, -1
	for _, cand := range [2]int{m.prev[pos], m.next[pos]} {
		if cand < 0 {
			continue
		}
		if k := lcp(m.seq, cand, pos); k > best || (k == best && k > 0 && cand < src) {
			best, src = k, cand
		}
	}
	return best, src
}
