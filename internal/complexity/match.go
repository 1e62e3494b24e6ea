package complexity

// matcher finds, for each factor start, the longest prefix of seq[pos:]
// available inside the policy's copy window. Calls arrive with increasing pos.
type matcher interface {
	longestPrior(pos int) (length, source int)
}

// occurs reports where seq[a:a+k] first appears inside seq[lo:hi], or -1.
func occurs(seq []int, a, k, lo, hi int) int {
	for j := lo; j+k <= hi; j++ {
		if equalRun(seq, j, a, k) {
			return j
		}
	}
	return -1
}

func equalRun(seq []int, x, y, k int) bool {
	for i := 0; i < k; i++ {
		if seq[x+i] != seq[y+i] {
			return false
		}
	}
	return true
}

// longestPrior grows k while seq[pos:pos+k] is still present in the window.
// Presence is monotone in k for both windows, so the first miss ends the scan.
// Ties resolve to the earliest occurrence.
func longestPrior(seq []int, pos int, policy Policy) (int, int) {
	best, src := 0, -1
	for k := 1; pos+k <= len(seq); k++ {
		j := occurs(seq, pos, k, 0, policy.windowEnd(pos, k))
		if j < 0 {
			break
		}
		best, src = k, j
	}
	return best, src
}

// naiveMatcher is the reference brute-force search
type naiveMatcher struct {
	seq    []int
	policy Policy
}

func (m *naiveMatcher) longestPrior(pos int) (int, int) {
	return longestPrior(m.seq, pos, m.policy)
}

// lcp counts matching symbols of the suffixes at x and y
func lcp(seq []int, x, y int) int {
	n := len(seq)
	k := 0
	for x+k < n && y+k < n && seq[x+k] == seq[y+k] {
		k++
	}
	return k
}
