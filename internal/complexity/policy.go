package complexity

// Policy selects how a parse treats the copy window and the factor tail.
type Policy struct {
	Name string
	// SelfOverlap lets a copy source run into the text currently being
	// copied: the window for a match of length k at pos is seq[0 : pos+k-1].
	// Without it the window is seq[0 : pos].
	SelfOverlap bool
	// Innovative appends the first unmatched symbol to every factor.
	Innovative bool
}

var (
	// KasparSchuster is the LZ76 reproduction-complexity policy.
	KasparSchuster = Policy{Name: "lz76", SelfOverlap: true, Innovative: true}
	// Greedy77 is the LZ77 factorization without self-overlap. Since a copy
	// can at most double the dictionary, a constant run of n >= 1 symbols
	// parses into 1 + ceil(log2 n) factors, not 2 as it would with overlap.
	Greedy77 = Policy{Name: "lz77", SelfOverlap: false, Innovative: false}
)

// windowEnd returns the exclusive end of the region a match of length k
// starting at pos may be copied from.
func (p Policy) windowEnd(pos, k int) int {
	if p.SelfOverlap {
		return pos + k - 1
	}
	return pos
}

// copied returns how many leading symbols of a factor of the given length
// came from its source.
func (p Policy) copied(length int) int {
	if p.Innovative {
		return length - 1
	}
	return length
}
