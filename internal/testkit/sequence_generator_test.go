package testkit

import (
	"testing"
)

func TestSequenceGenerator_Deterministic(t *testing.T) {
	cfg := SequenceGeneratorConfig{Length: 200, Alphabet: 3, Seed: 7, Stickiness: 0.5}

	a := NewSequenceGenerator(cfg).Markov()
	b := NewSequenceGenerator(cfg).Markov()
	if len(a) != 200 {
		t.Fatalf("Expected 200 symbols, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Expected identical sequences for identical seeds, differ at %d", i)
		}
	}
}

func TestSequenceGenerator_Alphabet(t *testing.T) {
	g := NewSequenceGenerator(SequenceGeneratorConfig{Length: 500, Alphabet: 4, Seed: 1})
	for _, s := range [][]int{g.Random(), g.Markov(), g.Periodic()} {
		for i, c := range s {
			if c < 0 || c >= 4 {
				t.Errorf("Symbol %d at %d outside alphabet", c, i)
			}
		}
	}

	p := g.Periodic()
	if p[0] != 0 || p[1] != 1 || p[4] != 0 {
		t.Errorf("Unexpected periodic prefix %v", p[:5])
	}
	for _, c := range g.Constant() {
		if c != 0 {
			t.Fatal("Expected constant sequence of zeros")
		}
	}
}

func TestSequenceGenerator_Corpus(t *testing.T) {
	corpus := NewSequenceGenerator(DefaultSequenceConfig()).Corpus()
	if len(corpus) != 4 {
		t.Fatalf("Expected 4 named sequences, got %d", len(corpus))
	}
	seen := map[string]bool{}
	for _, n := range corpus {
		if seen[n.Key.String()] {
			t.Errorf("Duplicate key %s", n.Key)
		}
		seen[n.Key.String()] = true
		if n.Codes.Len() != 1000 {
			t.Errorf("Sequence %s has %d symbols", n.Key, n.Codes.Len())
		}
	}
}
