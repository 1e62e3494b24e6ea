package testkit

import (
	"fmt"
	"math/rand"

	"seqentropy/domain/core"
	"seqentropy/domain/sequence"
)

// SequenceGeneratorConfig configures the synthetic sequence generator
type SequenceGeneratorConfig struct {
	Length   int   `json:"length"`
	Alphabet int   `json:"alphabet"`
	Seed     int64 `json:"seed"`
	// Stickiness is the probability that a Markov step repeats the previous
	// symbol. 0 gives i.i.d. symbols.
	Stickiness float64 `json:"stickiness"`
}

// DefaultSequenceConfig returns sensible defaults for sequence generation
func DefaultSequenceConfig() SequenceGeneratorConfig {
	return SequenceGeneratorConfig{
		Length:     1000,
		Alphabet:   4,
		Seed:       42,
		Stickiness: 0.9,
	}
}

// SequenceGenerator produces reproducible sequences with known structure
type SequenceGenerator struct {
	config SequenceGeneratorConfig
	rng    *rand.Rand
}

// NewSequenceGenerator creates a new sequence generator
func NewSequenceGenerator(config SequenceGeneratorConfig) *SequenceGenerator {
	if config.Alphabet < 1 {
		config.Alphabet = 1
	}
	return &SequenceGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Random draws i.i.d. uniform symbols
func (g *SequenceGenerator) Random() sequence.Sequence {
	s := make(sequence.Sequence, g.config.Length)
	for i := range s {
		s[i] = g.rng.Intn(g.config.Alphabet)
	}
	return s
}

// Markov draws a sticky chain: repeat the previous symbol with probability
// Stickiness, otherwise pick uniformly.
func (g *SequenceGenerator) Markov() sequence.Sequence {
	s := make(sequence.Sequence, g.config.Length)
	for i := range s {
		if i > 0 && g.rng.Float64() < g.config.Stickiness {
			s[i] = s[i-1]
			continue
		}
		s[i] = g.rng.Intn(g.config.Alphabet)
	}
	return s
}

// Periodic repeats 0..Alphabet-1
func (g *SequenceGenerator) Periodic() sequence.Sequence {
	s := make(sequence.Sequence, g.config.Length)
	for i := range s {
		s[i] = i % g.config.Alphabet
	}
	return s
}

// Constant repeats a single symbol
func (g *SequenceGenerator) Constant() sequence.Sequence {
	return make(sequence.Sequence, g.config.Length)
}

// Corpus returns one named sequence of every kind
func (g *SequenceGenerator) Corpus() []sequence.Named {
	kinds := []struct {
		name string
		gen  func() sequence.Sequence
	}{
		{"random", g.Random},
		{"markov", g.Markov},
		{"periodic", g.Periodic},
		{"constant", g.Constant},
	}
	out := make([]sequence.Named, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, sequence.Named{
			Key:   core.SequenceKey(fmt.Sprintf("%s_%d", k.name, g.config.Length)),
			Codes: k.gen(),
		})
	}
	return out
}
