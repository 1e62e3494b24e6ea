package surrogate

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"seqentropy/domain/sequence"
	"seqentropy/internal/errors"
	"seqentropy/ports"
)

// Config controls a shuffle-surrogate test
type Config struct {
	Surrogates int
	Seed       int64
	Workers    int
	RunID      string
}

// DefaultConfig returns 99 surrogates, which resolves p down to 0.01
func DefaultConfig() Config {
	return Config{Surrogates: 99, Seed: 42}
}

// Result compares the observed complexity with shuffled copies of the same
// sequence. Shuffling keeps symbol frequencies and destroys ordering, so an
// observed count well below the surrogates indicates sequential structure.
type Result struct {
	Estimator          string  `json:"estimator"`
	N                  int     `json:"n"`
	Observed           int     `json:"observed"`
	ObservedNormalized float64 `json:"observed_normalized"`
	Surrogates         int     `json:"surrogates"`
	SurrogateMean      float64 `json:"surrogate_mean"`
	SurrogateStd       float64 `json:"surrogate_std"`
	ZScore             float64 `json:"z_score"`
	// PValue is the rank-based probability that a surrogate is at most as
	// complex as the observed sequence.
	PValue float64 `json:"p_value"`
	// GaussianP is the normal approximation of the same lower tail.
	GaussianP float64 `json:"gaussian_p"`
	Counts    []int   `json:"counts,omitempty"`
}

// Tester runs surrogate tests
type Tester struct {
	rng ports.RNGPort
	cfg Config
}

// NewTester creates a surrogate tester drawing shuffles from rng
func NewTester(rng ports.RNGPort, cfg Config) (*Tester, error) {
	if cfg.Surrogates < 0 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("surrogate count must be non-negative, got %d", cfg.Surrogates))
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Tester{rng: rng, cfg: cfg}, nil
}

// Test estimates seq and cfg.Surrogates shuffled copies of it. Each shuffle
// has its own RNG stream, so results do not depend on scheduling.
func (t *Tester) Test(ctx context.Context, est ports.ComplexityEstimator, key string, seq sequence.Sequence) (Result, error) {
	observed, err := est.Estimate(seq)
	if err != nil {
		return Result{}, errors.Wrapf(err, "observed %s complexity", est.Name())
	}

	res := Result{
		Estimator:          est.Name(),
		N:                  len(seq),
		Observed:           observed.Count,
		ObservedNormalized: observed.Normalized,
		PValue:             1,
		GaussianP:          1,
	}
	if len(seq) <= 1 || t.cfg.Surrogates == 0 {
		return res, nil
	}

	counts := make([]int, t.cfg.Surrogates)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.Workers)
	for i := 0; i < t.cfg.Surrogates; i++ {
		g.Go(func() error {
			r, err := t.rng.Stream(gctx, t.cfg.RunID, "surrogate/"+est.Name(), fmt.Sprintf("%s#%d", key, i), t.cfg.Seed)
			if err != nil {
				return err
			}
			shuffled := seq.Clone()
			r.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			sc, err := est.Estimate(shuffled)
			if err != nil {
				return errors.Wrapf(err, "surrogate %d", i)
			}
			counts[i] = sc.Count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	values := make([]float64, len(counts))
	atMost := 0
	for i, c := range counts {
		values[i] = float64(c)
		if c <= observed.Count {
			atMost++
		}
	}
	res.Surrogates = len(counts)
	res.Counts = counts
	res.SurrogateMean, res.SurrogateStd = stat.MeanStdDev(values, nil)
	if math.IsNaN(res.SurrogateStd) {
		res.SurrogateStd = 0
	}
	res.PValue = float64(atMost+1) / float64(len(counts)+1)
	if res.SurrogateStd > 0 {
		res.ZScore = (float64(observed.Count) - res.SurrogateMean) / res.SurrogateStd
		res.GaussianP = distuv.UnitNormal.CDF(res.ZScore)
	}
	return res, nil
}

// MarshalJSON writes a NaN observed normalization (n <= 1) as null
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	out := struct {
		alias
		ObservedNormalized *float64 `json:"observed_normalized"`
	}{alias: alias(r)}
	if !math.IsNaN(r.ObservedNormalized) && !math.IsInf(r.ObservedNormalized, 0) {
		v := r.ObservedNormalized
		out.ObservedNormalized = &v
	}
	return json.Marshal(out)
}
