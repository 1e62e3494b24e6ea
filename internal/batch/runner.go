package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"seqentropy/domain/core"
	"seqentropy/domain/sequence"
	"seqentropy/internal"
	"seqentropy/ports"
)

// heavyLength is the sequence length that costs one extra semaphore unit
const heavyLength = 100_000

// Item is the outcome for one input sequence
type Item struct {
	Key         core.SequenceKey               `json:"key"`
	Fingerprint core.SequenceHash              `json:"fingerprint"`
	N           int                            `json:"n"`
	Distinct    int                            `json:"distinct"`
	Results     map[string]sequence.Complexity `json:"results"`
	Error       string                         `json:"error,omitempty"`
}

// Report collects a whole batch run
type Report struct {
	RunID      core.RunID `json:"run_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	Items      []Item     `json:"items"`
	Summaries  []Summary  `json:"summaries"`
}

// Runner estimates many sequences concurrently. Each sequence holds
// semaphore capacity proportional to its length while it is processed.
type Runner struct {
	estimators  []ports.ComplexityEstimator
	sem         *semaphore.Weighted
	capacity    int64
	keepFactors bool
	logger      *internal.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithFactors keeps per-factor detail in results instead of dropping it
func WithFactors(keep bool) Option {
	return func(r *Runner) { r.keepFactors = keep }
}

// WithLogger replaces the default logger
func WithLogger(l *internal.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner. workers <= 0 means GOMAXPROCS.
func NewRunner(estimators []ports.ComplexityEstimator, workers int, opts ...Option) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	r := &Runner{
		estimators: estimators,
		sem:        semaphore.NewWeighted(int64(workers)),
		capacity:   int64(workers),
		logger:     internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("BatchRunner")
	return r
}

func (r *Runner) weight(n int) int64 {
	w := 1 + int64(n/heavyLength)
	if w > r.capacity {
		w = r.capacity
	}
	return w
}

// Run estimates every sequence with every estimator. Estimator failures are
// recorded on the item; cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, seqs []sequence.Named) (*Report, error) {
	report := &Report{
		RunID:     core.NewRunID(),
		StartedAt: time.Now().UTC(),
		Items:     make([]Item, len(seqs)),
	}
	r.logger.Info("Run %s starting: %d sequences, %d estimators, capacity %d",
		report.RunID, len(seqs), len(r.estimators), r.capacity)

	var wg sync.WaitGroup
	var runErr error
	for i, s := range seqs {
		w := r.weight(len(s.Codes))
		if err := r.sem.Acquire(ctx, w); err != nil {
			runErr = err
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer r.sem.Release(w)
			report.Items[i] = r.estimateOne(s)
		}()
	}
	wg.Wait()

	if runErr != nil {
		r.logger.Warn("Run %s cancelled: %v", report.RunID, runErr)
		return nil, runErr
	}

	report.Summaries = Summarize(report.Items, r.names())
	report.FinishedAt = time.Now().UTC()
	r.logger.Info("Run %s finished in %s", report.RunID, report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

func (r *Runner) names() []string {
	out := make([]string, len(r.estimators))
	for i, e := range r.estimators {
		out[i] = e.Name()
	}
	return out
}

func (r *Runner) estimateOne(s sequence.Named) Item {
	item := Item{
		Key:         s.Key,
		Fingerprint: s.Fingerprint(),
		N:           len(s.Codes),
		Distinct:    s.Codes.Distinct(),
		Results:     make(map[string]sequence.Complexity, len(r.estimators)),
	}
	for _, est := range r.estimators {
		res, err := est.Estimate(s.Codes)
		if err != nil {
			r.logger.Error("%s failed on %s: %v", est.Name(), s.Key, err)
			item.Error = err.Error()
			return item
		}
		if !r.keepFactors {
			res.Factors = nil
		}
		item.Results[est.Name()] = res
	}
	r.logger.Debug("%s (n=%d, %s) done", s.Key, item.N, core.Hash(item.Fingerprint).Short())
	return item
}
