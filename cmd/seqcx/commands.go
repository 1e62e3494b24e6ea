package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"seqentropy/adapters/api"
	"seqentropy/adapters/rng"
	"seqentropy/domain/core"
	"seqentropy/domain/sequence"
	"seqentropy/internal/batch"
	"seqentropy/internal/errors"
	"seqentropy/internal/surrogate"
	"seqentropy/internal/testkit"
)

type estimateOutput struct {
	Key     core.SequenceKey      `json:"key"`
	N       int                   `json:"n"`
	Results []sequence.Complexity `json:"results"`
}

func newEstimateCmd(app *cliApp) *cobra.Command {
	var src sourceFlags
	var factors bool

	cmd := &cobra.Command{
		Use:   "estimate [codes...]",
		Short: "Compute LZ complexity of one or more sequences",
		Long: `Compute the LZ76 and LZ77 complexity of the codes given as arguments
or of every sequence in --file.

Example: seqcx estimate 0 1 0 1 0 1 0 1 -e lz77 --factors`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seqs, err := app.sequences(cmd.Context(), src, args)
			if err != nil {
				return err
			}
			estimators, err := app.estimators()
			if err != nil {
				return err
			}

			out := make([]estimateOutput, 0, len(seqs))
			for _, s := range seqs {
				item := estimateOutput{Key: s.Key, N: len(s.Codes)}
				for _, est := range estimators {
					res, err := est.Estimate(s.Codes)
					if err != nil {
						return errors.Wrapf(err, "sequence %s", s.Key)
					}
					if !factors {
						res.Factors = nil
					}
					item.Results = append(item.Results, res)
				}
				out = append(out, item)
			}
			if len(out) == 1 {
				return printJSON(cmd, out[0])
			}
			return printJSON(cmd, out)
		},
	}

	src.bind(cmd)
	cmd.Flags().BoolVar(&factors, "factors", false, "Include the factor list in the output")
	return cmd
}

func newBatchCmd(app *cliApp) *cobra.Command {
	var src sourceFlags
	var factors bool
	var workers int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Estimate every sequence in a file concurrently and summarize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if src.file == "" {
				return errors.InvalidInput("--file is required")
			}
			seqs, err := app.sequences(cmd.Context(), src, nil)
			if err != nil {
				return err
			}
			estimators, err := app.estimators()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = app.cfg.Batch.Workers
			}

			runner := batch.NewRunner(estimators, workers, batch.WithFactors(factors), batch.WithLogger(app.logger))
			report, err := runner.Run(cmd.Context(), seqs)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}

	src.bind(cmd)
	cmd.Flags().BoolVar(&factors, "factors", false, "Include factor lists in the report")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent sequences (default SEQCX_WORKERS or GOMAXPROCS)")
	return cmd
}

func newSurrogateCmd(app *cliApp) *cobra.Command {
	var src sourceFlags
	var count int
	var seed int64
	var keepCounts bool

	cmd := &cobra.Command{
		Use:   "surrogate [codes...]",
		Short: "Test observed complexity against shuffled surrogates",
		Long: `Compare the observed complexity with that of shuffled copies of the
sequence. A small p-value means the ordering is more compressible than
chance.

Example: seqcx surrogate --file data.txt -e lz76 --surrogates 999`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seqs, err := app.sequences(cmd.Context(), src, args)
			if err != nil {
				return err
			}
			estimators, err := app.estimators()
			if err != nil {
				return err
			}

			cfg := surrogate.Config{
				Surrogates: app.cfg.Surrogate.Count,
				Seed:       app.cfg.Surrogate.Seed,
				Workers:    app.cfg.Batch.Workers,
			}
			if cmd.Flags().Changed("surrogates") {
				cfg.Surrogates = count
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			tester, err := surrogate.NewTester(rng.New(), cfg)
			if err != nil {
				return err
			}

			var out []surrogate.Result
			for _, s := range seqs {
				for _, est := range estimators {
					res, err := tester.Test(cmd.Context(), est, string(s.Key), s.Codes)
					if err != nil {
						return errors.Wrapf(err, "sequence %s", s.Key)
					}
					if !keepCounts {
						res.Counts = nil
					}
					app.logger.Debug("%s %s: observed %d, surrogate mean %.2f, p=%.4f",
						s.Key, est.Name(), res.Observed, res.SurrogateMean, res.PValue)
					out = append(out, res)
				}
			}
			return printJSON(cmd, out)
		},
	}

	src.bind(cmd)
	cmd.Flags().IntVarP(&count, "surrogates", "n", 99, "Number of shuffled surrogates")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Base seed for deterministic shuffles")
	cmd.Flags().BoolVar(&keepCounts, "counts", false, "Include every surrogate count in the output")
	return cmd
}

func newGenerateCmd(app *cliApp) *cobra.Command {
	config := testkit.DefaultSequenceConfig()
	var kind string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic sequences in the text format read by --file",
		Long: `Generate reproducible sequences with known structure, one "key: codes"
line per sequence. Kinds: random, markov, periodic, constant, corpus (all four).

Example: seqcx generate --kind corpus --length 5000 > corpus.txt && seqcx batch -f corpus.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Length < 0 {
				return errors.InvalidInput("--length must be non-negative")
			}
			gen := testkit.NewSequenceGenerator(config)

			var seqs []sequence.Named
			single := func(f func() sequence.Sequence) {
				seqs = append(seqs, sequence.Named{
					Key:   core.SequenceKey(fmt.Sprintf("%s_%d", kind, config.Length)),
					Codes: f(),
				})
			}
			switch strings.ToLower(kind) {
			case "random":
				single(gen.Random)
			case "markov":
				single(gen.Markov)
			case "periodic":
				single(gen.Periodic)
			case "constant":
				single(gen.Constant)
			case "corpus":
				seqs = gen.Corpus()
			default:
				return errors.InvalidInput(fmt.Sprintf("unknown kind %q", kind))
			}

			w := cmd.OutOrStdout()
			for _, s := range seqs {
				codes := make([]string, len(s.Codes))
				for i, c := range s.Codes {
					codes[i] = fmt.Sprint(c)
				}
				if _, err := fmt.Fprintf(w, "%s: %s\n", s.Key, strings.Join(codes, " ")); err != nil {
					return err
				}
			}
			app.logger.Debug("Generated %d sequences", len(seqs))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "corpus", "Sequence kind")
	cmd.Flags().IntVar(&config.Length, "length", config.Length, "Symbols per sequence")
	cmd.Flags().IntVar(&config.Alphabet, "alphabet", config.Alphabet, "Alphabet size")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed")
	cmd.Flags().Float64Var(&config.Stickiness, "stickiness", config.Stickiness, "Markov repeat probability")
	return cmd
}

func newServeCmd(app *cliApp) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the complexity estimators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = app.cfg.Server.Port
			}

			server := api.NewServer(api.Config{
				EstimatorOptions: app.cfg.Estimator.Options(),
				Surrogate: surrogate.Config{
					Surrogates: app.cfg.Surrogate.Count,
					Seed:       app.cfg.Surrogate.Seed,
					Workers:    app.cfg.Batch.Workers,
				},
				Workers:        app.cfg.Batch.Workers,
				MaxLength:      app.cfg.Server.MaxLength,
				MaxBatch:       app.cfg.Server.MaxBatch,
				MaxSurrogates:  app.cfg.Server.MaxSurrogates,
				RequestTimeout: app.cfg.Server.RequestTimeout,
			}, rng.New(), app.logger)

			return server.ListenAndServe(cmd.Context(), ":"+port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Listen port (default PORT)")
	return cmd
}
