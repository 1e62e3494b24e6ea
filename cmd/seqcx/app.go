package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"seqentropy/adapters/excel"
	"seqentropy/domain/sequence"
	"seqentropy/internal"
	"seqentropy/internal/complexity"
	"seqentropy/internal/config"
	"seqentropy/internal/errors"
	"seqentropy/ports"
)

// cliApp carries configuration shared by every subcommand
type cliApp struct {
	cfg    *config.Config
	logger *internal.Logger

	estimatorNames []string
	base           float64
	strict         bool
	index          string
}

// sourceFlags select a sequence file instead of positional codes
type sourceFlags struct {
	file    string
	sheet   string
	labels  bool
	columns bool
}

func (a *cliApp) bindFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringSliceVarP(&a.estimatorNames, "estimator", "e", nil, "Estimators to run: lz76, lz77 (default all)")
	f.Float64Var(&a.base, "base", complexity.DefaultBase, "Logarithm base of the normalized complexity")
	f.BoolVar(&a.strict, "strict", false, "Treat empty sequences as an error")
	f.StringVar(&a.index, "index", "", "Matcher selection: naive, indexed or auto")
}

func (s *sourceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "Read sequences from a .txt, .csv, .tsv or .xlsx file")
	cmd.Flags().StringVar(&s.sheet, "sheet", excel.DefaultSheet, "Worksheet to read from .xlsx files")
	cmd.Flags().BoolVar(&s.labels, "labels", false, "First cell of each row (or column) is the sequence key")
	cmd.Flags().BoolVar(&s.columns, "columns", false, "Read one sequence per column")
}

// init loads the environment configuration and applies flag overrides
func (a *cliApp) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base") {
		cfg.Estimator.Base = a.base
	}
	if flags.Changed("strict") {
		cfg.Estimator.Strict = a.strict
	}
	if flags.Changed("index") {
		mode, err := complexity.ParseIndexMode(a.index)
		if err != nil {
			return err
		}
		cfg.Estimator.Index = mode
	}

	internal.DefaultLogger = internal.NewLogger(cfg.Log.Level)
	a.logger = internal.DefaultLogger.WithComponent("seqcx")
	a.cfg = cfg
	return nil
}

func (a *cliApp) estimators() ([]ports.ComplexityEstimator, error) {
	kinds := complexity.Kinds()
	if len(a.estimatorNames) > 0 {
		kinds = nil
		for _, name := range a.estimatorNames {
			k, err := complexity.ParseKind(name)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, k)
		}
	}

	out := make([]ports.ComplexityEstimator, 0, len(kinds))
	for _, k := range kinds {
		est, err := complexity.NewEstimator(k, a.cfg.Estimator.Options()...)
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}
	return out, nil
}

// sequences reads from the file flag when set, otherwise parses the
// positional arguments as one sequence
func (a *cliApp) sequences(ctx context.Context, src sourceFlags, args []string) ([]sequence.Named, error) {
	if src.file != "" {
		if len(args) > 0 {
			return nil, errors.InvalidInput("pass either codes or --file, not both")
		}
		var source ports.SequenceSource = excel.NewDataReader(excel.ReaderConfig{
			FilePath: src.file,
			Sheet:    src.sheet,
			Labels:   src.labels,
			Columns:  src.columns,
		})
		return source.ReadAll(ctx)
	}

	seq, err := sequence.ParseTokens(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	return []sequence.Named{{Key: "args", Codes: seq}}, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
