package cli

import (
	"fmt"
	"log/slog"

	"github.com/happyhackingspace/align"
	"github.com/happyhackingspace/align/alignment"
	"github.com/happyhackingspace/align/internal/corpus"
	"github.com/spf13/cobra"
)

// corpusFlags locate and read a parallel corpus.
type corpusFlags struct {
	prefix    string
	source    string
	target    string
	lowercase bool
}

func (f *corpusFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.prefix, "data", "d", "data/hansards", "Data filename prefix")
	cmd.Flags().StringVarP(&f.target, "english", "e", "e", "Suffix of the target (English) file")
	cmd.Flags().StringVarP(&f.source, "french", "f", "f", "Suffix of the source (French) file")
	cmd.Flags().BoolVar(&f.lowercase, "lowercase", false, "Lowercase every token")
}

func (f *corpusFlags) load() (*corpus.Corpus, error) {
	store := corpus.NewStorage(f.prefix, f.source, f.target)
	opts := corpus.DefaultLoadOptions()
	opts.Lowercase = f.lowercase
	slog.Debug("Loading corpus", "source", store.SourcePath(), "target", store.TargetPath())
	return store.Load(opts)
}

// modelFlags select a preset and override individual settings of it.
type modelFlags struct {
	preset     string
	iterations int
	sentences  int
	threshold  float64
	policy     string
	parallel   bool
}

func (f *modelFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "model", "hmm", fmt.Sprintf("Model preset %v", align.Presets()))
	cmd.Flags().IntVarP(&f.iterations, "iterations", "t", 0, "Number of EM iterations (default: preset)")
	cmd.Flags().IntVarP(&f.sentences, "num-sentences", "n", 0, "Number of sentences to use for training and alignment (default: preset)")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0.5, "Minimum probability of a decoded link (enables thresholding)")
	cmd.Flags().StringVar(&f.policy, "symmetrize", "", "Symmetrization policy: intersection, union, merge, forward (default: preset)")
	cmd.Flags().BoolVar(&f.parallel, "parallel", false, "Train both directions concurrently")
}

// config layers the preset, the --config file and the explicitly set flags.
func (f *modelFlags) config(cmd *cobra.Command, configPath string) (align.Config, error) {
	cfg, err := align.Preset(f.preset)
	if err != nil {
		return align.Config{}, err
	}
	if configPath != "" {
		if cfg, err = align.LoadConfig(configPath, cfg); err != nil {
			return align.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("iterations") {
		cfg.Trainer.Iterations = f.iterations
	}
	if flags.Changed("num-sentences") {
		cfg.Trainer.MaxSentences = f.sentences
	}
	if flags.Changed("threshold") {
		cfg.Decoder.Thresholded = true
		cfg.Decoder.Threshold = f.threshold
	}
	if flags.Changed("symmetrize") {
		p, err := alignment.ParsePolicy(f.policy)
		if err != nil {
			return align.Config{}, err
		}
		cfg.Symmetrization = p
	}
	if flags.Changed("parallel") {
		cfg.Parallel = f.parallel
	}
	return cfg, cfg.Validate()
}
