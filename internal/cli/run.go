package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/happyhackingspace/align"
	"github.com/happyhackingspace/align/alignment"
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCommand() *cobra.Command {
	var cf corpusFlags
	var mf modelFlags
	var modelPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Train on a parallel corpus and print its symmetrized alignments",
		Args:  cobra.NoArgs,
		Example: `  # Jump model on data/hansards.f and data/hansards.e
  align run > hansards.a

  # IBM Model 1 with a custom threshold on the first 1000 pairs
  align run --model ibm1 --threshold 0.3 -n 1000

  # Intersect the two directions
  align run --symmetrize intersection

  # Other corpus files
  align run -d data/europarl -f de -e en

  # Reuse a model written by "align train"
  align run --model-file model.json

  # Verbose mode with per-iteration statistics
  align run -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			a, links, err := c.alignCorpus(cmd, &cf, &mf, modelPath)
			if err != nil {
				return err
			}
			slog.Info("Alignment completed", "model", a.Config().Model, "sentences", len(links), "duration", time.Since(start))
			return alignment.Write(os.Stdout, links)
		},
	}

	cf.bind(cmd)
	mf.bind(cmd)
	cmd.Flags().StringVar(&modelPath, "model-file", "", "Path to a trained model (skips training)")
	return cmd
}

// alignCorpus loads the corpus, trains or loads an aligner and aligns the corpus.
func (c *CLI) alignCorpus(cmd *cobra.Command, cf *corpusFlags, mf *modelFlags, modelPath string) (*align.Aligner, [][]alignment.Link, error) {
	var a *align.Aligner
	var err error

	if modelPath != "" {
		slog.Debug("Loading model", "path", modelPath)
		if a, err = align.Load(modelPath); err != nil {
			return nil, nil, err
		}
		data, err := cf.load()
		if err != nil {
			return nil, nil, err
		}
		links, err := a.AlignCorpus(data.Source, data.Target)
		return a, links, err
	}

	cfg, err := mf.config(cmd, c.configPath)
	if err != nil {
		return nil, nil, err
	}
	data, err := cf.load()
	if err != nil {
		return nil, nil, err
	}

	slog.Info("Training aligner", "model", cfg.Model, "pairs", data.Len(),
		"iterations", cfg.Trainer.Iterations, "symmetrization", cfg.Symmetrization)
	start := time.Now()
	if a, err = align.Train(data.Source, data.Target, cfg); err != nil {
		return nil, nil, err
	}
	slog.Debug("Training completed", "duration", time.Since(start))

	links, err := a.AlignCorpus(data.Source, data.Target)
	return a, links, err
}
