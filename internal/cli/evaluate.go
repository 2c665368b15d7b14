package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/happyhackingspace/align"
	"github.com/happyhackingspace/align/alignment"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var cf corpusFlags
	var mf modelFlags
	var modelPath, goldPath, alignmentsPath string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score alignments against a gold standard (precision, recall, AER)",
		Args:  cobra.NoArgs,
		Example: `  # Align data/hansards and score against data/hansards.a
  align evaluate --gold data/hansards.a

  # Score an existing alignment file
  align evaluate --gold data/hansards.a --alignments hansards.out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gold, err := readAlignments(goldPath)
			if err != nil {
				return err
			}

			var predicted [][]alignment.Link
			if alignmentsPath != "" {
				got, err := readAlignments(alignmentsPath)
				if err != nil {
					return err
				}
				for _, g := range got {
					predicted = append(predicted, g.Sure)
				}
			} else {
				start := time.Now()
				if _, predicted, err = c.alignCorpus(cmd, &cf, &mf, modelPath); err != nil {
					return err
				}
				slog.Debug("Alignment completed", "sentences", len(predicted), "duration", time.Since(start))
			}

			result, err := align.Evaluate(predicted, gold)
			if err != nil {
				return err
			}
			fmt.Printf("Precision = %.6f\n", result.Precision)
			fmt.Printf("Recall = %.6f\n", result.Recall)
			fmt.Printf("AER = %.6f\n", result.AER)
			fmt.Printf("Sentences = %d (links: predicted %d, sure %d, predicted∩sure %d, predicted∩possible %d)\n",
				result.Sentences, result.Counts.Predicted, result.Counts.Sure,
				result.Counts.PredictedSure, result.Counts.PredictedPossible)
			return nil
		},
	}

	cf.bind(cmd)
	mf.bind(cmd)
	cmd.Flags().StringVar(&modelPath, "model-file", "", "Path to a trained model (skips training)")
	cmd.Flags().StringVar(&goldPath, "gold", "data/hansards.a", "Gold alignments: i-j sure links, i?j possible links")
	cmd.Flags().StringVar(&alignmentsPath, "alignments", "", "Alignments to score instead of running the aligner")
	return cmd
}

func readAlignments(path string) ([]alignment.Gold, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open alignments: %w", err)
	}
	defer func() { _ = f.Close() }()
	out, err := alignment.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}
