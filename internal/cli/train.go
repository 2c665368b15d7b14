package cli

import (
	"log/slog"
	"time"

	"github.com/happyhackingspace/align"
	"github.com/spf13/cobra"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var cf corpusFlags
	var mf modelFlags

	cmd := &cobra.Command{
		Use:   "train <modelfile>",
		Short: "Train both alignment directions and save the model",
		Args:  cobra.ExactArgs(1),
		Example: `  align train model.json -d data/hansards
  align train model.json --model ibm1 -t 5 -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modelPath := args[0]
			cfg, err := mf.config(cmd, c.configPath)
			if err != nil {
				return err
			}
			data, err := cf.load()
			if err != nil {
				return err
			}

			slog.Info("Training aligner", "model", cfg.Model, "pairs", data.Len(), "output", modelPath)
			start := time.Now()
			a, err := align.Train(data.Source, data.Target, cfg)
			if err != nil {
				return err
			}
			slog.Debug("Training completed", "duration", time.Since(start))
			if err := a.Save(modelPath); err != nil {
				return err
			}
			slog.Info("Model saved", "path", modelPath)
			return nil
		},
	}

	cf.bind(cmd)
	mf.bind(cmd)
	return cmd
}
