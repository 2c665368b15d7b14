package align

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/happyhackingspace/align/alignment"
	"github.com/happyhackingspace/align/em"
)

// EvalResult holds alignment quality against a gold standard.
type EvalResult struct {
	Precision float64
	Recall    float64
	AER       float64
	Sentences int
	Counts    alignment.Score
}

// Train trains the forward (source to target) model and, unless the policy
// is forward-only, the backward (target to source) model.
func Train(source, target [][]string, config Config) (*Aligner, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	if len(source) != len(target) {
		return nil, fmt.Errorf("align: %w: %d source, %d target", em.ErrShape, len(source), len(target))
	}

	if config.NullSource {
		withNulls := make([][]string, len(source))
		for k, s := range source {
			withNulls[k] = withNull(s)
		}
		source = withNulls
	}

	a := &Aligner{
		config: config,
		source: em.NewVocab(),
		target: em.NewVocab(),
	}
	src := a.source.Intern(source)
	tgt := a.target.Intern(target)

	forward := em.Bitext{Source: src, Target: tgt, Null: -1}
	backward := em.Bitext{Source: tgt, Target: src, Null: -1}
	if config.Trainer.NullTarget {
		forward.Null = a.target.Add(em.NullToken)
		backward.Null = a.source.Add(em.NullToken)
	}

	var fwdErr, bwdErr error
	trainForward := func() { a.forward, fwdErr = trainDirection("forward", forward, config.Trainer) }
	trainBackward := func() { a.backward, bwdErr = trainDirection("backward", backward, config.Trainer) }

	switch {
	case !config.Symmetrization.Bidirectional():
		trainForward()
	case config.Parallel:
		var wg sync.WaitGroup
		wg.Go(trainForward)
		wg.Go(trainBackward)
		wg.Wait()
	default:
		trainForward()
		trainBackward()
	}
	if err := errors.Join(fwdErr, bwdErr); err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	return a, nil
}

func trainDirection(name string, bt em.Bitext, config em.TrainerConfig) (*em.Model, error) {
	start := time.Now()
	m, err := em.Train(bt, config)
	if err != nil {
		return nil, fmt.Errorf("train %s: %w", name, err)
	}
	slog.Debug("Direction trained", "direction", name, "pairs", m.Translation.Len(), "duration", time.Since(start))
	return m, nil
}

// Evaluate scores predicted alignments against gold alignments. Only the
// sentences present in both are scored.
func Evaluate(predicted [][]alignment.Link, gold []alignment.Gold) (*EvalResult, error) {
	n := min(len(predicted), len(gold))
	if n == 0 {
		return nil, fmt.Errorf("align: nothing to evaluate (%d predicted, %d gold)", len(predicted), len(gold))
	}
	if len(predicted) != len(gold) {
		slog.Warn("Predicted and gold alignment counts differ", "predicted", len(predicted), "gold", len(gold), "scored", n)
	}

	var score alignment.Score
	for k := range n {
		score.Add(predicted[k], gold[k])
	}
	return &EvalResult{
		Precision: score.Precision(),
		Recall:    score.Recall(),
		AER:       score.AER(),
		Sentences: n,
		Counts:    score,
	}, nil
}
