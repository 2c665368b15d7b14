package em

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
)

// InitPolicy selects how the translation table is seeded before the first iteration.
type InitPolicy string

const (
	// InitUniformSeed sets every co-occurring pair to 1+smoothing. Pairs that
	// never co-occur resolve to 0.
	InitUniformSeed InitPolicy = "uniform-seed"
	// InitLazyDefault skips the pre-scan. Every pair not yet re-estimated
	// resolves to 1.0. It converges more slowly than InitUniformSeed but to a
	// similar table.
	InitLazyDefault InitPolicy = "lazy-default"
)

// ParseInitPolicy validates an init policy name.
func ParseInitPolicy(s string) (InitPolicy, error) {
	switch p := InitPolicy(s); p {
	case InitUniformSeed, InitLazyDefault:
		return p, nil
	}
	return "", fmt.Errorf("unknown init policy %q", s)
}

// TrainerConfig holds EM training parameters.
type TrainerConfig struct {
	Iterations   int        `yaml:"iterations" json:"iterations"`
	MaxSentences int        `yaml:"max_sentences" json:"max_sentences"` // <= 0 uses every pair
	Init         InitPolicy `yaml:"init" json:"init"`
	Transition   bool       `yaml:"transition" json:"transition"`
	Window       int        `yaml:"window" json:"window"`
	Smoothing    float64    `yaml:"smoothing" json:"smoothing"`
	NullTarget   bool       `yaml:"null_target" json:"null_target"`
}

// DefaultTrainerConfig returns the jump model configuration.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Iterations:   10,
		MaxSentences: 100000,
		Init:         InitUniformSeed,
		Transition:   true,
		Window:       DefaultWindow,
		Smoothing:    DefaultSmoothing,
	}
}

// Bitext is a sentence-aligned pair of interned corpora.
type Bitext struct {
	Source [][]int
	Target [][]int
	// Null is the target-side ID appended to every target sentence during
	// training when TrainerConfig.NullTarget is set.
	Null int
}

// Model holds the trained tables of one alignment direction.
type Model struct {
	Translation *TranslationTable `json:"translation"`
	Transition  *TransitionTable  `json:"transition,omitempty"`
}

// score returns the unnormalized probability of aligning f to e across a jump.
func (m *Model) score(f, e, jump int) float64 {
	p := m.Translation.Prob(f, e)
	if m.Transition != nil {
		p *= m.Transition.Prob(jump)
	}
	return p
}

// Train estimates a model for aligning each source token to a target position.
// It always runs exactly config.Iterations iterations.
func Train(bt Bitext, config TrainerConfig) (*Model, error) {
	if len(bt.Source) != len(bt.Target) {
		return nil, fmt.Errorf("%w: %d source, %d target", ErrShape, len(bt.Source), len(bt.Target))
	}

	n := len(bt.Source)
	if config.MaxSentences > 0 && config.MaxSentences < n {
		n = config.MaxSentences
	}
	src := bt.Source[:n]
	tgt := bt.Target[:n]
	if config.NullTarget {
		tgt = appendNull(tgt, bt.Null)
	}

	model := &Model{}
	switch config.Init {
	case InitLazyDefault:
		model.Translation = NewTranslationTable(1.0)
	default:
		model.Translation = seedTranslation(src, tgt, config.Smoothing)
	}
	if config.Transition {
		model.Transition = NewTransitionTable(config.Window, config.Smoothing)
	}

	for iter := range config.Iterations {
		ll := model.iterate(src, tgt, config.Smoothing)
		slog.Debug("EM iteration", "iteration", iter+1, "log_likelihood", ll, "pairs", model.Translation.Len())
	}
	return model, nil
}

func appendNull(target [][]int, null int) [][]int {
	out := make([][]int, len(target))
	for i, s := range target {
		ext := make([]int, len(s), len(s)+1)
		copy(ext, s)
		out[i] = append(ext, null)
	}
	return out
}

func seedTranslation(src, tgt [][]int, smoothing float64) *TranslationTable {
	t := NewTranslationTable(0)
	for k := range src {
		for _, f := range src[k] {
			for _, e := range tgt[k] {
				t.Set(f, e, 1.0+smoothing)
			}
		}
	}
	return t
}

// iterate runs one E step and one M step and returns the corpus
// log-likelihood under the tables it started from.
func (m *Model) iterate(src, tgt [][]int, smoothing float64) float64 {
	counts := make(map[pair]float64, m.Translation.Len())
	totals := make(map[int]float64)

	var jumpCounts []float64
	var jumpTotal float64
	if m.Transition != nil {
		jumpCounts = make([]float64, 2*m.Transition.Window()+1)
	}

	var scores []float64
	ll := 0.0
	for k := range src {
		target := tgt[k]
		if len(target) == 0 {
			// Every normalizer floors to smoothing and no counts are touched.
			ll += float64(len(src[k])) * math.Log(smoothing)
			continue
		}
		scores = resize(scores, len(target))

		for i, f := range src[k] {
			for j, e := range target {
				scores[j] = m.score(f, e, j-i)
			}
			z := floats.Sum(scores)
			if z == 0 {
				z = smoothing
			}
			ll += math.Log(z)

			for j, e := range target {
				c := scores[j] / z
				counts[pair{f, e}] += c
				totals[e] += c
				if m.Transition != nil && m.Transition.InWindow(j-i) {
					jumpCounts[j-i+m.Transition.Window()] += c
					jumpTotal += c
				}
			}
		}
	}

	for key, c := range counts {
		m.Translation.Set(key.f, key.e, c/math.Max(totals[key.e], smoothing))
	}

	// The normalizer is the count of every in-window jump, not count[k] alone,
	// which would set each observed jump to 1.
	if m.Transition != nil && jumpTotal > 0 {
		w := m.Transition.Window()
		for k, c := range jumpCounts {
			m.Transition.Set(k-w, c/math.Max(jumpTotal, smoothing))
		}
	}
	return ll
}

// resize returns a slice of length n. The contents are not kept.
func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
