package align

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/happyhackingspace/align/alignment"
	"github.com/happyhackingspace/align/em"
)

// ErrUnknownPreset reports a model preset name that does not exist.
var ErrUnknownPreset = errors.New("unknown model preset")

// Config holds every knob of the training, decoding and symmetrization
// pipeline.
type Config struct {
	Model          string           `yaml:"model" json:"model"`
	Trainer        em.TrainerConfig `yaml:"trainer" json:"trainer"`
	Decoder        em.DecoderConfig `yaml:"decoder" json:"decoder"`
	Symmetrization alignment.Policy `yaml:"symmetrization" json:"symmetrization"`
	// NullSource puts em.NullToken in front of every source sentence that
	// lacks it, in training and alignment. Links to it are dropped and output
	// source positions index the sentence without it.
	NullSource bool `yaml:"null_source" json:"null_source"`
	// Parallel trains the two directions concurrently.
	Parallel bool `yaml:"parallel" json:"-"`
}

var presets = map[string]func() Config{
	// IBM Model 1: lazy 1.0 defaults, NULL target word, thresholded decoding.
	"ibm1": func() Config {
		return Config{
			Model: "ibm1",
			Trainer: em.TrainerConfig{
				Iterations: 10,
				Init:       em.InitLazyDefault,
				Window:     em.DefaultWindow,
				Smoothing:  em.DefaultSmoothing,
				NullTarget: true,
			},
			Decoder:        em.DecoderConfig{Thresholded: true, Threshold: 0.5},
			Symmetrization: alignment.PolicyMerge,
		}
	},
	"hmm": func() Config {
		return Config{
			Model:          "hmm",
			Trainer:        em.DefaultTrainerConfig(),
			Symmetrization: alignment.PolicyMerge,
		}
	},
	"hmm-null": func() Config {
		tc := em.DefaultTrainerConfig()
		tc.Iterations = 5
		return Config{
			Model:          "hmm-null",
			Trainer:        tc,
			Symmetrization: alignment.PolicyIntersection,
			NullSource:     true,
		}
	},
	"hmm-forward": func() Config {
		tc := em.DefaultTrainerConfig()
		tc.Iterations = 5
		tc.MaxSentences = 10
		return Config{
			Model:          "hmm-forward",
			Trainer:        tc,
			Symmetrization: alignment.PolicyForward,
		}
	},
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns the configuration of a named model variant.
func Preset(name string) (Config, error) {
	build, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w %q (have %v)", ErrUnknownPreset, name, Presets())
	}
	return build(), nil
}

// DefaultConfig returns the "hmm" preset.
func DefaultConfig() Config {
	return presets["hmm"]()
}

// LoadConfig reads a YAML config file. Fields absent from the file keep the
// values of the preset the file names, or of base if it names none.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var head struct {
		Model string `yaml:"model"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg := base
	if head.Model != "" && head.Model != base.Model {
		if cfg, err = Preset(head.Model); err != nil {
			return Config{}, err
		}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Trainer.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", c.Trainer.Iterations)
	}
	if c.Trainer.Window < 0 {
		return fmt.Errorf("window must not be negative, got %d", c.Trainer.Window)
	}
	if c.Trainer.Smoothing <= 0 {
		return fmt.Errorf("smoothing must be positive, got %g", c.Trainer.Smoothing)
	}
	if _, err := em.ParseInitPolicy(string(c.Trainer.Init)); err != nil {
		return err
	}
	if _, err := alignment.ParsePolicy(string(c.Symmetrization)); err != nil {
		return err
	}
	return nil
}
