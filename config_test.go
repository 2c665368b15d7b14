package align

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/align/alignment"
	"github.com/happyhackingspace/align/em"
)

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"hmm", "hmm-forward", "hmm-null", "ibm1"}, Presets())

	for _, name := range Presets() {
		cfg, err := Preset(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, cfg.Model)
		assert.NoError(t, cfg.Validate(), name)
	}

	ibm1 := mustPreset(t, "ibm1")
	assert.False(t, ibm1.Trainer.Transition)
	assert.True(t, ibm1.Trainer.NullTarget)
	assert.Equal(t, em.InitLazyDefault, ibm1.Trainer.Init)
	assert.True(t, ibm1.Decoder.Thresholded)

	null := mustPreset(t, "hmm-null")
	assert.True(t, null.NullSource)
	assert.Equal(t, alignment.PolicyIntersection, null.Symmetrization)

	assert.Equal(t, mustPreset(t, "hmm"), DefaultConfig())

	_, err := Preset("ibm2")
	assert.True(t, errors.Is(err, ErrUnknownPreset))
}

func TestPresetReturnsCopy(t *testing.T) {
	a := mustPreset(t, "hmm")
	a.Trainer.Iterations = 99
	assert.Equal(t, 10, mustPreset(t, "hmm").Trainer.Iterations)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "align.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
trainer:
  iterations: 3
  window: 4
symmetrization: intersection
`)
	cfg, err := LoadConfig(path, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "hmm", cfg.Model)
	assert.Equal(t, 3, cfg.Trainer.Iterations)
	assert.Equal(t, 4, cfg.Trainer.Window)
	assert.Equal(t, 100000, cfg.Trainer.MaxSentences, "unset fields keep the base value")
	assert.Equal(t, em.DefaultSmoothing, cfg.Trainer.Smoothing)
	assert.Equal(t, alignment.PolicyIntersection, cfg.Symmetrization)
}

func TestLoadConfigSwitchesPreset(t *testing.T) {
	path := writeConfig(t, `
model: ibm1
decoder:
  threshold: 0.8
`)
	cfg, err := LoadConfig(path, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "ibm1", cfg.Model)
	assert.Equal(t, em.InitLazyDefault, cfg.Trainer.Init)
	assert.True(t, cfg.Decoder.Thresholded)
	assert.Equal(t, 0.8, cfg.Decoder.Threshold)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), DefaultConfig())
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "model: ibm9\n"), DefaultConfig())
	assert.True(t, errors.Is(err, ErrUnknownPreset))

	_, err = LoadConfig(writeConfig(t, "trainer: [1, 2]\n"), DefaultConfig())
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "symmetrization: grow-diag\n"), DefaultConfig())
	assert.ErrorContains(t, err, "grow-diag")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative iterations", func(c *Config) { c.Trainer.Iterations = -1 }},
		{"negative window", func(c *Config) { c.Trainer.Window = -2 }},
		{"zero smoothing", func(c *Config) { c.Trainer.Smoothing = 0 }},
		{"unknown init", func(c *Config) { c.Trainer.Init = "random" }},
		{"unknown policy", func(c *Config) { c.Symmetrization = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Trainer.Iterations = 0
	assert.NoError(t, cfg.Validate())
}
