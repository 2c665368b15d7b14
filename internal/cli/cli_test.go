package cli

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/happyhackingspace/align"
	"github.com/happyhackingspace/align/alignment"
	"github.com/spf13/cobra"
)

func tarball(t *testing.T, files map[string]string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for name, body := range files {
		hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestExtractTar(t *testing.T) {
	dir := t.TempDir()
	buf := tarball(t, map[string]string{
		"data/hansards.e": "the house\n",
		"data/hansards.f": "la maison\n",
	})

	n, err := extractTar(buf, dir)
	if err != nil {
		t.Fatalf("extractTar: %v", err)
	}
	if n != 2 {
		t.Errorf("extracted %d files, want 2", n)
	}
	got, err := os.ReadFile(filepath.Join(dir, "hansards.f"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "la maison\n" {
		t.Errorf("hansards.f = %q", got)
	}
}

func TestExtractTarRejectsEscape(t *testing.T) {
	dir := t.TempDir()
	buf := tarball(t, map[string]string{"../evil": "x"})
	if _, err := extractTar(buf, dir); err == nil {
		t.Error("extractTar accepted an entry outside the data folder")
	}
}

func newFlagCommand(mf *modelFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	mf.bind(cmd)
	return cmd
}

func TestModelFlagsConfig(t *testing.T) {
	tests := []struct {
		args   []string
		check  func(align.Config) bool
		reason string
	}{
		{nil, func(c align.Config) bool { return c.Model == "hmm" && !c.Decoder.Thresholded }, "defaults to the hmm preset"},
		{[]string{"--model", "ibm1"}, func(c align.Config) bool { return c.Decoder.Thresholded && c.Trainer.NullTarget }, "ibm1 preset"},
		{[]string{"-t", "3", "-n", "50"}, func(c align.Config) bool { return c.Trainer.Iterations == 3 && c.Trainer.MaxSentences == 50 }, "iteration and sentence overrides"},
		{[]string{"--threshold", "0.2"}, func(c align.Config) bool { return c.Decoder.Thresholded && c.Decoder.Threshold == 0.2 }, "threshold enables thresholding"},
		{[]string{"--symmetrize", "union"}, func(c align.Config) bool { return c.Symmetrization == alignment.PolicyUnion }, "policy override"},
		{[]string{"--parallel"}, func(c align.Config) bool { return c.Parallel }, "parallel training"},
	}
	for _, tt := range tests {
		var mf modelFlags
		cmd := newFlagCommand(&mf)
		if err := cmd.ParseFlags(tt.args); err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		cfg, err := mf.config(cmd, "")
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if !tt.check(cfg) {
			t.Errorf("%v: %s failed, got %+v", tt.args, tt.reason, cfg)
		}
	}
}

func TestModelFlagsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "align.yaml")
	if err := os.WriteFile(path, []byte("trainer:\n  iterations: 7\n  window: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var mf modelFlags
	cmd := newFlagCommand(&mf)
	if err := cmd.ParseFlags([]string{"-t", "2"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := mf.config(cmd, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Trainer.Iterations != 2 {
		t.Errorf("iterations = %d, want the flag value 2", cfg.Trainer.Iterations)
	}
	if cfg.Trainer.Window != 3 {
		t.Errorf("window = %d, want the file value 3", cfg.Trainer.Window)
	}
}

func TestModelFlagsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--model", "ibm9"},
		{"--symmetrize", "grow-diag"},
		{"-t", "-1"},
	} {
		var mf modelFlags
		cmd := newFlagCommand(&mf)
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}
		if _, err := mf.config(cmd, ""); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestTrainCommand(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "toy")
	if err := os.WriteFile(prefix+".f", []byte("la maison\nla fleur\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(prefix+".e", []byte("the house\nthe flower\n"), 0644); err != nil {
		t.Fatal(err)
	}
	modelPath := filepath.Join(dir, "model.json")

	c := New("test")
	c.rootCmd.SetArgs([]string{"train", modelPath, "-s", "-d", prefix, "-t", "2"})
	if err := c.Run(); err != nil {
		t.Fatalf("train: %v", err)
	}

	a, err := align.Load(modelPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.Config().Trainer.Iterations != 2 {
		t.Errorf("saved iterations = %d, want 2", a.Config().Trainer.Iterations)
	}
}

func TestUnderscoreFlagNames(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "toy")
	if err := os.WriteFile(prefix+".f", []byte("la maison\nla fleur\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(prefix+".e", []byte("the house\nthe flower\n"), 0644); err != nil {
		t.Fatal(err)
	}
	modelPath := filepath.Join(dir, "model.json")

	c := New("test")
	c.rootCmd.SetArgs([]string{"train", modelPath, "-s", "-d", prefix, "-t", "1", "--num_sentences", "1"})
	if err := c.Run(); err != nil {
		t.Fatalf("train: %v", err)
	}

	a, err := align.Load(modelPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := a.Config().Trainer.MaxSentences; got != 1 {
		t.Errorf("saved max sentences = %d, want 1", got)
	}
}
