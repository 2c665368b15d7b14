package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		input     string
		lowercase bool
		want      [][]string
	}{
		{"le chat\nla maison\n", false, [][]string{{"le", "chat"}, {"la", "maison"}}},
		{"Le Chat\n", true, [][]string{{"le", "chat"}}},
		{"a\n\nb", false, [][]string{{"a"}, {}, {"b"}}},
	}
	for _, tt := range tests {
		got, err := Read(strings.NewReader(tt.input), tt.lowercase)
		if err != nil {
			t.Fatalf("Read(%q): %v", tt.input, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("Read(%q) = %d sentences, want %d", tt.input, len(got), len(tt.want))
		}
		for i := range got {
			if len(got[i]) == 0 && len(tt.want[i]) == 0 {
				continue
			}
			if !reflect.DeepEqual(got[i], tt.want[i]) {
				t.Errorf("Read(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestNewShapeMismatch(t *testing.T) {
	_, err := New([][]string{{"a"}, {"b"}}, [][]string{{"x"}})
	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("New error = %v, want *ShapeError", err)
	}
	if shape.Source != 2 || shape.Target != 1 {
		t.Errorf("ShapeError = %+v, want 2 source, 1 target", shape)
	}
}

func writeCorpus(t *testing.T, source, target string) *Storage {
	t.Helper()
	dir := t.TempDir()
	prefix := filepath.Join(dir, "hansards")
	if err := os.WriteFile(prefix+".f", []byte(source), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(prefix+".e", []byte(target), 0644); err != nil {
		t.Fatal(err)
	}
	return NewStorage(prefix, "f", "e")
}

func TestStorageLoad(t *testing.T) {
	s := writeCorpus(t, "la maison\nle Chat\n", "the house\nthe cat\n")

	c, err := s.Load(DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if got := c.Source[1]; !reflect.DeepEqual(got, []string{"le", "Chat"}) {
		t.Errorf("Source[1] = %v", got)
	}

	c, err = s.Load(LoadOptions{Lowercase: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Source[1]; !reflect.DeepEqual(got, []string{"le", "chat"}) {
		t.Errorf("Source[1] lowercased = %v", got)
	}
	if got := c.Target[0]; !reflect.DeepEqual(got, []string{"the", "house"}) {
		t.Errorf("Target[0] = %v", got)
	}
}

func TestStorageLoadErrors(t *testing.T) {
	s := writeCorpus(t, "a\nb\nc\n", "x\n")
	_, err := s.Load(DefaultLoadOptions())
	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Errorf("Load error = %v, want *ShapeError", err)
	}

	missing := NewStorage(filepath.Join(t.TempDir(), "none"), "f", "e")
	if _, err := missing.Load(DefaultLoadOptions()); err == nil {
		t.Error("Load of missing files succeeded")
	}
}

func TestStoragePaths(t *testing.T) {
	s := NewStorage("data/hansards", "f", "e")
	if s.SourcePath() != "data/hansards.f" || s.TargetPath() != "data/hansards.e" {
		t.Errorf("paths = %q, %q", s.SourcePath(), s.TargetPath())
	}
}

func TestComputeStats(t *testing.T) {
	c := &Corpus{
		Source: [][]string{{"a", "b", "a"}, {}},
		Target: [][]string{{"x"}, {"y", "z"}},
	}
	got := c.ComputeStats()
	want := Stats{
		Pairs:          2,
		SourceTokens:   3,
		TargetTokens:   3,
		SourceVocab:    2,
		TargetVocab:    3,
		EmptySource:    1,
		MaxSourceWords: 3,
		MaxTargetWords: 2,
	}
	if got != want {
		t.Errorf("ComputeStats = %+v, want %+v", got, want)
	}
}
