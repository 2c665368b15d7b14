// Package corpus reads sentence-aligned parallel text.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/happyhackingspace/align/em"
	"github.com/happyhackingspace/align/internal/textutil"
)

// Corpus holds source and target sentences paired by line.
type Corpus struct {
	Source [][]string
	Target [][]string
}

// Len returns the number of sentence pairs.
func (c *Corpus) Len() int {
	return len(c.Source)
}

// ShapeError reports corpora with different sentence counts.
type ShapeError struct {
	Source int
	Target int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("corpus shape mismatch: %d source sentences, %d target sentences", e.Source, e.Target)
}

// Storage locates a corpus as "<prefix>.<suffix>" files.
type Storage struct {
	Prefix       string
	SourceSuffix string
	TargetSuffix string
}

// NewStorage creates a Storage for the given prefix and language suffixes.
func NewStorage(prefix, sourceSuffix, targetSuffix string) *Storage {
	return &Storage{
		Prefix:       prefix,
		SourceSuffix: sourceSuffix,
		TargetSuffix: targetSuffix,
	}
}

// SourcePath returns the source file path.
func (s *Storage) SourcePath() string {
	return s.Prefix + "." + s.SourceSuffix
}

// TargetPath returns the target file path.
func (s *Storage) TargetPath() string {
	return s.Prefix + "." + s.TargetSuffix
}

// LoadOptions controls how sentences are read.
type LoadOptions struct {
	Lowercase bool
}

// DefaultLoadOptions returns the options that read tokens verbatim.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{}
}

// Load reads both sides of the corpus. It fails before returning any
// sentences if either file is unreadable or their line counts differ.
func (s *Storage) Load(opts LoadOptions) (*Corpus, error) {
	src, err := ReadFile(s.SourcePath(), opts.Lowercase)
	if err != nil {
		return nil, err
	}
	tgt, err := ReadFile(s.TargetPath(), opts.Lowercase)
	if err != nil {
		return nil, err
	}
	c, err := New(src, tgt)
	if err != nil {
		return nil, err
	}
	slog.Debug("Corpus loaded", "source", s.SourcePath(), "target", s.TargetPath(), "pairs", c.Len())
	return c, nil
}

// New pairs already tokenized sentences.
func New(source, target [][]string) (*Corpus, error) {
	if len(source) != len(target) {
		return nil, &ShapeError{Source: len(source), Target: len(target)}
	}
	return &Corpus{Source: source, Target: target}, nil
}

// ReadFile reads one whitespace-tokenized sentence per line.
func ReadFile(path string, lowercase bool) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	sentences, err := Read(f, lowercase)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return sentences, nil
}

// Read reads one whitespace-tokenized sentence per line.
func Read(r io.Reader, lowercase bool) ([][]string, error) {
	var sentences [][]string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		tokens := textutil.Tokenize(sc.Text())
		if lowercase {
			tokens = textutil.NormalizeAll(tokens)
		}
		sentences = append(sentences, tokens)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

// Stats summarizes a corpus.
type Stats struct {
	Pairs          int
	SourceTokens   int
	TargetTokens   int
	SourceVocab    int
	TargetVocab    int
	EmptySource    int
	EmptyTarget    int
	MaxSourceWords int
	MaxTargetWords int
}

// ComputeStats counts tokens, vocabulary sizes and empty lines on each side.
func (c *Corpus) ComputeStats() Stats {
	st := Stats{Pairs: c.Len()}
	st.SourceTokens, st.SourceVocab, st.EmptySource, st.MaxSourceWords = sideStats(c.Source)
	st.TargetTokens, st.TargetVocab, st.EmptyTarget, st.MaxTargetWords = sideStats(c.Target)
	return st
}

func sideStats(sentences [][]string) (tokens, vocab, empty, longest int) {
	v := em.NewVocab()
	for _, s := range sentences {
		if len(s) == 0 {
			empty++
		}
		longest = max(longest, len(s))
		tokens += len(s)
		for _, tok := range s {
			v.Add(tok)
		}
	}
	return tokens, v.Size(), empty, longest
}
