// Package align estimates word alignments between parallel sentences.
//
// It trains EM alignment models in both translation directions and
// symmetrizes their decoded alignments into one set of links per sentence
// pair.
//
//	cfg, _ := align.Preset("hmm")
//	a, _ := align.Train(source, target, cfg)
//	links := a.Align(source[0], target[0])
//	fmt.Println(alignment.Format(links)) // "0-0 1-2 2-1"
package align

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/happyhackingspace/align/alignment"
	"github.com/happyhackingspace/align/em"
)

// ErrNotTrained reports an Aligner without a forward model.
var ErrNotTrained = errors.New("aligner not trained")

// Aligner holds the vocabularies and directional models of a trained aligner.
type Aligner struct {
	config   Config
	source   *em.Vocab
	target   *em.Vocab
	forward  *em.Model
	backward *em.Model // nil when the policy is forward-only
}

// Config returns the configuration the aligner was trained with.
func (a *Aligner) Config() Config {
	return a.config
}

// Align returns the symmetrized links of one sentence pair. Tokens unseen in
// training resolve to the tables' fallback probabilities.
//
// With Config.NullSource, em.NullToken is put in front of the source sentence
// unless it is already there. Source positions in the result never count it.
func (a *Aligner) Align(source, target []string) []alignment.Link {
	if a.config.NullSource {
		source = withNull(source)
	}
	src := a.source.Lookup(source)
	tgt := a.target.Lookup(target)

	fwd := em.NewDecoder(a.forward, a.config.Decoder).Decode(src, tgt)
	var bwd []alignment.Link
	if a.backward != nil {
		bwd = em.NewDecoder(a.backward, a.config.Decoder).Decode(tgt, src)
	}
	links := alignment.Symmetrize(fwd, bwd, a.config.Symmetrization)
	if a.config.NullSource {
		links = dropNullSource(links)
	}
	return links
}

// AlignCorpus aligns the first Trainer.MaxSentences pairs, or every pair if
// the cap is not set.
func (a *Aligner) AlignCorpus(source, target [][]string) ([][]alignment.Link, error) {
	if a.forward == nil {
		return nil, fmt.Errorf("align: %w", ErrNotTrained)
	}
	if len(source) != len(target) {
		return nil, fmt.Errorf("align: %w: %d source, %d target", em.ErrShape, len(source), len(target))
	}
	n := capped(len(source), a.config.Trainer.MaxSentences)

	out := make([][]alignment.Link, n)
	for k := range n {
		out[k] = a.Align(source[k], target[k])
	}
	return out, nil
}

// withNull returns the sentence with em.NullToken in front. A sentence that
// already starts with it is returned as is.
func withNull(sentence []string) []string {
	if len(sentence) > 0 && sentence[0] == em.NullToken {
		return sentence
	}
	out := make([]string, 0, len(sentence)+1)
	out = append(out, em.NullToken)
	return append(out, sentence...)
}

func dropNullSource(links []alignment.Link) []alignment.Link {
	out := links[:0]
	for _, l := range links {
		if l.I == 0 {
			continue
		}
		out = append(out, alignment.Link{I: l.I - 1, J: l.J})
	}
	return out
}

func capped(n, limit int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}

type alignerJSON struct {
	Config   Config    `json:"config"`
	Source   *em.Vocab `json:"source_vocab"`
	Target   *em.Vocab `json:"target_vocab"`
	Forward  *em.Model `json:"forward"`
	Backward *em.Model `json:"backward,omitempty"`
}

// Load loads a trained aligner from a model file.
func Load(path string) (*Aligner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	var raw alignerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("align: parse %s: %w", path, err)
	}
	if raw.Forward == nil || raw.Forward.Translation == nil || raw.Source == nil || raw.Target == nil {
		return nil, fmt.Errorf("align: %s: %w", path, ErrNotTrained)
	}
	if raw.Backward != nil && raw.Backward.Translation == nil {
		return nil, fmt.Errorf("align: %s: backward model has no translation table", path)
	}
	if err := raw.Config.Validate(); err != nil {
		return nil, fmt.Errorf("align: %s: %w", path, err)
	}
	if raw.Config.Symmetrization.Bidirectional() && raw.Backward == nil {
		return nil, fmt.Errorf("align: %s: policy %q needs a backward model", path, raw.Config.Symmetrization)
	}
	return &Aligner{
		config:   raw.Config,
		source:   raw.Source,
		target:   raw.Target,
		forward:  raw.Forward,
		backward: raw.Backward,
	}, nil
}

// Save writes the aligner to a model file.
func (a *Aligner) Save(path string) error {
	if a.forward == nil {
		return fmt.Errorf("align: %w", ErrNotTrained)
	}
	data, err := json.Marshal(alignerJSON{
		Config:   a.config,
		Source:   a.source,
		Target:   a.target,
		Forward:  a.forward,
		Backward: a.backward,
	})
	if err != nil {
		return fmt.Errorf("align: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("align: %w", err)
	}
	return nil
}
