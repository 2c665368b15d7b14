package em

import (
	"gonum.org/v1/gonum/floats"

	"github.com/happyhackingspace/align/alignment"
)

// DecoderConfig controls how decoded links are filtered.
type DecoderConfig struct {
	// Thresholded drops source positions whose best score does not exceed
	// Threshold instead of emitting them as unaligned.
	Thresholded bool    `yaml:"thresholded" json:"thresholded"`
	Threshold   float64 `yaml:"threshold" json:"threshold"`
}

// Decoder picks the best target position for each source position.
//
// Positions are decoded independently of each other. The jump model
// contributes q(j-i) to each score but no path constraint.
type Decoder struct {
	model  *Model
	config DecoderConfig
}

// NewDecoder creates a decoder over trained tables.
func NewDecoder(model *Model, config DecoderConfig) *Decoder {
	return &Decoder{model: model, config: config}
}

// Decode returns one link per source position, ordered by source position.
//
// Ties keep the first target position. Without thresholding, a source
// position with no positive score is linked to alignment.Unaligned. With
// thresholding, it is omitted.
func (d *Decoder) Decode(src, tgt []int) []alignment.Link {
	links := make([]alignment.Link, 0, len(src))
	scores := make([]float64, len(tgt))

	for i, f := range src {
		best := alignment.Unaligned
		bestScore := 0.0
		if len(tgt) > 0 {
			for j, e := range tgt {
				scores[j] = d.model.score(f, e, j-i)
			}
			best = floats.MaxIdx(scores)
			bestScore = scores[best]
		}

		if d.config.Thresholded {
			if best != alignment.Unaligned && bestScore > d.config.Threshold {
				links = append(links, alignment.Link{I: i, J: best})
			}
			continue
		}
		if bestScore <= 0 {
			best = alignment.Unaligned
		}
		links = append(links, alignment.Link{I: i, J: best})
	}
	return links
}

// DecodeAll decodes every sentence pair.
func (d *Decoder) DecodeAll(src, tgt [][]int) [][]alignment.Link {
	out := make([][]alignment.Link, len(src))
	for k := range src {
		out[k] = d.Decode(src[k], tgt[k])
	}
	return out
}
