// Package em implements EM-trained word alignment models.
//
// One engine covers both model families: IBM Model 1, which scores a link by
// its translation probability alone, and a jump model, which multiplies the
// translation probability by the probability of the distance between the
// target and source positions. Decoding picks the best target position for
// each source position independently; it is not a Viterbi search over a
// hidden state chain.
package em

import "errors"

const (
	// DefaultSmoothing floors zero normalizers and out-of-window jumps.
	DefaultSmoothing = 1e-10
	// DefaultWindow is the largest jump distance the transition table models.
	DefaultWindow = 10
	// NullToken is the synthetic empty word.
	NullToken = "NULL"
)

// ErrShape reports source and target corpora of different lengths.
var ErrShape = errors.New("source and target sentence counts differ")
