package em

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// TransitionTable holds q(k) for jump distances k = j - i in [-window, window].
// Jumps outside the window, and in-window jumps whose probability was
// re-estimated to zero, resolve to the smoothing floor.
type TransitionTable struct {
	probs  []float64 // probs[k+window]
	window int
	floor  float64
}

// NewTransitionTable creates a table that is uniform over the window:
// every jump starts at 1/(2*window+1) + smoothing.
func NewTransitionTable(window int, smoothing float64) *TransitionTable {
	n := 2*window + 1
	q := &TransitionTable{
		probs:  make([]float64, n),
		window: window,
		floor:  smoothing,
	}
	for k := range n {
		q.probs[k] = 1.0/float64(n) + smoothing
	}
	return q
}

// Window returns the largest modeled jump distance.
func (q *TransitionTable) Window() int {
	return q.window
}

// InWindow reports whether the jump is modeled.
func (q *TransitionTable) InWindow(jump int) bool {
	return jump >= -q.window && jump <= q.window
}

// Lookup returns the stored probability of a jump and whether it is in the window.
func (q *TransitionTable) Lookup(jump int) (float64, bool) {
	if !q.InWindow(jump) {
		return 0, false
	}
	return q.probs[jump+q.window], true
}

// Prob returns the probability of a jump, never less than the smoothing floor.
func (q *TransitionTable) Prob(jump int) float64 {
	if p, ok := q.Lookup(jump); ok && p > 0 {
		return p
	}
	return q.floor
}

// Set stores the probability of an in-window jump.
func (q *TransitionTable) Set(jump int, p float64) {
	if q.InWindow(jump) {
		q.probs[jump+q.window] = p
	}
}

// Mass returns the sum of the stored in-window probabilities.
func (q *TransitionTable) Mass() float64 {
	return floats.Sum(q.probs)
}

type transitionJSON struct {
	Window int       `json:"window"`
	Floor  float64   `json:"floor"`
	Probs  []float64 `json:"probs"`
}

// MarshalJSON implements json.Marshaler.
func (q *TransitionTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(transitionJSON{
		Window: q.window,
		Floor:  q.floor,
		Probs:  q.probs,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *TransitionTable) UnmarshalJSON(data []byte) error {
	var raw transitionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Probs) != 2*raw.Window+1 {
		return fmt.Errorf("transition table: %d probabilities for window %d", len(raw.Probs), raw.Window)
	}
	q.window = raw.Window
	q.floor = raw.Floor
	q.probs = raw.Probs
	return nil
}
