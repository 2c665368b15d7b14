package em

import (
	"cmp"
	"encoding/json"
	"slices"
)

type pair struct {
	f, e int
}

// TranslationTable holds t(f|e) for interned (source, target) token pairs.
//
// Pairs that were never stored resolve to the table's fallback, so a missing
// pair and a stored pair with the same value stay distinguishable through
// Lookup.
type TranslationTable struct {
	probs    map[pair]float64
	fallback float64
}

// NewTranslationTable creates an empty table whose missing pairs resolve to fallback.
func NewTranslationTable(fallback float64) *TranslationTable {
	return &TranslationTable{
		probs:    make(map[pair]float64),
		fallback: fallback,
	}
}

// Lookup returns the stored probability of (f, e) and whether it is stored.
func (t *TranslationTable) Lookup(f, e int) (float64, bool) {
	p, ok := t.probs[pair{f, e}]
	return p, ok
}

// Prob returns the probability of (f, e), or the fallback if it is not stored.
func (t *TranslationTable) Prob(f, e int) float64 {
	if p, ok := t.probs[pair{f, e}]; ok {
		return p
	}
	return t.fallback
}

// Set stores the probability of (f, e).
func (t *TranslationTable) Set(f, e int, p float64) {
	t.probs[pair{f, e}] = p
}

// Fallback returns the value of pairs that are not stored.
func (t *TranslationTable) Fallback() float64 {
	return t.fallback
}

// Len returns the number of stored pairs.
func (t *TranslationTable) Len() int {
	return len(t.probs)
}

// Entries returns the stored pairs ordered by source then target ID.
func (t *TranslationTable) Entries() []Entry {
	out := make([]Entry, 0, len(t.probs))
	for k, p := range t.probs {
		out = append(out, Entry{F: k.f, E: k.e, P: p})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(a.F, b.F); c != 0 {
			return c
		}
		return cmp.Compare(a.E, b.E)
	})
	return out
}

// Mass returns the sum of stored probabilities for each target ID.
func (t *TranslationTable) Mass() map[int]float64 {
	mass := make(map[int]float64)
	for k, p := range t.probs {
		mass[k.e] += p
	}
	return mass
}

// Entry is a stored translation probability.
type Entry struct {
	F int     `json:"f"`
	E int     `json:"e"`
	P float64 `json:"p"`
}

type translationJSON struct {
	Fallback float64 `json:"fallback"`
	Entries  []Entry `json:"entries"`
}

// MarshalJSON implements json.Marshaler.
func (t *TranslationTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(translationJSON{
		Fallback: t.fallback,
		Entries:  t.Entries(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TranslationTable) UnmarshalJSON(data []byte) error {
	var raw translationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.fallback = raw.Fallback
	t.probs = make(map[pair]float64, len(raw.Entries))
	for _, en := range raw.Entries {
		t.probs[pair{en.F, en.E}] = en.P
	}
	return nil
}
