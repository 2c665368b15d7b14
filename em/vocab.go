package em

import "encoding/json"

// Vocab maps between tokens and dense integer IDs.
type Vocab struct {
	ToID  map[string]int
	ToStr []string
}

// NewVocab creates an empty vocabulary.
func NewVocab() *Vocab {
	return &Vocab{
		ToID: make(map[string]int),
	}
}

// Add adds a token if not already present and returns its ID.
func (v *Vocab) Add(token string) int {
	if id, ok := v.ToID[token]; ok {
		return id
	}
	id := len(v.ToStr)
	v.ToID[token] = id
	v.ToStr = append(v.ToStr, token)
	return id
}

// Get returns the ID for a token, or -1 if not found.
func (v *Vocab) Get(token string) int {
	if id, ok := v.ToID[token]; ok {
		return id
	}
	return -1
}

// Token returns the token for an ID, or "" if out of range.
func (v *Vocab) Token(id int) string {
	if id < 0 || id >= len(v.ToStr) {
		return ""
	}
	return v.ToStr[id]
}

// Size returns the number of entries.
func (v *Vocab) Size() int {
	return len(v.ToStr)
}

// Intern adds every token of the sentences and returns their IDs.
func (v *Vocab) Intern(sentences [][]string) [][]int {
	out := make([][]int, len(sentences))
	for i, s := range sentences {
		ids := make([]int, len(s))
		for j, tok := range s {
			ids[j] = v.Add(tok)
		}
		out[i] = ids
	}
	return out
}

// Lookup maps a sentence to IDs without growing the vocabulary.
// Unknown tokens map to -1.
func (v *Vocab) Lookup(sentence []string) []int {
	ids := make([]int, len(sentence))
	for i, tok := range sentence {
		ids[i] = v.Get(tok)
	}
	return ids
}

// MarshalJSON implements json.Marshaler. Only the ordered token list is
// written; IDs are positions in that list.
func (v *Vocab) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToStr)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Vocab) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	v.ToStr = tokens
	v.ToID = make(map[string]int, len(tokens))
	for i, tok := range tokens {
		v.ToID[tok] = i
	}
	return nil
}
