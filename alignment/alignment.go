// Package alignment holds word alignment links and the operations that
// combine, format and score them.
package alignment

import (
	"cmp"
	"fmt"
	"slices"
)

// Unaligned marks a source position linked to no target position.
const Unaligned = -1

// Link connects source position I to target position J.
type Link struct {
	I int
	J int
}

// Aligned reports whether both ends of the link are real positions.
func (l Link) Aligned() bool {
	return l.I >= 0 && l.J >= 0
}

// Swap exchanges the source and target positions.
func (l Link) Swap() Link {
	return Link{I: l.J, J: l.I}
}

func (l Link) String() string {
	return fmt.Sprintf("%d-%d", l.I, l.J)
}

// Policy selects how the two directional alignments are combined.
type Policy string

const (
	// PolicyIntersection keeps links found in both directions.
	PolicyIntersection Policy = "intersection"
	// PolicyUnion keeps links found in either direction.
	PolicyUnion Policy = "union"
	// PolicyMerge starts from the forward links and adds the backward links
	// not already present. It yields the same set as PolicyUnion.
	PolicyMerge Policy = "merge"
	// PolicyForward keeps the forward links only; no backward model is trained.
	PolicyForward Policy = "forward"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyIntersection, PolicyUnion, PolicyMerge, PolicyForward:
		return p, nil
	}
	return "", fmt.Errorf("unknown symmetrization policy %q", s)
}

// Bidirectional reports whether the policy needs the backward direction.
func (p Policy) Bidirectional() bool {
	return p != PolicyForward
}

// Symmetrize combines forward links (source, target) with backward links
// (target, source) for the same sentence pair. Unaligned links are dropped.
// The result is sorted by source then target position.
func Symmetrize(forward, backward []Link, policy Policy) []Link {
	fwd := aligned(forward)
	bwd := SwapAll(aligned(backward))

	switch policy {
	case PolicyIntersection:
		return Intersect(fwd, bwd)
	case PolicyUnion:
		return Union(fwd, bwd)
	case PolicyForward:
		return Sort(dedupe(fwd))
	default:
		return Merge(fwd, bwd)
	}
}

// Intersect returns the links present in both a and b.
func Intersect(a, b []Link) []Link {
	inB := toSet(b)
	out := make([]Link, 0, min(len(a), len(b)))
	for _, l := range dedupe(a) {
		if _, ok := inB[l]; ok {
			out = append(out, l)
		}
	}
	return Sort(out)
}

// Union returns the links present in a or b.
func Union(a, b []Link) []Link {
	set := toSet(a)
	for _, l := range b {
		set[l] = struct{}{}
	}
	out := make([]Link, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	return Sort(out)
}

// Merge adds to forward every backward link it lacks. Duplicates are
// detected against the forward links first.
func Merge(forward, backward []Link) []Link {
	out := dedupe(forward)
	seen := toSet(out)
	for _, l := range backward {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return Sort(out)
}

// SwapAll swaps every link.
func SwapAll(links []Link) []Link {
	out := make([]Link, len(links))
	for i, l := range links {
		out[i] = l.Swap()
	}
	return out
}

// Sort orders links by source then target position, in place.
func Sort(links []Link) []Link {
	slices.SortFunc(links, func(a, b Link) int {
		if c := cmp.Compare(a.I, b.I); c != 0 {
			return c
		}
		return cmp.Compare(a.J, b.J)
	})
	return links
}

func aligned(links []Link) []Link {
	out := make([]Link, 0, len(links))
	for _, l := range links {
		if l.Aligned() {
			out = append(out, l)
		}
	}
	return out
}

func dedupe(links []Link) []Link {
	seen := make(map[Link]struct{}, len(links))
	out := make([]Link, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func toSet(links []Link) map[Link]struct{} {
	set := make(map[Link]struct{}, len(links))
	for _, l := range links {
		set[l] = struct{}{}
	}
	return set
}
