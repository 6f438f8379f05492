// Package roots assigns stable identifiers to approximate polynomial roots.
package roots

import "github.com/willbeason/newton-fractal/pkg/cplx"

// Threshold is the distance under which two candidates are the same root.
const Threshold = 0.01

// A Tracker holds the roots discovered so far, in discovery order. A root's id
// is its index. Ids therefore depend on the order candidates are presented in.
//
// Tracker is not safe for concurrent use.
type Tracker struct {
	roots []cplx.Complex
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Identify returns the id of the first known root within Threshold of
// candidate. If there is none, candidate is recorded as a new root and isNew
// is true.
func (t *Tracker) Identify(candidate cplx.Complex) (id int, isNew bool) {
	for i, root := range t.roots {
		if candidate.Sub(root).Abs() < Threshold {
			return i, false
		}
	}

	t.roots = append(t.roots, candidate)
	return len(t.roots) - 1, true
}

// Reset forgets all roots.
func (t *Tracker) Reset() {
	t.roots = t.roots[:0]
}

func (t *Tracker) Len() int {
	return len(t.roots)
}

// Root returns the root with the given id.
func (t *Tracker) Root(id int) cplx.Complex {
	return t.roots[id]
}

// Roots returns a copy of the known roots in id order.
func (t *Tracker) Roots() []cplx.Complex {
	result := make([]cplx.Complex, len(t.roots))
	copy(result, t.roots)
	return result
}
