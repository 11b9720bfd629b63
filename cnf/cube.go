// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package cnf

import (
	"sort"
	"slices"

	"github.com/go-air/gini/z"
)

// Cube is a conjunction of literals (a product term), stored as a
// vector sorted by the cube ordering: by variable id ascending, ties
// broken with the negative literal before the positive one. Sorting
// this way makes Subsumes a single merge-style subset scan and makes
// cube equality syntactic.
type Cube []z.Lit

// Less is the cube ordering: l1 < l2 iff var(l1) < var(l2), or they
// share a variable and l1 is negative while l2 is positive.
func Less(a, b z.Lit) bool {
	va, vb := a.Var(), b.Var()
	if va != vb {
		return va < vb
	}
	return !a.IsPos() && b.IsPos()
}

// IsSorted reports whether lits is already in cube order, allowing
// callers that know their input is sorted (e.g. a model read off in
// variable order) to skip the sort.
func IsSorted(lits []z.Lit) bool {
	for i := 1; i < len(lits); i++ {
		if !Less(lits[i-1], lits[i]) {
			return false
		}
	}
	return true
}

// NewCube sorts lits into cube order and returns the result. The input
// slice is copied; lits is not mutated.
func NewCube(lits []z.Lit) Cube {
	c := make(Cube, len(lits))
	copy(c, lits)
	sort.Slice(c, func(i, j int) bool { return Less(c[i], c[j]) })
	return c
}

// NewCubeSorted wraps an already-sorted slice as a Cube without
// re-sorting it. Callers must guarantee IsSorted(lits).
func NewCubeSorted(lits []z.Lit) Cube {
	return Cube(lits)
}

// Subsumes reports whether the literal set of c is a subset of that of
// other. If c.Subsumes(other), then d |= c for any satisfying
// assignment d of other: a newly blocked cube that is syntactically
// smaller may retire larger ones recorded earlier.
func (c Cube) Subsumes(other Cube) bool {
	i, j := 0, 0
	for i < len(c) {
		if j >= len(other) {
			return false
		}
		switch {
		case c[i] == other[j]:
			i++
			j++
		case Less(other[j], c[i]):
			j++
		default:
			return false
		}
	}
	return true
}

// Contains reports whether lit appears in c.
func (c Cube) Contains(lit z.Lit) bool {
	i := sort.Search(len(c), func(i int) bool { return !Less(c[i], lit) })
	return i < len(c) && c[i] == lit
}

// Find returns the literal of variable v in c, if any.
func (c Cube) Find(v z.Var) (z.Lit, bool) {
	i := sort.Search(len(c), func(i int) bool { return c[i].Var() >= v })
	if i < len(c) && c[i].Var() == v {
		return c[i], true
	}
	return z.LitNull, false
}

// Negate returns the single-clause CNF that is the pointwise negation
// of c: the clause that blocks exactly the states c describes.
func (c Cube) Negate() CNF {
	out := make(CNF, 0, len(c)+1)
	for _, m := range c {
		out = append(out, m.Not())
	}
	out = append(out, z.LitNull)
	return out
}

// Equal reports whether c and other contain exactly the same
// literals in the same order; because both are kept in cube order,
// this is syntactic equality and stands in for set equality.
func (c Cube) Equal(other Cube) bool {
	return slices.Equal(c, other)
}

// Map returns a new Cube with f applied to every literal, re-sorted
// into cube order (f need not be order-preserving, e.g. priming a
// cube changes the underlying variables entirely).
func (c Cube) Map(f func(z.Lit) z.Lit) Cube {
	out := make([]z.Lit, len(c))
	for i, m := range c {
		out[i] = f(m)
	}
	return NewCube(out)
}

// Clone returns a copy of c.
func (c Cube) Clone() Cube {
	out := make(Cube, len(c))
	copy(out, c)
	return out
}
