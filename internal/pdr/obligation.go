// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package pdr

import (
	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/satsolv"
)

// queryFor opens a consecution_solver query with the activators that
// belong to level k already assumed: A_trans alone selects the direct
// one-step relation T; at k==1 the split is over left_trans/right_trans
// alone; at k>=2 the already-blocked arrows from frames [k-1, depth]
// are assumed too, so the solver avoids middle states already ruled
// out (spec.md §4.8).
func (v *Verifier) queryFor(k int) *satsolv.Query {
	q := v.conSolver.NewQuery()
	switch {
	case k == 0:
		q.Assume(v.transAct.Pos())
	case k == 1:
		q.Assume(v.leftAct.Pos(), v.rightAct.Pos())
	default:
		q.Assume(v.leftAct.Pos(), v.rightAct.Pos())
		q.Assume(v.activatorsFrom(k - 1)...)
	}
	return q
}

// solveObligation returns true iff a real counterexample rooted at
// (h, k) is confirmed, recording the concrete path (splits and
// witnessed inputs) into the node pool as it goes (spec.md §4.8).
func (v *Verifier) solveObligation(h handle, k int) bool {
	n := v.pool.get(h)
	if n.s.Equal(n.t) {
		return true
	}

	edgeQ := v.queryFor(0)
	edgeQ.AssumeCube(n.s)
	edgeQ.AssumeMapped(n.t, v.sys.Prime)
	if edgeQ.IsSat() {
		n.input = edgeQ.ModelCube(v.sys.Y)
		n.hasInput = true
		return true
	}
	if k == 0 {
		v.generalizeAndBlock(n, 0, edgeQ)
		return false
	}

	if k == 1 {
		pq := v.queryFor(1)
		pq.AssumeCube(n.s)
		pq.AssumeMapped(n.t, v.sys.Prime)
		if pq.IsSat() {
			mid := v.shifts.uncircleCube(v.sys, pq.ModelCube(v.shifts.mid))
			leftIn := pq.ModelCube(v.sys.Y)
			rightIn := pq.ModelCube(v.shifts.rightIn).Map(offsetMap(v.shifts.rightIn, v.sys.Y))
			lh := v.pool.new(n.s, mid)
			ln := v.pool.get(lh)
			ln.input, ln.hasInput = leftIn, true
			rh := v.pool.new(mid, n.t)
			rn := v.pool.get(rh)
			rn.input, rn.hasInput = rightIn, true
			n = v.pool.get(h) // the pool may have been reallocated by new
			n.left, n.right = lh, rh
			return true
		}
		v.generalizeAndBlock(n, 1, pq)
		return false
	}

	for {
		sq := v.queryFor(k)
		sq.AssumeCube(n.s)
		sq.AssumeMapped(n.t, v.sys.Prime)
		if sq.IsUnsat() {
			v.generalizeAndBlock(n, k, sq)
			return false
		}
		mid := v.shifts.uncircleCube(v.sys, sq.ModelCube(v.shifts.mid))
		lh := v.pool.new(n.s, mid)
		rh := v.pool.new(mid, n.t)
		if v.solveObligation(lh, k-1) && v.solveObligation(rh, k-1) {
			n = v.pool.get(h) // the pool may have been reallocated by new
			n.left, n.right = lh, rh
			return true
		}
		// A child didn't pan out (the right one is not tried once the
		// left one fails); block_arrow_at ran inside that recursion, so
		// the next queryFor(k) avoids this middle state.
	}
}

func (v *Verifier) generalizeAndBlock(n *node, k int, q *satsolv.Query) {
	c, d := v.generalizeBlockedArrow(n.s, n.t, k, q)
	v.blockArrowAt(c, d, k, 1)
}

// generalizeBlockedArrow produces (c, d) with c ⊆ s, d ⊆ t per
// spec.md §4.8: seeded from the failed-literal core of the query that
// just proved (s, t) has no path at level k, repaired for disjointness,
// then strengthened literal-by-literal until c ∧ T ∧ d′ is itself
// unsat.
func (v *Verifier) generalizeBlockedArrow(s, t cnf.Cube, k int, q *satsolv.Query) (c, d cnf.Cube) {
	c = cnf.NewCubeSorted(append([]z.Lit(nil), q.CoreOf(s)...))
	tPrimed := t.Map(v.sys.Prime)
	d = cnf.NewCubeSorted(append([]z.Lit(nil), q.CoreOf(tPrimed)...)).Map(v.sys.Unprime)

	if cubesIntersect(c, d) {
		lit, ok := firstDisagreement(s, t)
		if !ok {
			panic("pdr: generalization needs a disagreeing literal between distinct s and t")
		}
		c = insertLit(c, lit)
		d = insertLit(d, lit.Not())
	}

	for {
		tq := v.conSolver.NewQuery()
		tq.Assume(v.transAct.Pos())
		tq.AssumeCube(c)
		tq.AssumeMapped(d, v.sys.Prime)
		if tq.IsUnsat() {
			break
		}
		cConflict, hasC := findConflict(s, c, tq, identity)
		dConflict, hasD := findConflict(t, d, tq, v.sys.Prime)
		switch {
		case hasC && hasD:
			if v.choose() {
				c = insertLit(c, cConflict)
			} else {
				d = insertLit(d, dConflict)
			}
		case hasC:
			c = insertLit(c, cConflict)
		case hasD:
			d = insertLit(d, dConflict)
		default:
			panic("pdr: generalization stalled: no conflicting literal in either projection")
		}
	}

	post := v.queryFor(k)
	post.AssumeCube(c)
	post.AssumeMapped(d, v.sys.Prime)
	if post.IsSat() {
		panic("pdr: generalized arrow failed its own post-condition")
	}
	return c, d
}

func identity(m z.Lit) z.Lit { return m }

// findConflict scans full (an original state cube) for the first
// literal not already present in cur whose image under mapFn
// disagrees with tq's model; it is the concrete witness that cur is
// still too weak to rule out tq's model.
func findConflict(full, cur cnf.Cube, tq *satsolv.Query, mapFn func(z.Lit) z.Lit) (z.Lit, bool) {
	for _, lit := range full {
		if cur.Contains(lit) {
			continue
		}
		mapped := mapFn(lit)
		if tq.Value(mapped.Var().Pos()) != lit.IsPos() {
			return lit, true
		}
	}
	return z.LitNull, false
}

// choose picks which side of a disjoint split receives a conflict
// literal when both a c-conflict and a d-conflict exist, honoring any
// forced --left/--right preference.
func (v *Verifier) choose() bool {
	switch v.pref {
	case PreferLeft:
		return true
	case PreferRight:
		return false
	default:
		return v.rng.Intn(2) == 0
	}
}

func insertLit(c cnf.Cube, lit z.Lit) cnf.Cube {
	lits := make([]z.Lit, len(c)+1)
	copy(lits, c)
	lits[len(c)] = lit
	return cnf.NewCube(lits)
}

// cubesIntersect reports whether a and b, both in cube order, share
// any literal (exact variable-and-polarity match).
func cubesIntersect(a, b cnf.Cube) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case cnf.Less(a[i], b[j]):
			i++
		case cnf.Less(b[j], a[i]):
			j++
		default:
			if a[i] == b[j] {
				return true
			}
			i++
			j++
		}
	}
	return false
}

// firstDisagreement returns the first literal of s whose variable also
// appears in t with the opposite polarity.
func firstDisagreement(s, t cnf.Cube) (z.Lit, bool) {
	i, j := 0, 0
	for i < len(s) && j < len(t) {
		sv, tv := s[i].Var(), t[j].Var()
		switch {
		case sv < tv:
			i++
		case sv > tv:
			j++
		default:
			if s[i] != t[j] {
				return s[i], true
			}
			i++
			j++
		}
	}
	return z.LitNull, false
}
