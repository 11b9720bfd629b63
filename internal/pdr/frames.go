// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package pdr

import (
	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
)

// arrow is a blocked pair of state cubes (c, d), meaning "no TF[k-1]
// path from any state in c reaches any state in d" for the frame k it
// is recorded in (spec.md §3).
type arrow struct {
	c, d cnf.Cube
}

// frame is one entry of the blocked-arrow trace, indexed 0..depth. Its
// activator literal selects whether its arrows are enforced in a
// given query.
type frame struct {
	act    z.Var
	arrows []arrow
}

// pushFrame appends a new, empty frame with a fresh activator and
// returns its index, which becomes the verifier's new depth.
func (v *Verifier) pushFrame() int {
	f := frame{act: v.store.Fresh()}
	v.frames = append(v.frames, f)
	v.depth = len(v.frames) - 1
	return v.depth
}

// activatorsFrom returns the positive activator literals for every
// frame from k through the current depth inclusive: assuming this set
// selects TF[k] (spec.md §4.7).
func (v *Verifier) activatorsFrom(k int) []z.Lit {
	if k < 0 {
		k = 0
	}
	out := make([]z.Lit, 0, v.depth-k+1)
	for j := k; j <= v.depth; j++ {
		out = append(out, v.frames[j].act.Pos())
	}
	return out
}

// blockArrowAt records (c, d) as blocked at frame k: it first retires
// every arrow at frames [start, k] that (c, d) subsumes componentwise,
// then appends (c, d) to frame k and asserts the three activated
// clauses spec.md §4.8 describes into error_solver and
// consecution_solver.
func (v *Verifier) blockArrowAt(c, d cnf.Cube, k, start int) {
	for j := start; j <= k; j++ {
		fr := &v.frames[j]
		kept := fr.arrows[:0]
		for _, a := range fr.arrows {
			if c.Subsumes(a.c) && d.Subsumes(a.d) {
				continue // (c,d) is more general: a is redundant.
			}
			kept = append(kept, a)
		}
		fr.arrows = kept
	}
	v.frames[k].arrows = append(v.frames[k].arrows, arrow{c: c.Clone(), d: d.Clone()})
	act := v.frames[k].act

	primedD := d.Map(v.sys.Prime)
	var errClause []z.Lit
	for _, m := range c {
		errClause = append(errClause, m.Not())
	}
	for _, m := range primedD {
		errClause = append(errClause, m.Not())
	}
	errClause = append(errClause, act.Pos().Not())
	var eb cnf.Builder
	eb.AddClause(errClause...)
	v.errSolver.Assert(eb.CNF())

	circleC := v.shifts.circleCube(v.sys, c)
	circleD := v.shifts.circleCube(v.sys, d)

	var cb1 []z.Lit
	for _, m := range c {
		cb1 = append(cb1, m.Not())
	}
	for _, m := range circleD {
		cb1 = append(cb1, m.Not())
	}
	cb1 = append(cb1, act.Pos().Not())

	var cb2 []z.Lit
	for _, m := range primedD {
		cb2 = append(cb2, m.Not())
	}
	for _, m := range circleC {
		cb2 = append(cb2, m.Not())
	}
	cb2 = append(cb2, act.Pos().Not())

	var conb cnf.Builder
	conb.AddClause(cb1...)
	conb.AddClause(cb2...)
	v.conSolver.Assert(conb.CNF())
}

// propagate tries to push every blocked arrow one frame forward. It
// returns true once some frame empties out entirely, which certifies
// an inductive invariant separating Init from Error (spec.md §4.8).
func (v *Verifier) propagate() bool {
	for j := 1; j < v.depth; j++ {
		snapshot := make([]arrow, len(v.frames[j].arrows))
		copy(snapshot, v.frames[j].arrows)
		for _, a := range snapshot {
			q := v.conSolver.NewQuery()
			q.Assume(v.leftAct.Pos(), v.rightAct.Pos())
			q.Assume(v.activatorsFrom(j)...)
			q.AssumeCube(a.c)
			q.AssumeMapped(a.d, v.sys.Prime)
			if q.IsUnsat() {
				v.blockArrowAt(a.c, a.d, j+1, j)
			}
		}
		if len(v.frames[j].arrows) == 0 {
			return true
		}
	}
	return false
}
