// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package aigbuild

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// errorCOI computes the backward fixed point of spec.md §4.5's
// error_coi starting from errLit: the set of surviving latch
// variables (those the error literal actually depends on) and the set
// of AND-gate variables that must be clausified to express Init,
// Trans, and Error over just those latches.
//
// Latches can reach forward past AND gates with larger declaration
// indices than their own (a latch's next-state function is an
// arbitrary literal, not necessarily one declared before the latch),
// so a single reverse pass over the AND gates followed by a single
// pass over the latches is not enough; this iterates to a fixed
// point.
func errorCOI(sys *logic.S, errLit z.Lit, trueLits map[z.Lit]bool) (latches, ands map[z.Var]bool) {
	required := make(map[z.Var]bool)
	mark := func(m z.Lit) bool {
		v := m.Var()
		if required[v] {
			return false
		}
		required[v] = true
		return true
	}
	mark(errLit)

	n := sys.Len()
	for changed := true; changed; {
		changed = false
		for i := n - 1; i >= 1; i-- {
			m := sys.At(i)
			if sys.Type(m) != logic.SAnd {
				continue
			}
			if !required[m.Var()] {
				continue
			}
			if trueLits[m] || trueLits[m.Not()] {
				continue
			}
			rhs0, rhs1 := sys.Ins(m)
			if mark(rhs0) {
				changed = true
			}
			if mark(rhs1) {
				changed = true
			}
		}
		for _, lat := range sys.Latches {
			if !required[lat.Var()] {
				continue
			}
			if mark(sys.Next(lat)) {
				changed = true
			}
		}
	}

	latches = make(map[z.Var]bool)
	ands = make(map[z.Var]bool)
	for _, lat := range sys.Latches {
		v := lat.Var()
		if required[v] && !trueLits[lat] && !trueLits[lat.Not()] {
			latches[v] = true
		}
	}
	for i := 1; i < n; i++ {
		m := sys.At(i)
		if sys.Type(m) != logic.SAnd {
			continue
		}
		if required[m.Var()] {
			ands[m.Var()] = true
		}
	}
	return latches, ands
}
