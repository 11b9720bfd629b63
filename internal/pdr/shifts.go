// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package pdr

import (
	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/tsys"
	"github.com/go-air/pdrtpa/vars"
)

// shifts holds the three extra ranges the verifier introduces at
// construction (spec.md §4.7) and the two trans formulae derived from
// them: middle_state X° for the meet-in-the-middle point when
// splitting a proof obligation, right_input Y₂ and right_aux for a
// second, cross-talk-free copy of the inputs and Tseitin auxiliaries
// used by the second half of a length-two path.
type shifts struct {
	mid        vars.Range // X°
	rightIn    vars.Range // Y2
	rightAux   vars.Range // A2
	leftTrans  cnf.CNF    // T(X, Y, A, X°)
	rightTrans cnf.CNF    // T(X°, Y2, A2, X')
}

// offsetMap returns a literal mapper that carries variables in from to
// the corresponding offset in to, and passes through everything else
// unchanged. Every prime/unprime/circle/uncircle substitution in this
// package is one instance of this.
func offsetMap(from, to vars.Range) func(z.Lit) z.Lit {
	return func(m z.Lit) z.Lit {
		if !from.Contains(m.Var()) {
			return m
		}
		v := to.At(from.Offset(m.Var()))
		if m.IsPos() {
			return v.Pos()
		}
		return v.Neg()
	}
}

func newShifts(sys *tsys.System, store *vars.Store) *shifts {
	s := &shifts{
		mid:      store.FreshRange(sys.X.Len()),
		rightIn:  store.FreshRange(sys.Y.Len()),
		rightAux: store.FreshRange(sys.A.Len()),
	}
	primeToMid := offsetMap(sys.P, s.mid)
	s.leftTrans = sys.Trans.Map(primeToMid)

	toMid := offsetMap(sys.X, s.mid)
	toRightIn := offsetMap(sys.Y, s.rightIn)
	toRightAux := offsetMap(sys.A, s.rightAux)
	s.rightTrans = sys.Trans.Map(func(m z.Lit) z.Lit {
		switch {
		case sys.X.Contains(m.Var()):
			return toMid(m)
		case sys.Y.Contains(m.Var()):
			return toRightIn(m)
		case sys.A.Contains(m.Var()):
			return toRightAux(m)
		default:
			return m
		}
	})
	return s
}

// circle maps a literal over X to the corresponding literal over X°.
func (s *shifts) circle(sys *tsys.System, m z.Lit) z.Lit {
	return offsetMap(sys.X, s.mid)(m)
}

// uncircle maps a literal over X° back to the corresponding literal
// over X.
func (s *shifts) uncircle(sys *tsys.System, m z.Lit) z.Lit {
	return offsetMap(s.mid, sys.X)(m)
}

func (s *shifts) circleCube(sys *tsys.System, c cnf.Cube) cnf.Cube {
	return c.Map(func(m z.Lit) z.Lit { return s.circle(sys, m) })
}

func (s *shifts) uncircleCube(sys *tsys.System, c cnf.Cube) cnf.Cube {
	return c.Map(func(m z.Lit) z.Lit { return s.uncircle(sys, m) })
}
