// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

// Package tsys holds the internal transition-system representation
// that aigbuild produces and internal/pdr consumes: four disjoint
// variable ranges and three CNF formulae over them.
package tsys

import (
	"fmt"

	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/vars"
)

// Kind classifies a variable by which of the transition system's four
// disjoint ranges it belongs to.
type Kind int

const (
	Input Kind = iota
	State
	NextState
	Auxiliary
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "Input"
	case State:
		return "State"
	case NextState:
		return "NextState"
	case Auxiliary:
		return "Auxiliary"
	default:
		return "Unknown"
	}
}

// System bundles the four variable ranges, the verbatim initial
// AIG-latch cube, and the three CNF formulae Init(X), Trans(X,Y,A,X'),
// Error(X,Y). System is immutable after construction.
type System struct {
	Y vars.Range // inputs
	X vars.Range // state
	P vars.Range // next-state (X')
	A vars.Range // auxiliary / Tseitin

	Init  cnf.CNF
	Trans cnf.CNF
	Error cnf.CNF

	// InitLatchCube holds, for every AIG latch in declaration order
	// (including ones eliminated from X by the cone-of-influence
	// pass), the boolean reset value of a constant-reset latch. It is
	// used only for witness printing in the original AIG numbering;
	// it must never be confused with the reduced State range. A latch
	// with a nondeterministic reset has no entry (see HasInit).
	InitLatchCube []bool
	HasInit       []bool
}

// New builds a System from its parts. It panics if |X| != |X'|, the
// invariant spec.md §3 requires of every transition system.
func New(y, x, p, a vars.Range, init, trans, errf cnf.CNF, initCube, hasInit []bool) *System {
	if x.Len() != p.Len() {
		panic(fmt.Sprintf("tsys: |X|=%d != |X'|=%d", x.Len(), p.Len()))
	}
	return &System{
		Y: y, X: x, P: p, A: a,
		Init: init, Trans: trans, Error: errf,
		InitLatchCube: initCube, HasInit: hasInit,
	}
}

// VarInfo returns the kind and offset-within-range of v. VarInfo panics
// if v does not belong to any of the four ranges: it is a total
// function over the system's own variables, per spec.md §4.3.
func (s *System) VarInfo(v z.Var) (Kind, int) {
	switch {
	case s.Y.Contains(v):
		return Input, s.Y.Offset(v)
	case s.X.Contains(v):
		return State, s.X.Offset(v)
	case s.P.Contains(v):
		return NextState, s.P.Offset(v)
	case s.A.Contains(v):
		return Auxiliary, s.A.Offset(v)
	default:
		panic(fmt.Sprintf("tsys: variable %d belongs to no range", v))
	}
}

// Prime maps a literal over X to the corresponding literal over X' by
// offset; literals outside X pass through unchanged.
func (s *System) Prime(m z.Lit) z.Lit {
	if !s.X.Contains(m.Var()) {
		return m
	}
	off := s.X.Offset(m.Var())
	v := s.P.At(off)
	if m.IsPos() {
		return v.Pos()
	}
	return v.Neg()
}

// Unprime maps a literal over X' back to the corresponding literal over
// X by offset; literals outside X' pass through unchanged.
func (s *System) Unprime(m z.Lit) z.Lit {
	if !s.P.Contains(m.Var()) {
		return m
	}
	off := s.P.Offset(m.Var())
	v := s.X.At(off)
	if m.IsPos() {
		return v.Pos()
	}
	return v.Neg()
}
