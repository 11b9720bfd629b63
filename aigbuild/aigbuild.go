// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

// Package aigbuild turns a parsed AIG (github.com/go-air/gini/logic/aiger,
// github.com/go-air/gini/logic — AIG file parsing is out of scope per
// spec.md §1, so this repo depends on gini's real parser rather than
// reimplementing one) into this repo's own CNF transition system, via
// constant propagation, error cone-of-influence reduction, and Tseitin
// clausification. This is one of the two subsystems spec.md calls "the
// core" (§1).
package aigbuild

import (
	"errors"
	"fmt"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/logic/aiger"
	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/tsys"
	"github.com/go-air/pdrtpa/vars"
)

// Errors surfaced by Validate/Build for an unsupported AIG, per
// spec.md §4.5's "Error model validation" and §7's error taxonomy.
var (
	ErrNoErrorSpec      = errors.New("aigbuild: AIG has neither an output nor a bad-state property")
	ErrMultipleErrorDef = errors.New("aigbuild: AIG defines more than one of outputs+bad as the error property")
	ErrJustice          = errors.New("aigbuild: AIG has justice properties, which pdrtpa does not support")
	ErrFairness         = errors.New("aigbuild: AIG has fairness constraints, which pdrtpa does not support")
	ErrConstraints      = errors.New("aigbuild: AIG has environment constraints, which pdrtpa does not support")
)

// Validate checks the error-model and liveness/fairness preconditions
// spec.md §4.5 and §6 require of an input AIG: exactly one of
// num_outputs+num_bad, and zero justice/fairness/constraint entries.
func Validate(a *aiger.T) error {
	total := len(a.Outputs) + len(a.Bad)
	if total == 0 {
		return ErrNoErrorSpec
	}
	if total > 1 {
		return ErrMultipleErrorDef
	}
	if len(a.Justice) != 0 {
		return ErrJustice
	}
	if len(a.Fair) != 0 {
		return ErrFairness
	}
	if len(a.Constraints) != 0 {
		return ErrConstraints
	}
	return nil
}

// errorLiteral returns the AIG's sole error literal: the one output
// (pre-1.9) or the one bad-state literal (1.9+).
func errorLiteral(a *aiger.T) z.Lit {
	if len(a.Outputs) == 1 {
		return a.Outputs[0]
	}
	return a.Bad[0]
}

// Build converts a validated AIG into a transition system. Build
// allocates all variables for the returned system from store, so
// callers that need to keep minting variables afterward (the verifier
// does, for frame activators and shift ranges) share one monotonic
// source of ids with the transition system itself.
func Build(a *aiger.T, store *vars.Store) (*tsys.System, error) {
	if err := Validate(a); err != nil {
		return nil, err
	}
	sys := a.S
	errLit := errorLiteral(a)

	trueLits := trueLiterals(sys)
	survivingLatches, requiredAnds := errorCOI(sys, errLit, trueLits)

	b := &builder{
		a:            a,
		sys:          sys,
		store:        store,
		trueLits:     trueLits,
		requiredAnds: requiredAnds,
		varMap:       make(map[z.Var]z.Var, sys.Len()),
	}

	// Variable allocation (spec.md §4.5): ground constant, inputs,
	// surviving state/next-state pairs, then one auxiliary per AIG
	// AND gate (including ones outside the COI; clausification skips
	// those).
	b.ground = store.Fresh()

	b.y = store.FreshRange(len(a.Inputs))
	for i, in := range a.Inputs {
		b.varMap[in.Var()] = b.y.At(i)
	}

	nLatch := 0
	latchOrder := make([]z.Lit, 0, len(sys.Latches))
	for _, lat := range sys.Latches {
		if survivingLatches[lat.Var()] {
			latchOrder = append(latchOrder, lat)
			nLatch++
		}
	}
	b.x = store.FreshRange(nLatch)
	b.p = store.FreshRange(nLatch)
	for i, lat := range latchOrder {
		b.varMap[lat.Var()] = b.x.At(i)
	}

	nAnd := 0
	for i := 1; i < sys.Len(); i++ {
		if sys.Type(sys.At(i)) == logic.SAnd {
			nAnd++
		}
	}
	b.a_ = store.FreshRange(nAnd)
	ai := 0
	for i := 1; i < sys.Len(); i++ {
		m := sys.At(i)
		if sys.Type(m) != logic.SAnd {
			continue
		}
		b.varMap[m.Var()] = b.a_.At(ai)
		ai++
	}

	init, err := b.buildInit(latchOrder)
	if err != nil {
		return nil, err
	}
	trans := b.buildTrans(latchOrder)
	errCNF := b.buildError(errLit)

	// ground represents the AIG constant and is always false; pin it
	// down in every formula that could reference it through
	// from_aiger_lit, even when the reference traces to a latch's
	// next-state function rather than an AND-gate input (the only case
	// clausifyAnd/buildError short-circuit).
	var groundDef cnf.Builder
	groundDef.AddClause(b.ground.Neg())
	init = append(init, groundDef.CNF()...)
	trans = append(trans, groundDef.CNF()...)
	if !trueLits[errLit] && !trueLits[errLit.Not()] {
		errCNF = append(errCNF, groundDef.CNF()...)
	}

	initCube, hasInit := b.initialCube()

	return tsys.New(b.y, b.x, b.p, b.a_, init, trans, errCNF, initCube, hasInit), nil
}

type builder struct {
	a            *aiger.T
	sys          *logic.S
	store        *vars.Store
	trueLits     map[z.Lit]bool
	requiredAnds map[z.Var]bool
	varMap       map[z.Var]z.Var
	ground       z.Var

	y, x, p, a_ vars.Range
}

// fromAigerLit resolves an AIG literal to an internal, polarity-
// preserving literal (spec.md §4.5's from_aiger_lit).
func (b *builder) fromAigerLit(m z.Lit) z.Lit {
	if m == b.sys.F {
		return b.ground.Pos()
	}
	if m == b.sys.T {
		return b.ground.Neg()
	}
	v, ok := b.varMap[m.Var()]
	if !ok {
		panic(fmt.Sprintf("aigbuild: literal %v refers to an unmapped AIG variable", m))
	}
	if m.IsPos() {
		return v.Pos()
	}
	return v.Neg()
}

// clausifyAnd emits the Tseitin clauses for one AND gate m = rhs0 ∧
// rhs1, per spec.md §4.5.
func (b *builder) clausifyAnd(out *cnf.Builder, m z.Lit) {
	if b.trueLits[m] || b.trueLits[m.Not()] {
		panic("aigbuild: clausifying a decided AND gate")
	}
	rhs0, rhs1 := b.sys.Ins(m)
	lhs := b.fromAigerLit(m)
	switch {
	case b.trueLits[rhs0]:
		r1 := b.fromAigerLit(rhs1)
		out.AddClause(lhs.Not(), r1)
		out.AddClause(lhs, r1.Not())
	case b.trueLits[rhs1]:
		r0 := b.fromAigerLit(rhs0)
		out.AddClause(lhs.Not(), r0)
		out.AddClause(lhs, r0.Not())
	default:
		r0 := b.fromAigerLit(rhs0)
		r1 := b.fromAigerLit(rhs1)
		out.AddClause(lhs.Not(), r0)
		out.AddClause(lhs.Not(), r1)
		out.AddClause(lhs, r0.Not(), r1.Not())
	}
}

// clausifyRequired walks every AND gate in declaration order and
// clausifies the ones in the error cone of influence that aren't
// already decided by constant propagation.
func (b *builder) clausifyRequired(out *cnf.Builder) {
	n := b.sys.Len()
	for i := 1; i < n; i++ {
		m := b.sys.At(i)
		if b.sys.Type(m) != logic.SAnd {
			continue
		}
		if !b.requiredAnds[m.Var()] {
			continue
		}
		if b.trueLits[m] || b.trueLits[m.Not()] {
			continue
		}
		b.clausifyAnd(out, m)
	}
}

// buildInit emits a unit clause fixing the initial value of every
// surviving latch with a constant AIG reset value (spec.md §4.5's
// build_init).
func (b *builder) buildInit(latchOrder []z.Lit) (cnf.CNF, error) {
	var out cnf.Builder
	for _, lat := range latchOrder {
		xvar := b.varMap[lat.Var()]
		init := b.sys.Init(lat)
		switch init {
		case b.sys.F:
			out.AddClause(xvar.Neg())
		case b.sys.T:
			out.AddClause(xvar.Pos())
		case z.LitNull:
			// nondeterministic reset: no constraint on the initial value.
		default:
			return nil, fmt.Errorf("aigbuild: latch %v has an unsupported initial value %v", lat, init)
		}
	}
	return out.CNF(), nil
}

// buildTrans clausifies the AND gates in the cone of influence and
// links each surviving latch's next-state variable to its next-state
// function (spec.md §4.5's build_trans).
func (b *builder) buildTrans(latchOrder []z.Lit) cnf.CNF {
	var out cnf.Builder
	b.clausifyRequired(&out)
	for i, lat := range latchOrder {
		xnext := b.p.At(i).Pos()
		f := b.fromAigerLit(b.sys.Next(lat))
		out.AddClause(xnext.Not(), f)
		out.AddClause(xnext, f.Not())
	}
	return out.CNF()
}

// buildError evaluates the error literal and clausifies the subgraph
// it depends on (spec.md §4.5's build_error).
func (b *builder) buildError(errLit z.Lit) cnf.CNF {
	if b.trueLits[errLit] {
		return cnf.True
	}
	if b.trueLits[errLit.Not()] {
		return cnf.False
	}
	var out cnf.Builder
	b.clausifyRequired(&out)
	out.AddClause(b.fromAigerLit(errLit))
	return out.CNF()
}

// initialCube returns the verbatim AIG-latch initial cube (spec.md
// §4.5's initial_cube / §3's "initial AIG-latch cube"): in AIG-latch
// declaration order, including latches eliminated from State by the
// COI reduction, the boolean reset value for every constant-reset
// latch.
func (b *builder) initialCube() ([]bool, []bool) {
	n := len(b.sys.Latches)
	vals := make([]bool, n)
	has := make([]bool, n)
	for i, lat := range b.sys.Latches {
		init := b.sys.Init(lat)
		switch init {
		case b.sys.F:
			vals[i], has[i] = false, true
		case b.sys.T:
			vals[i], has[i] = true, true
		default:
			has[i] = false
		}
	}
	return vals, has
}
