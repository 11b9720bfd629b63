// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

// Package pdr is the verification engine: a Property-Directed-
// Reachability-over-Transitive-Powers procedure over an incremental
// SAT solver, per spec.md §4.7/§4.8. It is internal because it is this
// repo's hardest and most load-bearing subsystem, the way gini hides
// its own CDCL core in internal/xo.
package pdr

import (
	"log"
	"math/rand"

	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/satsolv"
	"github.com/go-air/pdrtpa/tsys"
	"github.com/go-air/pdrtpa/vars"
)

// Preference forces which side of a disjoint split receives a
// conflict literal during generalization (spec.md §4.8's --left /
// --right), overriding the default random coin flip.
type Preference int

const (
	PreferRandom Preference = iota
	PreferLeft
	PreferRight
)

// Config configures a Verifier.
type Config struct {
	// Seed drives the generalization coin flip. Callers that want a
	// reproducible run pass a fixed seed; cmd/pdrtpa falls back to a
	// crypto/rand-sourced seed when the user does not supply one.
	Seed int64
	// Preference, if not PreferRandom, forces every coin flip.
	Preference Preference
	// Logger receives free-form progress messages. A nil Logger
	// discards them.
	Logger *log.Logger
}

// Result is the outcome of a verification run: either SAFE, or UNSAFE
// with the sequence of primary-input rows that drives the system from
// an initial state to the error predicate.
type Result struct {
	Safe bool
	Rows []cnf.Cube // each row: one literal per Y variable, in Rows[i]
}

// Verifier owns the whole run: the transition system, its two
// persistent solvers, the frame/arrow trace, and the counterexample
// node pool.
type Verifier struct {
	sys    *tsys.System
	store  *vars.Store
	shifts *shifts

	errSolver *satsolv.Solver
	conSolver *satsolv.Solver

	transAct, leftAct, rightAct z.Var

	frames []frame
	depth  int

	pool pool

	rng  *rand.Rand
	pref Preference

	logger *log.Logger
}

// New builds a Verifier over sys, minting every activator and shift
// variable it needs from store.
func New(sys *tsys.System, store *vars.Store, cfg Config) *Verifier {
	sh := newShifts(sys, store)

	errSolver := satsolv.New(store)
	errSolver.Assert(sys.Init)
	errSolver.Assert(sys.Error.Map(sys.Prime))

	conSolver := satsolv.New(store)
	transAct := store.Fresh()
	leftAct := store.Fresh()
	rightAct := store.Fresh()
	conSolver.Assert(sys.Trans.Activate(transAct.Pos()))
	conSolver.Assert(sh.leftTrans.Activate(leftAct.Pos()))
	conSolver.Assert(sh.rightTrans.Activate(rightAct.Pos()))

	return &Verifier{
		sys:       sys,
		store:     store,
		shifts:    sh,
		errSolver: errSolver,
		conSolver: conSolver,
		transAct:  transAct,
		leftAct:   leftAct,
		rightAct:  rightAct,
		depth:     -1,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		pref:      cfg.Preference,
		logger:    cfg.Logger,
	}
}

func (v *Verifier) logf(format string, args ...any) {
	if v.logger != nil {
		v.logger.Printf(format, args...)
	}
}

// Run executes the main loop of spec.md §4.8 to completion.
func (v *Verifier) Run() Result {
	if res, ok := v.checkTrivialCases(); ok {
		return res
	}
	v.pushFrame()
	for {
		v.pool.clear()
		h, found := v.getErrorCex()
		if found {
			v.logf("pdr: error cex found at depth %d", v.depth)
			if v.solveObligation(h, v.depth) {
				return v.buildCounterexample(h)
			}
		} else {
			v.pushFrame()
			v.logf("pdr: pushed frame %d", v.depth)
			if v.propagate() {
				return Result{Safe: true}
			}
		}
	}
}

// checkTrivialCases handles length-0 and length-1 counterexamples
// directly, without engaging the frame machinery, per spec.md §4.8.
func (v *Verifier) checkTrivialCases() (Result, bool) {
	sys := v.sys

	s0 := satsolv.New(v.store)
	s0.Assert(sys.Init)
	s0.Assert(sys.Error)
	q0 := s0.NewQuery()
	if q0.IsSat() {
		return Result{Safe: false, Rows: []cnf.Cube{q0.ModelCube(sys.Y)}}, true
	}

	s1 := satsolv.New(v.store)
	s1.Assert(sys.Init)
	s1.Assert(sys.Trans)
	toRightIn := offsetMap(sys.Y, v.shifts.rightIn)
	shiftedErr := sys.Error.Map(func(m z.Lit) z.Lit {
		switch {
		case sys.X.Contains(m.Var()):
			return sys.Prime(m)
		case sys.Y.Contains(m.Var()):
			return toRightIn(m)
		default:
			return m
		}
	})
	s1.Assert(shiftedErr)
	q1 := s1.NewQuery()
	if q1.IsSat() {
		row1 := q1.ModelCube(sys.Y)
		row2 := q1.ModelCube(v.shifts.rightIn).Map(offsetMap(v.shifts.rightIn, sys.Y))
		return Result{Safe: false, Rows: []cnf.Cube{row1, row2}}, true
	}
	return Result{}, false
}

// getErrorCex queries error_solver at the current depth and, if SAT,
// materializes a new root counterexample node.
func (v *Verifier) getErrorCex() (handle, bool) {
	q := v.errSolver.NewQuery()
	q.Assume(v.activatorsFrom(v.depth)...)
	if !q.IsSat() {
		return noHandle, false
	}
	s := q.ModelCube(v.sys.X)
	t := q.ModelCube(v.sys.P).Map(v.sys.Unprime)
	h := v.pool.new(s, t)
	n := v.pool.get(h)
	n.input = q.ModelCube(v.sys.Y)
	n.hasInput = true
	return h, true
}

// buildCounterexample walks the node tree left, right, then self,
// collecting one input row per node that carries an input: the split
// leaves in path order, then the root's error-step inputs last
// (spec.md §4.8's build_counterexample).
func (v *Verifier) buildCounterexample(root handle) Result {
	var rows []cnf.Cube
	var walk func(h handle)
	walk = func(h handle) {
		n := v.pool.get(h)
		if n.left != noHandle {
			walk(n.left)
		}
		if n.right != noHandle {
			walk(n.right)
		}
		if n.hasInput {
			rows = append(rows, n.input)
		}
	}
	walk(root)
	return Result{Safe: false, Rows: rows}
}
