// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package pdr

import (
	"testing"

	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/tsys"
	"github.com/go-air/pdrtpa/vars"
)

func TestRunUnsafeAtInitialState(t *testing.T) {
	store := vars.NewStore()
	y := store.FreshRange(0)
	x := store.FreshRange(1)
	p := store.FreshRange(1)
	a := store.FreshRange(0)
	b := x.At(0)

	var initB, transB, errB cnf.Builder
	initB.AddClause(b.Pos())
	errB.AddClause(b.Pos())

	sys := tsys.New(y, x, p, a, initB.CNF(), transB.CNF(), errB.CNF(), []bool{true}, []bool{true})
	v := New(sys, store, Config{Seed: 1})
	res := v.Run()
	if res.Safe {
		t.Fatalf("expected UNSAFE, got SAFE")
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected one (empty) input row, got %d", len(res.Rows))
	}
	if len(res.Rows[0]) != 0 {
		t.Fatalf("expected an empty row (no inputs in this system), got %v", res.Rows[0])
	}
}

func TestRunUnsafeInOneStep(t *testing.T) {
	store := vars.NewStore()
	y := store.FreshRange(0)
	x := store.FreshRange(1)
	p := store.FreshRange(1)
	a := store.FreshRange(0)
	b := x.At(0)
	bp := p.At(0)

	var initB, transB, errB cnf.Builder
	initB.AddClause(b.Neg())
	transB.AddClause(bp.Pos()) // b' is forced true regardless of b
	errB.AddClause(b.Pos())

	sys := tsys.New(y, x, p, a, initB.CNF(), transB.CNF(), errB.CNF(), []bool{false}, []bool{true})
	v := New(sys, store, Config{Seed: 1})
	res := v.Run()
	if res.Safe {
		t.Fatalf("expected UNSAFE, got SAFE")
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected two (empty) input rows, got %d", len(res.Rows))
	}
}

func TestRunSafeSelfLoop(t *testing.T) {
	store := vars.NewStore()
	y := store.FreshRange(0)
	x := store.FreshRange(1)
	p := store.FreshRange(1)
	a := store.FreshRange(0)
	b := x.At(0)
	bp := p.At(0)

	var initB, transB, errB cnf.Builder
	initB.AddClause(b.Neg())
	// b' <-> b: the bit never changes once set.
	transB.AddClause(b.Neg(), bp.Pos())
	transB.AddClause(b.Pos(), bp.Neg())
	errB.AddClause(b.Pos())

	sys := tsys.New(y, x, p, a, initB.CNF(), transB.CNF(), errB.CNF(), []bool{false}, []bool{true})
	v := New(sys, store, Config{Seed: 7})
	res := v.Run()
	if !res.Safe {
		t.Fatalf("expected SAFE, got UNSAFE with rows %v", res.Rows)
	}
}

func TestRunTwoStepWithInput(t *testing.T) {
	// State bits p, q; input y. p' <-> y, q' <-> p (q lags p by one
	// step, which itself lags the input by one step), so q can only
	// first become true two steps after the initial state.
	store := vars.NewStore()
	y := store.FreshRange(1)
	x := store.FreshRange(2)
	p := store.FreshRange(2)
	a := store.FreshRange(0)
	pVar, qVar := x.At(0), x.At(1)
	pNext, qNext := p.At(0), p.At(1)
	yVar := y.At(0)

	var initB, transB, errB cnf.Builder
	initB.AddClause(pVar.Neg())
	initB.AddClause(qVar.Neg())
	transB.AddClause(pNext.Neg(), yVar.Pos())
	transB.AddClause(pNext.Pos(), yVar.Neg())
	transB.AddClause(qNext.Neg(), pVar.Pos())
	transB.AddClause(qNext.Pos(), pVar.Neg())
	errB.AddClause(qVar.Pos())

	sys := tsys.New(y, x, p, a, initB.CNF(), transB.CNF(), errB.CNF(), []bool{false, false}, []bool{true, true})
	v := New(sys, store, Config{Seed: 42})
	res := v.Run()
	if res.Safe {
		t.Fatalf("expected UNSAFE, got SAFE")
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected a three-step counterexample, got %d rows: %v", len(res.Rows), res.Rows)
	}
}

func TestActivatorsFromClampsNegative(t *testing.T) {
	store := vars.NewStore()
	sys, _ := oneBitSysForActivatorsTest(t, store)
	v := New(sys, store, Config{})
	v.pushFrame()
	v.pushFrame()
	got := v.activatorsFrom(-5)
	if len(got) != 2 {
		t.Fatalf("expected activatorsFrom to clamp to 0, got %d activators", len(got))
	}
}

func oneBitSysForActivatorsTest(t *testing.T, store *vars.Store) (*tsys.System, *vars.Store) {
	t.Helper()
	y := store.FreshRange(0)
	x := store.FreshRange(1)
	p := store.FreshRange(1)
	a := store.FreshRange(0)
	return tsys.New(y, x, p, a, cnf.True, cnf.True, cnf.False, []bool{false}, []bool{true}), store
}

func TestBlockArrowAtRetiresSubsumedArrows(t *testing.T) {
	store := vars.NewStore()
	sys, _ := oneBitSysForActivatorsTest(t, store)
	v := New(sys, store, Config{})
	v.pushFrame()

	xv := sys.X.At(0)
	wide := cnf.NewCube([]z.Lit{xv.Pos()})
	v.blockArrowAt(wide, wide, 0, 0)
	if len(v.frames[0].arrows) != 1 {
		t.Fatalf("expected one arrow after first block, got %d", len(v.frames[0].arrows))
	}
	// Blocking the same (c, d) again should retire the first as
	// subsumed rather than accumulate a duplicate.
	v.blockArrowAt(wide, wide, 0, 0)
	if len(v.frames[0].arrows) != 1 {
		t.Fatalf("expected the duplicate arrow to retire the original, got %d", len(v.frames[0].arrows))
	}
}
