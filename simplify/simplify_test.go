// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package simplify

import (
	"testing"

	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/tsys"
	"github.com/go-air/pdrtpa/vars"
)

func build(t *testing.T) (*tsys.System, z.Var, z.Var) {
	t.Helper()
	st := vars.NewStore()
	y := st.FreshRange(1)
	x := st.FreshRange(2)
	p := st.FreshRange(2)
	a := st.FreshRange(0)

	av, bv := x.At(0), x.At(1)
	var initB cnf.Builder
	initB.AddClause(av.Pos()) // a is forced true
	var transB cnf.Builder
	transB.AddClause(av.Neg(), bv.Pos()) // a -> b; System simplifies Trans on its own,
	// so this a is unconstrained here and b is never forced by it.
	var errB cnf.Builder
	errB.AddClause(bv.Neg())

	sys := tsys.New(y, x, p, a, initB.CNF(), transB.CNF(), errB.CNF(),
		[]bool{true, false}, []bool{true, true})
	return sys, av, bv
}

func TestSimplifyPropagatesUnits(t *testing.T) {
	sys, av, _ := build(t)
	out := System(sys)
	foundUnit := false
	out.Init.Clauses(func(cl []z.Lit) {
		if len(cl) == 1 && cl[0] == av.Pos() {
			foundUnit = true
		}
	})
	if !foundUnit {
		t.Fatalf("expected simplified Init to retain the forced unit for a")
	}
}

func TestSimplifyRetainsUnitOnSingleFormula(t *testing.T) {
	st := vars.NewStore()
	a := st.Fresh()
	b := st.Fresh()
	var f cnf.Builder
	f.AddClause(a.Pos())
	f.AddClause(a.Neg(), b.Pos())
	out := one(f.CNF())
	foundUnit := false
	out.Clauses(func(cl []z.Lit) {
		if len(cl) == 1 && cl[0] == b.Pos() {
			foundUnit = true
		}
	})
	if !foundUnit {
		t.Fatalf("expected b, forced by unit propagation through a -> b, to survive as a unit clause, got %v", out)
	}
}

func TestSimplifyPreservesRanges(t *testing.T) {
	sys, _, _ := build(t)
	out := System(sys)
	if out.X != sys.X || out.Y != sys.Y || out.P != sys.P || out.A != sys.A {
		t.Fatalf("simplify must preserve the four variable ranges")
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	sys, _, _ := build(t)
	once := System(sys)
	twice := System(once)
	if len(once.Init) != len(twice.Init) {
		t.Fatalf("simplify should be idempotent on Init: %v vs %v", once.Init, twice.Init)
	}
	if len(once.Trans) != len(twice.Trans) {
		t.Fatalf("simplify should be idempotent on Trans")
	}
}

func TestSimplifyDetectsContradiction(t *testing.T) {
	st := vars.NewStore()
	a := st.Fresh()
	var b cnf.Builder
	b.AddClause(a.Pos())
	b.AddClause(a.Neg())
	out := one(b.CNF())
	if len(out) != 1 || out[0] != z.LitNull {
		t.Fatalf("expected contradictory formula to simplify to cnf.False, got %v", out)
	}
}
