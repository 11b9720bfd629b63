// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package satsolv

import (
	"testing"

	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/vars"
)

func TestBasicSatUnsat(t *testing.T) {
	st := vars.NewStore()
	a := st.Fresh()
	b := st.Fresh()
	s := New(st)
	var bld cnf.Builder
	bld.AddClause(a.Pos(), b.Pos())
	bld.AddClause(a.Neg(), b.Neg())
	s.Assert(bld.CNF())

	q := s.NewQuery()
	if !q.Assume(a.Pos()).IsSat() {
		t.Fatalf("expected sat")
	}
	if q.Value(a.Pos()) != true {
		t.Fatalf("expected a true in model")
	}

	q2 := s.NewQuery()
	if q2.Assume(a.Pos(), b.Pos(), a.Neg()).IsSat() {
		t.Fatalf("expected unsat: a and ¬a both assumed")
	}
	if !q2.InCore(a.Pos()) && !q2.InCore(a.Neg()) {
		t.Fatalf("expected the conflicting assumption in the core")
	}
}

func TestConstrainNotOneShot(t *testing.T) {
	st := vars.NewStore()
	a := st.Fresh()
	b := st.Fresh()
	s := New(st)
	c := cnf.NewCube([]z.Lit{a.Pos(), b.Pos()})

	q := s.NewQuery()
	q.ConstrainNot(c) // forbids a=1,b=1 for this query only
	if !q.IsSat() {
		t.Fatalf("expected sat: a=0 or b=0 satisfies the rest")
	}
	if q.Value(a.Pos()) && q.Value(b.Pos()) {
		t.Fatalf("ConstrainNot should have forbidden a=1,b=1")
	}

	// a fresh query is unconstrained: a=1,b=1 is allowed again.
	q2 := s.NewQuery()
	q2.Assume(a.Pos(), b.Pos())
	if !q2.IsSat() {
		t.Fatalf("ConstrainNot must not persist beyond its own query")
	}
}

func TestQueryMustBeSingleUse(t *testing.T) {
	st := vars.NewStore()
	a := st.Fresh()
	s := New(st)
	q := s.NewQuery()
	q.Assume(a.Pos())
	q.IsSat()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic assuming on a resolved query")
		}
	}()
	q.Assume(a.Neg())
}

func TestConcurrentQueryPanics(t *testing.T) {
	st := vars.NewStore()
	s := New(st)
	s.NewQuery()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic opening a second concurrent query")
		}
	}()
	s.NewQuery()
}

func TestPropagateForcesUnits(t *testing.T) {
	st := vars.NewStore()
	a := st.Fresh()
	b := st.Fresh()
	s := New(st)
	var bld cnf.Builder
	bld.AddClause(a.Pos())
	bld.AddClause(a.Neg(), b.Pos())
	s.Assert(bld.CNF())

	res, forced := s.Propagate()
	if res != 1 && res != 0 {
		t.Fatalf("unexpected propagate result %d", res)
	}
	found := false
	for _, m := range forced {
		if m == b.Pos() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected b to be forced true by unit propagation, got %v", forced)
	}
}

func TestModelCube(t *testing.T) {
	st := vars.NewStore()
	r := st.FreshRange(3)
	s := New(st)
	var bld cnf.Builder
	bld.AddClause(r.At(0).Pos())
	bld.AddClause(r.At(1).Neg())
	s.Assert(bld.CNF())
	q := s.NewQuery()
	if !q.IsSat() {
		t.Fatalf("expected sat")
	}
	c := q.ModelCube(r)
	if !cnf.IsSorted(c) {
		t.Fatalf("ModelCube must return a cube in cube order")
	}
	if lit, ok := c.Find(r.At(0)); !ok || lit != r.At(0).Pos() {
		t.Fatalf("expected var 0 true in model")
	}
	if lit, ok := c.Find(r.At(1)); !ok || lit != r.At(1).Neg() {
		t.Fatalf("expected var 1 false in model")
	}
}
