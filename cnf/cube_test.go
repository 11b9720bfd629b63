// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package cnf

import (
	"math/rand"
	"testing"

	"github.com/go-air/gini/z"
)

func TestCubeSortedAndOrdering(t *testing.T) {
	lits := []z.Lit{
		z.Var(3).Pos(),
		z.Var(1).Neg(),
		z.Var(2).Pos(),
		z.Var(1).Pos(),
	}
	c := NewCube(lits)
	if !IsSorted(c) {
		t.Fatalf("NewCube did not produce sorted output: %v", c)
	}
	// var 1's negative literal must precede its positive literal.
	if !(c[0] == z.Var(1).Neg() && c[1] == z.Var(1).Pos()) {
		t.Fatalf("expected neg-before-pos tie break, got %v", c[:2])
	}
}

func TestSubsumption(t *testing.T) {
	small := NewCube([]z.Lit{z.Var(1).Pos(), z.Var(2).Neg()})
	big := NewCube([]z.Lit{z.Var(1).Pos(), z.Var(2).Neg(), z.Var(3).Pos()})
	if !small.Subsumes(big) {
		t.Fatalf("expected small to subsume big")
	}
	if big.Subsumes(small) {
		t.Fatalf("big must not subsume small")
	}
	disjoint := NewCube([]z.Lit{z.Var(4).Pos()})
	if small.Subsumes(disjoint) || disjoint.Subsumes(small) {
		t.Fatalf("disjoint cubes must not subsume each other")
	}
}

func TestSubsumesReflexive(t *testing.T) {
	c := NewCube([]z.Lit{z.Var(1).Pos(), z.Var(5).Neg()})
	if !c.Subsumes(c) {
		t.Fatalf("a cube must subsume itself")
	}
}

func TestNegate(t *testing.T) {
	c := NewCube([]z.Lit{z.Var(1).Pos(), z.Var(2).Neg()})
	clause := c.Negate()
	if clause.NumClauses() != 1 {
		t.Fatalf("Negate must produce a single clause")
	}
	var got []z.Lit
	clause.Clauses(func(cl []z.Lit) { got = append(got, cl...) })
	want := map[z.Lit]bool{z.Var(1).Neg(): true, z.Var(2).Pos(): true}
	if len(got) != 2 || !want[got[0]] || !want[got[1]] {
		t.Fatalf("Negate mismatch: got %v", got)
	}
}

func TestFindAndContains(t *testing.T) {
	c := NewCube([]z.Lit{z.Var(1).Pos(), z.Var(7).Neg(), z.Var(9).Pos()})
	if m, ok := c.Find(z.Var(7)); !ok || m != z.Var(7).Neg() {
		t.Fatalf("Find(7) = %v, %v", m, ok)
	}
	if _, ok := c.Find(z.Var(8)); ok {
		t.Fatalf("Find(8) should not be found")
	}
	if !c.Contains(z.Var(9).Pos()) {
		t.Fatalf("Contains should find 9+")
	}
	if c.Contains(z.Var(9).Neg()) {
		t.Fatalf("Contains must be polarity sensitive")
	}
}

func TestEqualIsSyntactic(t *testing.T) {
	a := NewCube([]z.Lit{z.Var(2).Pos(), z.Var(1).Pos()})
	b := NewCube([]z.Lit{z.Var(1).Pos(), z.Var(2).Pos()})
	if !a.Equal(b) {
		t.Fatalf("expected cubes built from same literals to be equal once sorted")
	}
}

func TestSubsumptionRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 1 + r.Intn(8)
		lits := make([]z.Lit, n)
		used := map[int]bool{}
		for i := 0; i < n; i++ {
			v := 1 + r.Intn(20)
			for used[v] {
				v = 1 + r.Intn(20)
			}
			used[v] = true
			if r.Intn(2) == 0 {
				lits[i] = z.Var(v).Pos()
			} else {
				lits[i] = z.Var(v).Neg()
			}
		}
		full := NewCube(lits)
		// any prefix of lits is a subset of full and should subsume it.
		k := r.Intn(n + 1)
		sub := NewCube(lits[:k])
		if !sub.Subsumes(full) {
			t.Fatalf("subset %v should subsume %v", sub, full)
		}
	}
}
