// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

// Package cnf implements the signed-literal, CNF, and cube algebra this
// repo builds everything else on top of.  Literals are gini's z.Lit: a
// CNF is a flat sequence of z.Lit with a z.LitNull separator after every
// clause, the same convention gini's inter.Adder uses for Add, so a cnf.CNF
// can be streamed straight into a *gini.Gini with nothing more than a
// loop over its elements.
package cnf

import "github.com/go-air/gini/z"

// CNF is an ordered multiset of clauses stored as a flat literal
// sequence, z.LitNull-terminated per clause (including the empty
// clause, which is a lone separator).
type CNF []z.Lit

// True is the empty conjunction: zero clauses, trivially satisfied.
var True = CNF{}

// False is the single empty clause: trivially unsatisfiable.
var False = CNF{z.LitNull}

// Builder accumulates clauses into a CNF.  It exists so construction
// code (the AIG builder, the simplifier) doesn't have to thread a
// growing slice value through every call; Builder.CNF() hands back the
// accumulated formula.
type Builder struct {
	lits CNF
}

// AddClause appends one clause (lits, z.LitNull) to the builder.
// Calling AddClause with no literals appends the empty clause, making
// the resulting formula unsatisfiable.
func (b *Builder) AddClause(lits ...z.Lit) {
	b.lits = append(b.lits, lits...)
	b.lits = append(b.lits, z.LitNull)
}

// Append splices another CNF's clauses onto the builder verbatim.
func (b *Builder) Append(c CNF) {
	b.lits = append(b.lits, c...)
}

// CNF returns the accumulated formula.  The builder must not be used
// afterwards to append more clauses into the same backing array without
// risking aliasing; callers that need both should stop using b after
// this call.
func (b *Builder) CNF() CNF {
	return CNF(b.lits)
}

// Map returns a new CNF with f applied to every non-separator literal.
// Separators (z.LitNull) are preserved as-is.
func (c CNF) Map(f func(z.Lit) z.Lit) CNF {
	out := make(CNF, len(c))
	for i, m := range c {
		if m == z.LitNull {
			out[i] = z.LitNull
			continue
		}
		out[i] = f(m)
	}
	return out
}

// Activate returns a new CNF in which act.Not() has been appended to
// every clause of c (before its separator).  Asserting the result and
// then assuming act is equivalent to asserting c directly; assuming
// act.Not() makes the result a tautology (every clause is satisfied by
// act.Not() itself). The empty clause becomes the unit clause act.Not().
func (c CNF) Activate(act z.Lit) CNF {
	out := make(CNF, 0, len(c)+countClauses(c))
	start := 0
	for i, m := range c {
		if m != z.LitNull {
			continue
		}
		out = append(out, c[start:i]...)
		out = append(out, act.Not(), z.LitNull)
		start = i + 1
	}
	return out
}

func countClauses(c CNF) int {
	n := 0
	for _, m := range c {
		if m == z.LitNull {
			n++
		}
	}
	return n
}

// Clauses calls f once per clause in c, with the clause's literals
// (excluding the trailing separator). f must not retain the slice
// passed to it past the call.
func (c CNF) Clauses(f func(clause []z.Lit)) {
	start := 0
	for i, m := range c {
		if m == z.LitNull {
			f(c[start:i])
			start = i + 1
		}
	}
}

// NumClauses returns the number of clauses (separators) in c.
func (c CNF) NumClauses() int {
	return countClauses(c)
}
