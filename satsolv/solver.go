// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

// Package satsolv is the incremental-SAT facade spec.md §4.4 calls
// for, wrapping a *gini.Gini (github.com/go-air/gini). It adds the two
// capabilities gini's public API doesn't give for free: activation-
// literal discipline for one-shot constraints, and a query builder
// that enforces the "exactly one live query per solver, assumptions
// live only for that one solve" contract.
package satsolv

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/vars"
)

// Solver owns exactly one underlying incremental SAT instance. All
// activator variables it mints for one-shot constraints are drawn from
// a vars.Store shared across the whole run, so they never collide with
// variables used elsewhere in the transition system.
type Solver struct {
	g     *gini.Gini
	store *vars.Store
	busy  bool
}

// New creates a Solver whose activators are drawn from store.
func New(store *vars.Store) *Solver {
	return &Solver{g: gini.New(), store: store}
}

// MaxVar returns the largest variable the underlying solver has seen.
func (s *Solver) MaxVar() z.Var {
	return s.g.MaxVar()
}

// Assert adds every clause of c to the solver permanently. Assert must
// not be called while a Query is open on s.
func (s *Solver) Assert(c cnf.CNF) {
	if s.busy {
		panic("satsolv: cannot assert while a query is open")
	}
	for _, m := range c {
		s.g.Add(m)
	}
}

// Propagate performs unit propagation over everything asserted so far,
// with no assumptions, and returns the literals forced true as a
// consequence along with the BCP-level result. It backs the CNF
// simplifier (§4.6): gini's public API does not expose a full
// variable-freezing external inprocessor, so this repo uses gini's
// BCP-only Test/Untest (the "Testable" half of inter.S) as its
// simplification primitive instead.
func (s *Solver) Propagate() (res int, forced []z.Lit) {
	if s.busy {
		panic("satsolv: cannot propagate while a query is open")
	}
	res, forced = s.g.Test(nil)
	s.g.Untest()
	return res, forced
}

// NewQuery opens a fresh query against s. Only one query may be open
// on a given solver at a time; NewQuery panics if one already is.
func (s *Solver) NewQuery() *Query {
	if s.busy {
		panic("satsolv: concurrent query on same solver")
	}
	s.busy = true
	return &Query{s: s}
}

// Query is a single-use scoped guard over one call to IsSat/IsUnsat.
// Assumptions and one-shot constraints added to a Query are valid only
// for that single solve; asserting clauses after a Query is resolved
// (or via a different, stale Query) is not supported by this type —
// use Solver.Assert for anything permanent.
type Query struct {
	s        *Solver
	assumed  []z.Lit
	resolved bool
	result   int
	core     []z.Lit
}

// Assume adds literal assumptions, true only for the coming solve.
func (q *Query) Assume(lits ...z.Lit) *Query {
	q.checkOpen()
	q.assumed = append(q.assumed, lits...)
	return q
}

// AssumeCube assumes every literal of c conjunctively.
func (q *Query) AssumeCube(c cnf.Cube) *Query {
	return q.Assume(c...)
}

// AssumeMapped assumes f(m) for every m in lits, without allocating an
// intermediate mapped slice beyond what Assume needs.
func (q *Query) AssumeMapped(lits []z.Lit, f func(z.Lit) z.Lit) *Query {
	q.checkOpen()
	for _, m := range lits {
		q.assumed = append(q.assumed, f(m))
	}
	return q
}

// ConstrainNot adds ¬l1 ∨ ... ∨ ¬ln (the negation of cube c) as a
// one-shot clause, active only for this query. It is implemented via
// activation discipline: the clause is asserted permanently disjoined
// with the negation of a fresh activator, and that activator is
// assumed true only now, so the clause has no effect on any other or
// later query.
func (q *Query) ConstrainNot(c cnf.Cube) *Query {
	neg := make([]z.Lit, len(c))
	for i, m := range c {
		neg[i] = m.Not()
	}
	return q.ConstrainClause(neg)
}

// ConstrainClause adds clause as a one-shot clause, active only for
// this query, using the same activation discipline as ConstrainNot.
func (q *Query) ConstrainClause(clause []z.Lit) *Query {
	q.checkOpen()
	act := q.s.store.Fresh()
	for _, m := range clause {
		q.s.g.Add(m)
	}
	q.s.g.Add(act.Pos().Not())
	q.s.g.Add(z.LitNull)
	q.assumed = append(q.assumed, act.Pos())
	return q
}

func (q *Query) checkOpen() {
	if q.resolved {
		panic("satsolv: query already resolved")
	}
}

// IsSat solves the query and reports whether it is satisfiable. It
// consumes the query: no further assumptions or constraints may be
// added afterward, and IsSat/IsUnsat subsequently just replay the
// cached result.
func (q *Query) IsSat() bool {
	if !q.resolved {
		q.s.g.Assume(q.assumed...)
		res := q.s.g.Solve()
		if res == 0 {
			panic("satsolv: solver returned UNKNOWN")
		}
		q.result = res
		q.resolved = true
		q.s.busy = false
		if res == -1 {
			q.core = q.s.g.Why(nil)
		}
	}
	return q.result == 1
}

// IsUnsat is the negation of IsSat, provided for readability at call
// sites that expect an UNSAT result.
func (q *Query) IsUnsat() bool {
	return !q.IsSat()
}

// Value returns the truth value of m in the model of a SAT result.
// Value panics if the query did not resolve SAT.
func (q *Query) Value(m z.Lit) bool {
	if !q.resolved || q.result != 1 {
		panic("satsolv: Value called without a SAT result")
	}
	if m.IsPos() {
		return q.s.g.Value(m)
	}
	return !q.s.g.Value(m.Not())
}

// ModelCube reads off a sorted cube giving every variable in r its
// literal in the model.
func (q *Query) ModelCube(r vars.Range) cnf.Cube {
	lits := make([]z.Lit, 0, r.Len())
	for i := 0; i < r.Len(); i++ {
		v := r.At(i)
		if q.Value(v.Pos()) {
			lits = append(lits, v.Pos())
		} else {
			lits = append(lits, v.Neg())
		}
	}
	return cnf.NewCubeSorted(lits)
}

// ModelMapped reads off f(lit)'s model value for each lit in lits,
// returning a signed literal per entry (f(lit) if true, its negation
// otherwise).
func (q *Query) ModelMapped(lits []z.Lit, f func(z.Lit) z.Lit) []z.Lit {
	out := make([]z.Lit, len(lits))
	for i, m := range lits {
		fm := f(m)
		if q.Value(fm) {
			out[i] = fm
		} else {
			out[i] = fm.Not()
		}
	}
	return out
}

// InCore reports whether m is part of the failed-literal core. InCore
// panics if the query did not resolve UNSAT.
func (q *Query) InCore(m z.Lit) bool {
	if !q.resolved || q.result != -1 {
		panic("satsolv: InCore called without an UNSAT result")
	}
	for _, c := range q.core {
		if c == m {
			return true
		}
	}
	return false
}

// CoreOf filters lits down to those present in the failed-literal
// core.
func (q *Query) CoreOf(lits []z.Lit) []z.Lit {
	out := lits[:0:0]
	for _, m := range lits {
		if q.InCore(m) {
			out = append(out, m)
		}
	}
	return out
}

// CoreMapped filters lits down to those whose image under f is
// present in the failed-literal core, returning the original
// (unmapped) literals — used to recover, say, the core of an
// assumption that was itself assumed via AssumeMapped.
func (q *Query) CoreMapped(lits []z.Lit, f func(z.Lit) z.Lit) []z.Lit {
	var out []z.Lit
	for _, m := range lits {
		if q.InCore(f(m)) {
			out = append(out, m)
		}
	}
	return out
}
