// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

// Package simplify wraps satsolv's BCP-based propagation to simplify
// Init, Trans, and Error independently, per spec.md §4.6.
//
// gini's public surface does not expose a full external inprocessor
// with variable freezing (that lives, unexported, in gini's own CDCL
// core). This repo's simplifier therefore uses the one inprocessing
// primitive gini does expose publicly — BCP-only solving via
// Solver.Propagate, itself gini's Test/Untest — to fold forced units
// into each formula and drop satisfied clauses and falsified literals.
// Because this never eliminates or renames a variable, every variable
// spec.md §4.6 would otherwise need frozen remains visible for free;
// there is nothing to un-freeze on the way back out.
package simplify

import (
	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/cnf"
	"github.com/go-air/pdrtpa/satsolv"
	"github.com/go-air/pdrtpa/tsys"
	"github.com/go-air/pdrtpa/vars"
)

// System simplifies Init, Trans, and Error of sys independently and
// returns a new transition system with the same four variable ranges
// and initial cube, but simplified formulae.
func System(sys *tsys.System) *tsys.System {
	return tsys.New(
		sys.Y, sys.X, sys.P, sys.A,
		one(sys.Init), one(sys.Trans), one(sys.Error),
		sys.InitLatchCube, sys.HasInit,
	)
}

// one spins up a fresh, short-lived solver for f, asserts f, runs BCP
// to a fixed point, and traverses the result back into a new CNF.
func one(f cnf.CNF) cnf.CNF {
	s := satsolv.New(vars.NewStore())
	s.Assert(f)
	res, forced := s.Propagate()
	if res == -1 {
		return cnf.False
	}
	assign := make(map[z.Var]bool, len(forced))
	for _, m := range forced {
		assign[m.Var()] = m.IsPos()
	}
	var b cnf.Builder
	for _, m := range forced {
		b.AddClause(m)
	}
	contradiction := false
	f.Clauses(func(clause []z.Lit) {
		if contradiction {
			return
		}
		kept := make([]z.Lit, 0, len(clause))
		satisfied := false
		for _, m := range clause {
			v, isForced := assign[m.Var()]
			if !isForced {
				kept = append(kept, m)
				continue
			}
			if v == m.IsPos() {
				satisfied = true
				break
			}
			// literal is forced false: drop it from the clause.
		}
		if satisfied {
			return
		}
		b.AddClause(kept...)
		if len(kept) == 0 {
			contradiction = true
		}
	})
	if contradiction {
		return cnf.False
	}
	return b.CNF()
}
