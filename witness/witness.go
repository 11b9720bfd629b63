// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

// Package witness formats a verification Result as an AIGER witness
// trace (spec.md §6), the same textual convention aigsim/aigbmc
// writers use: a status line, a "b0" property-index line, and for an
// unsafe result one bit-string row with one character per AIG latch
// (the initial state) followed by one bit-string row per step (the
// inputs driving the trace into the error state).
package witness

import (
	"bufio"
	"io"

	"github.com/go-air/gini/logic/aiger"
	"github.com/go-air/gini/z"

	"github.com/go-air/pdrtpa/internal/pdr"
	"github.com/go-air/pdrtpa/tsys"
)

// Write formats res against a (for AIG-latch/input declaration order
// and counts) and sys (to map Result.Rows, which are cubes over sys.Y,
// back onto a's inputs) and writes it to w.
func Write(w io.Writer, a *aiger.T, sys *tsys.System, res pdr.Result) error {
	bw := bufio.NewWriter(w)
	if res.Safe {
		bw.WriteString("0\n")
		bw.WriteString("b0\n")
		bw.WriteString(".\n")
		return bw.Flush()
	}

	bw.WriteString("1\n")
	bw.WriteString("b0\n")
	bw.WriteString(initLatchRow(sys))
	bw.WriteByte('\n')
	for _, row := range res.Rows {
		bw.WriteString(inputRow(sys, a, row))
		bw.WriteByte('\n')
	}
	bw.WriteString(".\n")
	return bw.Flush()
}

// initLatchRow renders one character per AIG latch, in declaration
// order, from the verbatim initial-latch cube aigbuild recorded. A
// latch with a nondeterministic reset has no recorded value; per
// spec.md §4.8's "default to negative if the variable is a don't
// care," it prints '0'.
func initLatchRow(sys *tsys.System) string {
	buf := make([]byte, len(sys.InitLatchCube))
	for i := range buf {
		if sys.HasInit[i] && sys.InitLatchCube[i] {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// inputRow renders one character per AIG input, in declaration order,
// from a cube over sys.Y. An input absent from the cube is a don't
// care and prints '0'.
func inputRow(sys *tsys.System, a *aiger.T, row []z.Lit) string {
	buf := make([]byte, len(a.Inputs))
	for i := range buf {
		v := sys.Y.At(i)
		lit, ok := findVar(row, v)
		if ok && lit.IsPos() {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

func findVar(cube []z.Lit, v z.Var) (z.Lit, bool) {
	for _, m := range cube {
		if m.Var() == v {
			return m, true
		}
	}
	return z.LitNull, false
}
