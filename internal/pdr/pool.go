// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package pdr

import "github.com/go-air/pdrtpa/cnf"

// handle identifies a node in the counterexample-node pool. A handle
// is only valid for the lifetime of the pool it was minted from — the
// pool is bulk-cleared once per main-loop round.
type handle int

const noHandle handle = -1

// node is one entry in the append-only counterexample-node pool
// (spec.md §3, §9 "Arena for counterexample nodes"). left/right are
// only set once the node's obligation has been split in two;
// input is set at a leaf where a concrete single-step edge was
// witnessed, and on a root node from the error query, where it holds
// the inputs of the final (error) step.
type node struct {
	s, t        cnf.Cube
	input       cnf.Cube
	hasInput    bool
	left, right handle
}

// pool is the append-only vector backing the node arena. References
// between nodes are handles (indices), never pointers, because the
// backing slice may be reallocated as the pool grows.
type pool struct {
	nodes []node
}

func (p *pool) clear() {
	p.nodes = p.nodes[:0]
}

func (p *pool) new(s, t cnf.Cube) handle {
	p.nodes = append(p.nodes, node{s: s, t: t, left: noHandle, right: noHandle})
	return handle(len(p.nodes) - 1)
}

func (p *pool) get(h handle) *node {
	return &p.nodes[h]
}
