// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

// Package vars hands out fresh Boolean variable identities and
// contiguous ranges of them.  It is the lowest layer of the system: the
// cnf, tsys, aigbuild and satsolv packages all depend only on the two
// operations here, never on how variables are actually represented by
// the underlying solver.
package vars

import "github.com/go-air/gini/z"

// Range is a half-open [Begin, End) interval over variable ids.  Ranges
// handed out by a Store are disjoint by construction: the store only
// ever grows its high-water mark.
type Range struct {
	Begin z.Var
	End   z.Var
}

// Len returns the number of variables in r.
func (r Range) Len() int {
	return int(r.End - r.Begin)
}

// Contains reports whether v lies in r.
func (r Range) Contains(v z.Var) bool {
	return v >= r.Begin && v < r.End
}

// At returns the i'th variable of r, 0-indexed.
func (r Range) At(i int) z.Var {
	return r.Begin + z.Var(i)
}

// Offset returns the index of v within r.  Offset panics if v is not in
// r; callers are expected to check Contains first when v's membership
// isn't already known.
func (r Range) Offset(v z.Var) int {
	if !r.Contains(v) {
		panic("vars: variable not in range")
	}
	return int(v - r.Begin)
}

// Store hands out fresh variable ids one at a time, or in contiguous
// blocks.  A Store never reuses an id: variables live for the lifetime
// of the run, per spec.md's "Lifecycles" (§3).
type Store struct {
	next z.Var
}

// NewStore creates a Store whose first returned variable is 1 (0 is not
// a valid z.Var; it doubles as the unassigned/false sentinel throughout
// gini's z package).
func NewStore() *Store {
	return &Store{next: 1}
}

// Fresh returns one new variable.
func (s *Store) Fresh() z.Var {
	v := s.next
	s.next++
	return v
}

// FreshRange returns a contiguous block of n new variables as a Range.
// Successive calls to Fresh/FreshRange return strictly increasing,
// non-overlapping ids.
func (s *Store) FreshRange(n int) Range {
	if n < 0 {
		panic("vars: negative range size")
	}
	begin := s.next
	s.next += z.Var(n)
	return Range{Begin: begin, End: s.next}
}

// Max returns the largest variable id handed out so far, or 0 if none
// has been.
func (s *Store) Max() z.Var {
	return s.next - 1
}
