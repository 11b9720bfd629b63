// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package aigbuild

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// trueLiterals computes the set of AIG literals known constant true by
// a single forward pass over the AND gates in declaration order
// (spec.md §4.5's true_literals). A literal m is in the returned set
// iff m is provably always true; m.Not() being in the set means m is
// provably always false.
func trueLiterals(sys *logic.S) map[z.Lit]bool {
	trueLits := map[z.Lit]bool{sys.T: true}
	n := sys.Len()
	for i := 1; i < n; i++ {
		m := sys.At(i)
		if sys.Type(m) != logic.SAnd {
			continue
		}
		a, b := sys.Ins(m)
		switch {
		case trueLits[a] && trueLits[b]:
			trueLits[m] = true
		case trueLits[a.Not()] || trueLits[b.Not()]:
			trueLits[m.Not()] = true
		}
	}
	return trueLits
}
