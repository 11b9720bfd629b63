// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

package main

var usage = `%s usage: %s [options] <input.aig>

%s reads an AIG (ASCII aag or binary aig) describing a sequential
circuit with a single error property and checks whether the error is
reachable from the initial states. It prints an AIGER witness to
stdout: "0" if the property holds, or "1" followed by a concrete
initial state and input trace if it does not.

%s has the following options:

`
