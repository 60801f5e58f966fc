// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compute enumerates the NPN equivalence classes of boolean
// functions: the orbits of truth tables under permuting the inputs,
// inverting any subset of the inputs, and inverting the output.
//
// Enumerate is the fast path. It seeds candidates in popcount order and
// marks every member of each new orbit in a visited set with one bit per
// function. Exhaustive computes the orbit of every function and is kept
// as a reference for small arities.
package compute
