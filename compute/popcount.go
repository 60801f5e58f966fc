// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import "math/bits"

// NextCombination returns the smallest integer greater than x
// with the same number of one bits (Gosper's hack).
// x must be non-zero and its result must fit in 64 bits.
func NextCombination(x uint64) uint64 {
	a := x & -x // lowest one bit
	b := x + a  // ripple the lowest block of ones up one place
	c := (b ^ x) >> uint(1+bits.Len64(a))
	return b | c
}
