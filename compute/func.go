// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	"fmt"
	"math/bits"
)

// MaxArgs is the largest arity whose functions a visited set can address.
// At MaxArgs the domain has 2^32 functions, so a bitmap needs 512 MB.
const MaxArgs = 5

// MaxExhaustiveArgs is the largest arity for which Exhaustive can hold
// every orbit in memory at once.
const MaxExhaustiveArgs = 4

// maxFuncArgs is the largest arity whose truth table fits in a Func.
const maxFuncArgs = 6

// A Func represents a single boolean function.
// It specifies only the outputs for each input,
// not a way to compute it: bit i is the output
// for the input assignment whose binary representation is i.
type Func uint64

func (f Func) String() string {
	return fmt.Sprintf("%#x", uint64(f))
}

// Ones returns the number of inputs for which f is true.
func (f Func) Ones() int {
	return bits.OnesCount64(uint64(f))
}

// literal returns the function whose value is always
// equal to the literal input #i over qvalues inputs.
func literal(i, qvalues int) Func {
	f := Func(0)
	for k := 0; k < qvalues; k++ {
		// k is a bit mask specifying an input.
		// k & (1<<i) is set if i is true in the input.
		// f & (1<<k) should be set if f(k) is true.
		f |= Func((k>>uint(i))&1) << uint(k)
	}
	return f
}

// NumClasses[n] is the number of NPN-equivalence classes of
// Boolean functions of n or fewer variables.
// http://oeis.org/A000370
var NumClasses = []int{1, 2, 4, 14, 222, 616126, 200253952527184}

// A bitswap exchanges the bits selected by mask with the bits
// selected by the mask shifted left by shift, keeping the bits in keep.
// That is,
//
//	f1 := f&keep | (f&mask)<<shift | (f>>shift)&mask
//
// Inverting input i has keep 0; swapping inputs i and i+1 keeps the
// assignments on which the two inputs agree.
type bitswap struct {
	keep  Func
	mask  Func
	shift uint
}

func (s bitswap) apply(f Func) Func {
	return f&s.keep | (f&s.mask)<<s.shift | (f>>s.shift)&s.mask
}

// noswap leaves every bit in place.
var noswap = bitswap{keep: ^Func(0)}

// invert[i] turns f(x) into f(x ^ 1<<i).
var invert = []bitswap{
	{0, 0x5555555555555555, 1},
	{0, 0x3333333333333333, 2},
	{0, 0x0f0f0f0f0f0f0f0f, 4},
	{0, 0x00ff00ff00ff00ff, 8},
	{0, 0x0000ffff0000ffff, 16},
	{0, 0x00000000ffffffff, 32},
}

// swap[i] exchanges inputs i and i+1.
var swap = []bitswap{
	{0x9999999999999999, 0x2222222222222222, 1},
	{0xc3c3c3c3c3c3c3c3, 0x0c0c0c0c0c0c0c0c, 2},
	{0xf00ff00ff00ff00f, 0x00f000f000f000f0, 4},
	{0xff0000ffff0000ff, 0x0000ff000000ff00, 8},
	{0xffff00000000ffff, 0x00000000ffff0000, 16},
}

// grayBits returns the bits to flip to step through all 2^n inversion
// vectors in Gray code order: entry i turns the i'th gray code into
// the i+1'th. The final entry is tweaked to return to the start,
// as a sanity check for our conversions.
// http://oeis.org/A007814
// See also Knuth 7.2.1.1.
func grayBits(n int) []int {
	out := make([]int, 1<<uint(n))
	for i := range out {
		out[i] = bits.TrailingZeros(uint(i + 1))
	}
	out[len(out)-1] = n - 1
	return out
}

// Generate the plain changes sequence for n: adjacent swaps
// (swap x with x+1) that cycle through all permutations of n items.
// Algorithm is from Knuth 7.2.1.2 Algorithm P (Plain changes).
// 17th century bell ringing algorithm.
func computePermuteBit(n int) []int {
	var out []int

	c := make([]int, n)
	o := make([]int, n)
	for i := range o {
		o[i] = 1
	}
P2:
	j := n
	s := 0
P4:
	q := c[j-1] + o[j-1]
	if q < 0 {
		goto P7
	}
	if q == j {
		goto P6
	}
	if x, y := j-c[j-1]+s, j-q+s; x < y {
		out = append(out, x-1)
	} else {
		out = append(out, y-1)
	}
	c[j-1] = q
	goto P2
P6:
	if j == 1 {
		// Final swap to return to normal.
		out = append(out, 0)
		if len(out) != fact(n) {
			panic("computePermuteBit: wrong length")
		}
		return out
	}
	s++
P7:
	o[j-1] = -o[j-1]
	j--
	goto P4
}

func fact(i int) int {
	m := 1
	for i > 1 {
		m *= i
		i--
	}
	return m
}
