// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

// A Transform is one element of the input symmetry group:
// input i is complemented if Inv[i] and then moved to slot Perm[i].
type Transform struct {
	Perm []int
	Inv  []bool
}

// Coarg returns the input assignment that arg is mapped to.
func (t Transform) Coarg(arg int) int {
	coarg := 0
	for i, j := range t.Perm {
		bit := arg>>uint(i)&1 == 1
		if bit != t.Inv[i] {
			coarg |= 1 << uint(j)
		}
	}
	return coarg
}

// Apply returns the function g with g(Coarg(x)) = f(x)
// for every one of the qvalues input assignments x.
// Since Coarg is a bijection, the output-complemented image
// is Apply(f) ^ full.
func (t Transform) Apply(f Func, qvalues int) Func {
	var g Func
	for arg := 0; arg < qvalues; arg++ {
		if f&(1<<uint(arg)) != 0 {
			g |= 1 << uint(t.Coarg(arg))
		}
	}
	return g
}

// Transforms returns every (permutation, inversion) pair over qargs inputs:
// permutations in lexicographic order, and for each permutation the
// inversion vectors in increasing binary order, first input most significant.
// The result has qargs! * 2^qargs elements and must not be modified.
func Transforms(qargs int) []Transform {
	n := 1 << uint(qargs)
	out := make([]Transform, 0, fact(qargs)*n)
	perm := make([]int, qargs)
	for i := range perm {
		perm[i] = i
	}
	for {
		for mask := 0; mask < n; mask++ {
			t := Transform{
				Perm: append([]int(nil), perm...),
				Inv:  make([]bool, qargs),
			}
			for i := range t.Inv {
				t.Inv[i] = mask>>uint(qargs-1-i)&1 == 1
			}
			out = append(out, t)
		}
		if !nextPermutation(perm) {
			return out
		}
	}
}

// nextPermutation rearranges p into the lexicographically next
// permutation, reporting false when p was already the last one.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
