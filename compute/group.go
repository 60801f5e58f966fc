// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// A Group is the NPN symmetry group for a fixed number of inputs.
// It is built once per arity and is immutable afterward,
// so it may be shared between goroutines.
type Group struct {
	args       int
	values     int
	full       Func
	transforms []Transform

	// The walk applies gray[i] and then every step of perm in turn,
	// for each i. Starting from f that visits every input transform
	// of f exactly once and ends back at f.
	gray []bitswap
	perm []bitswap
}

// NewGroup builds the group of input permutations and inversions
// over qargs inputs.
func NewGroup(qargs int) (*Group, error) {
	if qargs < 0 {
		return nil, domainErrorf("negative arity %d", qargs)
	}
	if qargs > maxFuncArgs {
		return nil, capacityErrorf("arity %d: truth tables wider than 64 bits", qargs)
	}
	g := &Group{
		args:       qargs,
		values:     1 << uint(qargs),
		transforms: Transforms(qargs),
	}
	g.full = ^Func(0) >> uint(64-g.values)

	switch qargs {
	case 0:
		g.gray = []bitswap{noswap}
	default:
		for _, i := range grayBits(qargs) {
			g.gray = append(g.gray, invert[i])
		}
	}
	switch qargs {
	case 0, 1:
		g.perm = []bitswap{noswap}
	default:
		for _, j := range computePermuteBit(qargs) {
			g.perm = append(g.perm, swap[j])
		}
	}
	return g, nil
}

// Args returns the number of inputs.
func (g *Group) Args() int { return g.args }

// Values returns the number of input assignments, 2^Args.
func (g *Group) Values() int { return g.values }

// Functions returns the number of boolean functions, 2^Values.
// It is 0 when that does not fit in a uint64 (Args == 6).
func (g *Group) Functions() uint64 {
	if g.values >= 64 {
		return 0
	}
	return 1 << uint(g.values)
}

// Full returns the constant true function.
func (g *Group) Full() Func { return g.full }

// Complement returns the output inversion of f.
func (g *Group) Complement(f Func) Func { return f ^ g.full }

// Transforms returns the explicit transform set. It must not be modified.
func (g *Group) Transforms() []Transform { return g.transforms }

// each calls fn for every input transform of f.
func (g *Group) each(f Func, fn func(Func)) {
	f0 := f
	for _, inv := range g.gray {
		f = inv.apply(f)
		f1 := f
		for _, sw := range g.perm {
			f = sw.apply(f)
			fn(f)
		}
		if f != f1 {
			panic("orbit permute did not cycle")
		}
	}
	if f != f0 {
		panic("orbit did not cycle")
	}
}

// Orbit calls fn for every function NPN-equivalent to f: each input
// transform of f, in both output polarities. Functions fixed by some
// transform are passed more than once.
func (g *Group) Orbit(f Func, fn func(Func)) {
	g.each(f, func(h Func) {
		fn(h)
		fn(h ^ g.full)
	})
}

// OrbitSet returns the orbit of f as a set, computed by applying every
// element of the explicit transform set.
func (g *Group) OrbitSet(f Func) mapset.Set[Func] {
	orbit := mapset.NewThreadUnsafeSet[Func]()
	for _, t := range g.transforms {
		h := t.Apply(f, g.values)
		orbit.Add(h)
		orbit.Add(h ^ g.full)
	}
	return orbit
}

// Min returns the canonical representative of f's class,
// the smallest function in its orbit.
func (g *Group) Min(f Func) Func {
	minf := f
	g.Orbit(f, func(h Func) {
		if h < minf {
			minf = h
		}
	})
	return minf
}

// Size returns the number of distinct functions in f's orbit.
func (g *Group) Size(f Func) int {
	seen := make(map[Func]bool)
	g.Orbit(f, func(h Func) {
		seen[h] = true
	})
	return len(seen)
}

// Significant reports whether f depends on every one of its inputs.
func (g *Group) Significant(f Func) bool {
	for i := 0; i < g.args; i++ {
		if invert[i].apply(f) == f {
			return false
		}
	}
	return true
}

// Support returns the inputs that f depends on, in increasing order.
func (g *Group) Support(f Func) []int {
	var out []int
	for i := 0; i < g.args; i++ {
		if invert[i].apply(f) != f {
			out = append(out, i)
		}
	}
	return out
}
