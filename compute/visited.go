// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
)

// A Visited records which functions have already been classified.
// It never shrinks.
type Visited interface {
	// Insert adds f and reports whether it was not already present.
	Insert(f Func) bool
	// Len returns the number of functions inserted.
	Len() uint64
}

// A VisitedKind selects a Visited implementation.
type VisitedKind string

const (
	// VisitedBitmap is a dense bitmap with one bit per function.
	VisitedBitmap VisitedKind = "bitmap"
	// VisitedRoaring is a compressed bitmap that grows with use.
	VisitedRoaring VisitedKind = "roaring"
)

// NewVisited returns an empty visited set for a domain of n functions.
func NewVisited(kind VisitedKind, n uint64) (Visited, error) {
	switch kind {
	case VisitedBitmap, "":
		return NewBitmap(n), nil
	case VisitedRoaring:
		if n > 1<<32 {
			return nil, capacityErrorf("roaring visited set holds 2^32 functions, not %d", n)
		}
		return NewRoaring(), nil
	}
	return nil, domainErrorf("unknown visited set %q", string(kind))
}

// bitmapBytes returns the memory a Bitmap over n functions needs.
func bitmapBytes(n uint64) uint64 {
	return (n + 63) / 64 * 8
}

// A Bitmap holds one bit for each function in [0, n).
// Bit f lives in word f>>6 at offset f&63.
type Bitmap struct {
	words []uint64
	n     uint64 // number of bits set
}

// NewBitmap returns an empty Bitmap over n functions.
func NewBitmap(n uint64) *Bitmap {
	return &Bitmap{words: make([]uint64, (n+63)/64)}
}

func (b *Bitmap) Insert(f Func) bool {
	index := f >> 6
	bit := uint64(1) << (f & 63)
	if b.words[index]&bit != 0 {
		return false
	}
	b.words[index] |= bit
	b.n++
	return true
}

func (b *Bitmap) Len() uint64 { return b.n }

// An AtomicBitmap is a Bitmap that may be shared by goroutines
// classifying disjoint sets of orbits.
type AtomicBitmap struct {
	words []atomic.Uint64
	n     atomic.Uint64
}

// NewAtomicBitmap returns an empty AtomicBitmap over n functions.
func NewAtomicBitmap(n uint64) *AtomicBitmap {
	return &AtomicBitmap{words: make([]atomic.Uint64, (n+63)/64)}
}

func (b *AtomicBitmap) Insert(f Func) bool {
	w := &b.words[f>>6]
	bit := uint64(1) << (f & 63)
	for {
		old := w.Load()
		if old&bit != 0 {
			return false
		}
		if w.CompareAndSwap(old, old|bit) {
			b.n.Add(1)
			return true
		}
	}
}

func (b *AtomicBitmap) Len() uint64 { return b.n.Load() }

// A Roaring is a visited set backed by a roaring bitmap.
// Its memory grows with the number of functions inserted,
// which suits runs over a few popcount buckets of a large arity.
type Roaring struct {
	b *roaring.Bitmap
}

// NewRoaring returns an empty Roaring.
func NewRoaring() *Roaring {
	return &Roaring{b: roaring.New()}
}

func (r *Roaring) Insert(f Func) bool {
	return r.b.CheckedAdd(uint32(f))
}

func (r *Roaring) Len() uint64 { return r.b.GetCardinality() }
