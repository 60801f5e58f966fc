// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisited(t *testing.T) {
	for _, kind := range []VisitedKind{VisitedBitmap, VisitedRoaring} {
		t.Run(string(kind), func(t *testing.T) {
			v, err := NewVisited(kind, 1<<10)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), v.Len())

			for _, f := range []Func{0, 63, 64, 1023, 500} {
				assert.True(t, v.Insert(f), "first insert of %v", f)
				assert.False(t, v.Insert(f), "second insert of %v", f)
			}
			assert.Equal(t, uint64(5), v.Len())
		})
	}
}

func TestNewVisitedErrors(t *testing.T) {
	_, err := NewVisited("btree", 16)
	assert.True(t, errors.Is(err, ErrDomain), "%v", err)

	_, err = NewVisited(VisitedRoaring, 1<<33)
	assert.True(t, errors.Is(err, ErrCapacity), "%v", err)
}

func TestBitmapSize(t *testing.T) {
	assert.Len(t, NewBitmap(2).words, 1)
	assert.Len(t, NewBitmap(64).words, 1)
	assert.Len(t, NewBitmap(65).words, 2)
	assert.Equal(t, uint64(1<<29), bitmapBytes(1<<32))
}

func TestAtomicBitmapConcurrent(t *testing.T) {
	const n = 1 << 12
	b := NewAtomicBitmap(n)

	var wg sync.WaitGroup
	inserted := make([]int, 8)
	for w := range inserted {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for f := Func(0); f < n; f++ {
				if b.Insert(f) {
					inserted[w]++
				}
			}
		}(w)
	}
	wg.Wait()

	total := 0
	for _, x := range inserted {
		total += x
	}
	assert.Equal(t, n, total)
	assert.Equal(t, uint64(n), b.Len())
}
