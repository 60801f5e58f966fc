// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// A Class is one NPN equivalence class found by an enumeration.
type Class struct {
	Seq            int    // 1-based discovery order
	Func           Func   // smallest member of the class
	Size           uint64 // number of functions in the class
	AllSignificant bool   // Func depends on every input
}

// Stats summarizes a finished enumeration.
type Stats struct {
	Classes   int
	Functions uint64 // sum of the class sizes
}

// Config controls an enumeration.
type Config struct {
	// Args is the number of inputs.
	Args int

	// Ones lists the popcount buckets to seed candidates from, in order.
	// Nil means every bucket from 0 to 2^Args/2, which covers every class.
	Ones []int

	// Visited selects the visited set; the default is VisitedBitmap.
	Visited VisitedKind

	// Workers > 1 classifies independent buckets concurrently.
	// The classes are still reported in sequential order.
	Workers int

	// MaxMemory bounds the size of a bitmap visited set in bytes.
	// Zero means no bound.
	MaxMemory uint64

	// Log receives progress messages. Nil means logrus.StandardLogger().
	Log logrus.FieldLogger
}

type enumerator struct {
	g       *Group
	ones    []int
	full    bool // ones covers every class
	log     logrus.FieldLogger
	metrics *counters
}

func newEnumerator(cfg Config) (*enumerator, error) {
	if cfg.Args > MaxArgs {
		return nil, errors.WithHintf(
			capacityErrorf("arity %d: visited set cannot address 2^(2^%d) functions", cfg.Args, cfg.Args),
			"at most %d inputs are supported", MaxArgs)
	}
	g, err := NewGroup(cfg.Args)
	if err != nil {
		return nil, err
	}
	switch cfg.Visited {
	case VisitedBitmap, "":
		if need := bitmapBytes(g.Functions()); cfg.MaxMemory != 0 && need > cfg.MaxMemory {
			return nil, errors.WithHint(
				capacityErrorf("arity %d: bitmap needs %d bytes, limit is %d", cfg.Args, need, cfg.MaxMemory),
				"raise the memory limit or use the roaring visited set")
		}
	case VisitedRoaring:
	default:
		return nil, domainErrorf("unknown visited set %q", string(cfg.Visited))
	}
	e := &enumerator{
		g:       g,
		ones:    cfg.Ones,
		log:     cfg.Log,
		metrics: newCounters(cfg.Args),
	}
	if e.log == nil {
		e.log = logrus.StandardLogger()
	}
	e.log = e.log.WithField("args", cfg.Args)
	if e.ones == nil {
		e.full = true
		for k := 0; k <= g.values/2; k++ {
			e.ones = append(e.ones, k)
		}
	}
	for _, k := range e.ones {
		if k < 0 || k > g.values {
			return nil, domainErrorf("ones count %d outside [0, %d]", k, g.values)
		}
	}
	return e, nil
}

// Validate reports whether cfg describes an enumeration that can run,
// without running it. If exhaustive is set, it checks the limits of
// Exhaustive instead of Enumerate.
func (cfg Config) Validate(exhaustive bool) error {
	if exhaustive {
		_, err := exhaustiveGroup(cfg)
		return err
	}
	_, err := newEnumerator(cfg)
	return err
}

// bucket classifies every function with k one bits below 2^(qvalues-1)
// that visited does not yet hold, calling fn for each new class.
// The classes passed to fn have no sequence number.
func (e *enumerator) bucket(k int, visited Visited, fn func(Class) error) error {
	last := Func(1) << uint(e.g.values-1)
	for f := Func(1)<<uint(k) - 1; f < last; f = Func(NextCombination(uint64(f))) {
		if visited.Insert(f) {
			if err := e.classify(f, visited, fn); err != nil {
				return err
			}
		} else {
			e.metrics.skipped.Inc()
		}
		if f == 0 {
			// Nothing else has no one bits, and NextCombination(0) is 0.
			break
		}
	}
	return nil
}

// classify streams the orbit of the newly visited f into visited
// and passes the resulting class to fn.
func (e *enumerator) classify(f Func, visited Visited, fn func(Class) error) error {
	c := Class{Func: f, Size: 1}
	e.g.Orbit(f, func(h Func) {
		if visited.Insert(h) {
			c.Size++
		}
		if h < c.Func {
			c.Func = h
		}
	})
	c.AllSignificant = e.g.Significant(c.Func)
	e.metrics.class(c.Size)
	return fn(c)
}

// Enumerate reports the NPN classes of functions of cfg.Args inputs,
// seeding candidates from the popcount buckets cfg.Ones and skipping
// every function already seen in the orbit of an earlier class.
// Classes are passed to emit in discovery order. Enumerate stops early
// if emit returns an error or ctx is canceled.
func Enumerate(ctx context.Context, cfg Config, emit func(Class) error) (Stats, error) {
	e, err := newEnumerator(cfg)
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	if cfg.Workers > 1 {
		stats, err = e.parallel(ctx, cfg.Workers, cfg.Visited, emit)
	} else {
		stats, err = e.sequential(ctx, cfg.Visited, emit)
	}
	if err != nil {
		return stats, err
	}
	if e.full && stats.Functions != e.g.Functions() {
		return stats, errors.AssertionFailedf("classes cover %d functions, want %d",
			stats.Functions, e.g.Functions())
	}
	e.log.WithFields(logrus.Fields{
		"classes":   stats.Classes,
		"functions": stats.Functions,
	}).Info("enumeration done")
	return stats, nil
}

func (e *enumerator) sequential(ctx context.Context, kind VisitedKind, emit func(Class) error) (Stats, error) {
	var stats Stats
	visited, err := NewVisited(kind, e.g.Functions())
	if err != nil {
		return stats, err
	}
	for _, k := range e.ones {
		n := 0
		err := e.bucket(k, visited, func(c Class) error {
			n++
			stats.Classes++
			stats.Functions += c.Size
			c.Seq = stats.Classes
			if err := emit(c); err != nil {
				return err
			}
			return ctx.Err()
		})
		if err != nil {
			return stats, err
		}
		e.log.WithFields(logrus.Fields{
			"ones":    k,
			"classes": n,
			"visited": visited.Len(),
		}).Debug("bucket done")
	}
	return stats, nil
}

// parallel classifies buckets concurrently. An orbit holds only
// functions with k or 2^qargs-k one bits, so buckets are grouped by
// that pair; the groups never share an orbit and each one runs its
// buckets in order against the visited set, exactly as sequential does.
func (e *enumerator) parallel(ctx context.Context, workers int, kind VisitedKind, emit func(Class) error) (Stats, error) {
	var stats Stats
	var families [][]int // positions in e.ones
	byKey := make(map[int]int)
	for pos, k := range e.ones {
		key := min(k, e.g.values-k)
		i, ok := byKey[key]
		if !ok {
			i = len(families)
			byKey[key] = i
			families = append(families, nil)
		}
		families[i] = append(families[i], pos)
	}

	var shared Visited
	if kind == VisitedBitmap || kind == "" {
		shared = NewAtomicBitmap(e.g.Functions())
	}

	found := make([][]Class, len(e.ones))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, family := range families {
		family := family
		eg.Go(func() error {
			visited := shared
			if visited == nil {
				v, err := NewVisited(kind, e.g.Functions())
				if err != nil {
					return err
				}
				visited = v
			}
			for _, pos := range family {
				err := e.bucket(e.ones[pos], visited, func(c Class) error {
					found[pos] = append(found[pos], c)
					return gctx.Err()
				})
				if err != nil {
					return err
				}
				e.log.WithFields(logrus.Fields{
					"ones":    e.ones[pos],
					"classes": len(found[pos]),
				}).Debug("bucket done")
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return stats, err
	}

	for _, classes := range found {
		for _, c := range classes {
			stats.Classes++
			stats.Functions += c.Size
			c.Seq = stats.Classes
			if err := emit(c); err != nil {
				return stats, err
			}
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}
