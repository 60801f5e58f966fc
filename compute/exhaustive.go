// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	"context"

	"github.com/cockroachdb/errors"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

// Exhaustive reports the NPN classes of functions of cfg.Args inputs by
// computing the orbit of every function in increasing order. A function
// that is the minimum of its orbit starts a new class; any other function
// must reproduce the orbit recorded for its minimum. It is much slower
// than Enumerate and serves as a reference for it.
//
// Only cfg.Args and cfg.Log are used.
func Exhaustive(ctx context.Context, cfg Config, emit func(Class) error) (Stats, error) {
	var stats Stats
	g, err := exhaustiveGroup(cfg)
	if err != nil {
		return stats, err
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("args", cfg.Args)
	metrics := newCounters(cfg.Args)

	n := g.Functions()
	recorded := make(map[Func]mapset.Set[Func])
	for i := uint64(0); i < n; i++ {
		f := Func(i)
		orbit := g.OrbitSet(f)
		m := f
		orbit.Each(func(h Func) bool {
			if h < m {
				m = h
			}
			return false
		})

		if m != f {
			prev, ok := recorded[m]
			if !ok {
				return stats, errors.AssertionFailedf("orbit of %v has minimum %v, which has no class", f, m)
			}
			if !prev.Equal(orbit) {
				return stats, errors.AssertionFailedf("orbit of %v differs from the orbit of its minimum %v", f, m)
			}
			continue
		}

		recorded[f] = orbit
		c := Class{
			Seq:            stats.Classes + 1,
			Func:           f,
			Size:           uint64(orbit.Cardinality()),
			AllSignificant: g.Significant(f),
		}
		stats.Classes++
		stats.Functions += c.Size
		metrics.class(c.Size)
		if err := emit(c); err != nil {
			return stats, err
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
	}

	if stats.Functions != n {
		return stats, errors.AssertionFailedf("classes cover %d functions, want %d", stats.Functions, n)
	}
	log.WithFields(logrus.Fields{
		"classes":   stats.Classes,
		"functions": stats.Functions,
	}).Info("exhaustive enumeration done")
	return stats, nil
}

func exhaustiveGroup(cfg Config) (*Group, error) {
	if cfg.Args > MaxExhaustiveArgs {
		return nil, capacityErrorf("arity %d: exhaustive mode keeps every orbit, at most %d inputs",
			cfg.Args, MaxExhaustiveArgs)
	}
	if cfg.Ones != nil {
		return nil, domainErrorf("exhaustive mode classifies every function, cannot select ones %v", cfg.Ones)
	}
	return NewGroup(cfg.Args)
}
