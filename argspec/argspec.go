// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argspec parses the command-line form of an enumeration request:
//
//	N                    every class of N-input functions
//	N:ones[,ones|lo-hi]* only the listed popcount buckets, in order
//
// For example, 5:0-3,16 classifies the 5-input functions seeded from
// the buckets with 0, 1, 2, 3 and 16 one bits.
package argspec

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrSyntax marks a malformed specification.
var ErrSyntax = errors.New("invalid argument spec")

// A Spec is one parsed request.
type Spec struct {
	Args int
	Ones []int // nil means every bucket
}

func (s Spec) String() string {
	if s.Ones == nil {
		return strconv.Itoa(s.Args)
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.Args))
	for i, k := range s.Ones {
		if i == 0 {
			b.WriteByte(':')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(k))
	}
	return b.String()
}

// Parse parses a single specification.
func Parse(s string) (Spec, error) {
	var spec Spec
	args, ones, hasOnes := strings.Cut(s, ":")
	n, err := atoi(args)
	if err != nil {
		return spec, syntaxf(s, "bad arity %q", args)
	}
	spec.Args = n
	if !hasOnes {
		return spec, nil
	}
	if ones == "" {
		return spec, syntaxf(s, "empty ones list")
	}
	spec.Ones = []int{}
	for _, f := range strings.Split(ones, ",") {
		lo, hi, isRange := strings.Cut(f, "-")
		l, err := atoi(lo)
		if err != nil {
			return spec, syntaxf(s, "bad ones count %q", f)
		}
		if !isRange {
			spec.Ones = append(spec.Ones, l)
			continue
		}
		h, err := atoi(hi)
		if err != nil || h < l {
			return spec, syntaxf(s, "bad ones range %q", f)
		}
		for k := l; k <= h; k++ {
			spec.Ones = append(spec.Ones, k)
		}
	}
	return spec, nil
}

// ParseAll parses each of args in turn.
func ParseAll(args []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(args))
	for _, a := range args {
		s, err := Parse(a)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// atoi accepts only plain non-negative decimal numbers.
func atoi(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

func syntaxf(spec, format string, args ...interface{}) error {
	return errors.Wrapf(errors.Mark(errors.Newf(format, args...), ErrSyntax), "argument %q", spec)
}
