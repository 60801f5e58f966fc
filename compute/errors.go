// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import "github.com/cockroachdb/errors"

var (
	// ErrCapacity reports an arity whose function space does not fit
	// the visited set (or the configured memory limit).
	ErrCapacity = errors.New("npn: arity exceeds capacity")

	// ErrDomain reports an argument outside its domain,
	// such as a negative arity or a ones count above 2^qargs.
	ErrDomain = errors.New("npn: argument out of domain")
)

func capacityErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCapacity, format, args...)
}

func domainErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDomain, format, args...)
}
