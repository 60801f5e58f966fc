// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classtab writes tables of NPN classes, one record per class,
// as text or as raw binary words.
package classtab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"

	"rsc.io/npn/compute"
)

// A Writer writes class records.
type Writer interface {
	Write(c compute.Class) error
	// Flush writes any buffered data to the underlying writer.
	Flush() error
	// Sum64 returns a digest of the records written so far.
	// It depends only on the records, not on the encoding.
	Sum64() uint64
}

// A Format describes how to render the classes of one arity as text.
type Format struct {
	Base byte // 'b', 'd' or 'x'
	Args int
}

// ParseBase maps a format name to a Base.
func ParseBase(name string) (byte, error) {
	switch name {
	case "bin", "b":
		return 'b', nil
	case "dec", "d":
		return 'd', nil
	case "hex", "x":
		return 'x', nil
	}
	return 0, errors.Newf("unknown format %q", name)
}

// SeqWidth returns the width of the sequence number column.
func (f Format) SeqWidth() int {
	if f.Args < len(compute.NumClasses) {
		return max(6, len(strconv.Itoa(compute.NumClasses[f.Args])))
	}
	return 6
}

// FuncWidth returns the width of the truth table column.
// Binary and hex tables are zero-padded to the full table width.
func (f Format) FuncWidth() int {
	values := 1 << uint(f.Args)
	switch f.Base {
	case 'b':
		return values
	case 'x':
		return max(1, values/4)
	}
	// Decimal: digits of the largest function, 2^values-1.
	if values >= 64 {
		return len(strconv.FormatUint(^uint64(0), 10))
	}
	return len(strconv.FormatUint(1<<uint(values)-1, 10))
}

// SizeWidth returns the width of the orbit size column,
// wide enough for the largest orbit, 2 * Args! * 2^Args.
func (f Format) SizeWidth() int {
	n := 2 << uint(f.Args)
	for i := 2; i <= f.Args; i++ {
		n *= i
	}
	return max(4, len(strconv.Itoa(n)))
}

type textWriter struct {
	w      *bufio.Writer
	format Format
	line   string
	digest *xxhash.Digest
}

// NewTextWriter returns a Writer that writes one line per class:
// sequence number, truth table, orbit size, and + if every input
// is significant or - if not.
func NewTextWriter(w io.Writer, format Format) Writer {
	pad := ""
	if format.Base != 'd' {
		pad = "0"
	}
	return &textWriter{
		w:      bufio.NewWriter(w),
		format: format,
		line: fmt.Sprintf("%%%dd %%%s%d%c %%%dd %%c\n",
			format.SeqWidth(), pad, format.FuncWidth(), format.Base, format.SizeWidth()),
		digest: xxhash.New(),
	}
}

func (t *textWriter) Write(c compute.Class) error {
	writeDigest(t.digest, t.format.Args, c)
	sig := '-'
	if c.AllSignificant {
		sig = '+'
	}
	_, err := fmt.Fprintf(t.w, t.line, c.Seq, uint64(c.Func), c.Size, sig)
	return err
}

func (t *textWriter) Flush() error  { return t.w.Flush() }
func (t *textWriter) Sum64() uint64 { return t.digest.Sum64() }
