// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classtab

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"

	"rsc.io/npn/compute"
)

// The raw format is a sequence of records of four big-endian 32-bit
// words: arity, truth table, orbit size, flags. Sequence numbers are
// implied by record order: they restart at 1 on a record flagged as
// the first of its table. Tables may be concatenated.
const (
	rawWords = 4

	flagAllSignificant = 1 << 0
	flagFirst          = 1 << 1 // first record of a table
)

// A Record is one class read back from a raw table.
type Record struct {
	Args int
	compute.Class
}

type intwriter struct {
	*bufio.Writer
	buf [4]byte
}

func (w *intwriter) Write(x uint32) {
	binary.BigEndian.PutUint32(w.buf[:], x)
	w.Writer.Write(w.buf[:])
}

type rawWriter struct {
	w       *intwriter
	args    int
	started bool
	digest  *xxhash.Digest
}

// NewRawWriter returns a Writer that writes the classes of one arity
// in the raw format.
func NewRawWriter(w io.Writer, args int) Writer {
	return &rawWriter{
		w:      &intwriter{Writer: bufio.NewWriter(w)},
		args:   args,
		digest: xxhash.New(),
	}
}

func (r *rawWriter) Write(c compute.Class) error {
	if c.Func > 0xffffffff || c.Size > 0xffffffff {
		return errors.Newf("class %v of size %d does not fit the raw format", c.Func, c.Size)
	}
	writeDigest(r.digest, r.args, c)
	var flags uint32
	if c.AllSignificant {
		flags |= flagAllSignificant
	}
	if !r.started {
		flags |= flagFirst
		r.started = true
	}
	r.w.Write(uint32(r.args))
	r.w.Write(uint32(c.Func))
	r.w.Write(uint32(c.Size))
	r.w.Write(flags)
	return nil
}

func (r *rawWriter) Flush() error  { return r.w.Flush() }
func (r *rawWriter) Sum64() uint64 { return r.digest.Sum64() }

// ReadRaw reads a raw table to the end.
func ReadRaw(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	var out []Record
	var buf [rawWords * 4]byte
	seq := 0
	for {
		n, err := io.ReadFull(br, buf[:])
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, errors.Wrapf(err, "raw table: record %d (%d bytes)", len(out)+1, n)
		}
		var w [rawWords]uint32
		for i := range w {
			w[i] = binary.BigEndian.Uint32(buf[4*i:])
		}
		args := int(w[0])
		if len(out) == 0 || out[len(out)-1].Args != args || w[3]&flagFirst != 0 {
			seq = 0
		}
		seq++
		out = append(out, Record{
			Args: args,
			Class: compute.Class{
				Seq:            seq,
				Func:           compute.Func(w[1]),
				Size:           uint64(w[2]),
				AllSignificant: w[3]&flagAllSignificant != 0,
			},
		})
	}
}

// writeDigest adds c to d in a fixed encoding, so text and raw
// writers agree on the digest of the same table.
func writeDigest(d *xxhash.Digest, args int, c compute.Class) {
	var buf [8 * 4]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(args))
	binary.LittleEndian.PutUint64(buf[8:], uint64(c.Seq))
	binary.LittleEndian.PutUint64(buf[16:], uint64(c.Func))
	sz := c.Size << 1
	if c.AllSignificant {
		sz |= 1
	}
	binary.LittleEndian.PutUint64(buf[24:], sz)
	d.Write(buf[:])
}
