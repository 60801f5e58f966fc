// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classtab

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsc.io/npn/compute"
)

var arity2 = []compute.Class{
	{Seq: 1, Func: 0x0, Size: 2, AllSignificant: false},
	{Seq: 2, Func: 0x1, Size: 8, AllSignificant: true},
	{Seq: 3, Func: 0x3, Size: 4, AllSignificant: false},
	{Seq: 4, Func: 0x6, Size: 2, AllSignificant: true},
}

func writeAll(t *testing.T, w Writer, classes []compute.Class) {
	t.Helper()
	for _, c := range classes {
		require.NoError(t, w.Write(c))
	}
	require.NoError(t, w.Flush())
}

func TestTextWriter(t *testing.T) {
	tests := []struct {
		base byte
		want string
	}{
		{'b', "" +
			"     1 0000    2 -\n" +
			"     2 0001    8 +\n" +
			"     3 0011    4 -\n" +
			"     4 0110    2 +\n"},
		{'x', "" +
			"     1 0    2 -\n" +
			"     2 1    8 +\n" +
			"     3 3    4 -\n" +
			"     4 6    2 +\n"},
		{'d', "" +
			"     1  0    2 -\n" +
			"     2  1    8 +\n" +
			"     3  3    4 -\n" +
			"     4  6    2 +\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		writeAll(t, NewTextWriter(&buf, Format{Base: tt.base, Args: 2}), arity2)
		assert.Equal(t, tt.want, buf.String(), "base %c", tt.base)
	}
}

func TestFormatWidths(t *testing.T) {
	f := Format{Base: 'b', Args: 5}
	assert.Equal(t, 6, f.SeqWidth())
	assert.Equal(t, 32, f.FuncWidth())
	assert.Equal(t, 4, f.SizeWidth()) // 2*120*32 = 7680

	f = Format{Base: 'x', Args: 5}
	assert.Equal(t, 8, f.FuncWidth())
	f = Format{Base: 'd', Args: 5}
	assert.Equal(t, 10, f.FuncWidth())
	f = Format{Base: 'd', Args: 6}
	assert.Equal(t, 20, f.FuncWidth())
	assert.Equal(t, 15, f.SeqWidth())
	assert.Equal(t, 5, f.SizeWidth()) // 2*720*64 = 92160

	f = Format{Base: 'x', Args: 0}
	assert.Equal(t, 1, f.FuncWidth())
}

func TestParseBase(t *testing.T) {
	for name, want := range map[string]byte{"bin": 'b', "dec": 'd', "hex": 'x', "x": 'x'} {
		got, err := ParseBase(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseBase("oct")
	assert.Error(t, err)
}

func TestRawRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewRawWriter(&buf, 2)
	writeAll(t, w, arity2)
	assert.Equal(t, len(arity2)*rawWords*4, buf.Len())

	w1 := NewRawWriter(&buf, 1)
	writeAll(t, w1, []compute.Class{{Seq: 1, Func: 0, Size: 2}, {Seq: 2, Func: 1, Size: 2, AllSignificant: true}})

	recs, err := ReadRaw(&buf)
	require.NoError(t, err)
	require.Len(t, recs, 6)

	var got []compute.Class
	for _, r := range recs[:4] {
		assert.Equal(t, 2, r.Args)
		got = append(got, r.Class)
	}
	if diff := cmp.Diff(arity2, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	assert.Equal(t, Record{Args: 1, Class: compute.Class{Seq: 2, Func: 1, Size: 2, AllSignificant: true}}, recs[5])
}

func TestRawSameArityTables(t *testing.T) {
	var buf bytes.Buffer
	writeAll(t, NewRawWriter(&buf, 2), arity2[:2])
	writeAll(t, NewRawWriter(&buf, 2), arity2[2:])

	recs, err := ReadRaw(&buf)
	require.NoError(t, err)
	var seqs []int
	for _, r := range recs {
		seqs = append(seqs, r.Seq)
	}
	assert.Equal(t, []int{1, 2, 1, 2}, seqs)
}

func TestReadRawTruncated(t *testing.T) {
	var buf bytes.Buffer
	writeAll(t, NewRawWriter(&buf, 2), arity2)
	_, err := ReadRaw(bytes.NewReader(buf.Bytes()[:buf.Len()-3]))
	assert.Error(t, err)
}

func TestDigest(t *testing.T) {
	var text, raw strings.Builder
	tw := NewTextWriter(&text, Format{Base: 'x', Args: 2})
	rw := NewRawWriter(&raw, 2)
	writeAll(t, tw, arity2)
	writeAll(t, rw, arity2)
	assert.Equal(t, tw.Sum64(), rw.Sum64())

	other := NewTextWriter(&text, Format{Base: 'x', Args: 2})
	changed := append([]compute.Class(nil), arity2...)
	changed[3].AllSignificant = false
	writeAll(t, other, changed)
	assert.NotEqual(t, tw.Sum64(), other.Sum64())
}
