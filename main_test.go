// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsc.io/npn/argspec"
	"rsc.io/npn/classtab"
	"rsc.io/npn/compute"
)

func npn(t *testing.T, args ...string) error {
	t.Helper()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{}, args...))
	return cmd.ExecuteContext(context.Background())
}

func TestHexTable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "table")
	require.NoError(t, npn(t, "2", "-o", out, "-f", "hex"))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, ""+
		"     1 0    2 -\n"+
		"     2 1    8 +\n"+
		"     3 3    4 -\n"+
		"     4 6    2 +\n", string(data))
}

func TestRawExhaustive(t *testing.T) {
	out := filepath.Join(t.TempDir(), "table.zst")
	require.NoError(t, npn(t, "--exhaustive", "-f", "raw", "-o", out, "1", "3"))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()
	slow, err := classtab.ReadRaw(dec)
	require.NoError(t, err)
	require.Len(t, slow, compute.NumClasses[1]+compute.NumClasses[3])

	fast := filepath.Join(t.TempDir(), "table")
	require.NoError(t, npn(t, "-f", "raw", "-o", fast, "--workers", "3", "1", "3"))
	data, err := os.ReadFile(fast)
	require.NoError(t, err)
	recs, err := classtab.ReadRaw(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, recs, compute.NumClasses[1]+compute.NumClasses[3])
	assert.Equal(t, 1, recs[0].Args)
	assert.Equal(t, 3, recs[len(recs)-1].Args)
	assert.Equal(t, 1, recs[compute.NumClasses[1]].Seq)

	// Both modes find the same representatives.
	for i := range recs {
		slow[i].Seq, recs[i].Seq = 0, 0
	}
	assert.ElementsMatch(t, slow, recs)
}

func TestBadInvocations(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "never")

	err := npn(t, "-o", out, "2:x")
	assert.True(t, errors.Is(err, argspec.ErrSyntax), "%v", err)

	err = npn(t, "-o", out, "-f", "octal", "2")
	assert.Error(t, err)

	err = npn(t, "-o", out, "2", "6")
	assert.True(t, errors.Is(err, compute.ErrCapacity), "%v", err)

	err = npn(t, "-o", out, "--exhaustive", "5")
	assert.True(t, errors.Is(err, compute.ErrCapacity), "%v", err)

	err = npn(t, "-o", out, "--visited", "btree", "2")
	assert.True(t, errors.Is(err, compute.ErrDomain), "%v", err)

	// Nothing is written unless every spec is valid.
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "%v", err)

	err = npn(t)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "requires at least 1 arg"), "%v", err)
}
