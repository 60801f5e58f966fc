// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dest opens the destination of a class table.
//
//	""  or "-"           standard output
//	gs://bucket/object   a Google Cloud Storage object
//	anything else        a local file
//
// A name ending in .zst is compressed with zstd, one ending in .lz4 with lz4.
package dest

import (
	"context"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Open opens the named destination for writing.
// Closing the result flushes and closes every layer.
func Open(ctx context.Context, name string) (io.WriteCloser, error) {
	var w io.WriteCloser
	switch {
	case name == "" || name == "-":
		w = nopCloser{os.Stdout}
	case strings.HasPrefix(name, "gs://"):
		bucket, object, err := ParseGS(name)
		if err != nil {
			return nil, err
		}
		w, err = openGCS(ctx, bucket, object)
		if err != nil {
			return nil, err
		}
	default:
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		w = f
	}
	return compress(name, w)
}

// ParseGS splits a gs://bucket/object URL.
func ParseGS(name string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(name, "gs://")
	i := strings.Index(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return "", "", errors.Newf("%s: want gs://bucket/object", name)
	}
	return rest[:i], rest[i+1:], nil
}

type gcsWriter struct {
	*storage.Writer
	client *storage.Client
}

func openGCS(ctx context.Context, bucket, object string) (io.WriteCloser, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}
	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"
	if strings.HasSuffix(object, ".raw") {
		w.ContentType = "application/octet-stream"
	}
	return &gcsWriter{Writer: w, client: client}, nil
}

func (w *gcsWriter) Close() error {
	err := w.Writer.Close()
	if cerr := w.client.Close(); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "gs://%s/%s", w.Writer.Bucket, w.Writer.Name)
}

// compress wraps w in the compressor selected by name's suffix.
func compress(name string, w io.WriteCloser) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		enc, err := zstd.NewWriter(w)
		if err != nil {
			w.Close()
			return nil, err
		}
		return &stack{enc, w}, nil
	case strings.HasSuffix(name, ".lz4"):
		return &stack{lz4.NewWriter(w), w}, nil
	}
	return w, nil
}

// A stack writes to its top and closes top to bottom.
type stack struct {
	top    io.WriteCloser
	bottom io.WriteCloser
}

func (s *stack) Write(p []byte) (int, error) { return s.top.Write(p) }

func (s *stack) Close() error {
	err := s.top.Close()
	if cerr := s.bottom.Close(); err == nil {
		err = cerr
	}
	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
