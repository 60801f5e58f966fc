// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Npn enumerates the NPN equivalence classes of boolean functions.
//
// Usage:
//
//	npn [-f bin|dec|hex|raw] [-o dest] [--exhaustive] [--visited bitmap|roaring]
//	    [--workers n] [--max-memory bytes] [--metrics] spec...
//	npn serve [--http address] [--max-args n]
//
// Each spec is N, for every class of N-input functions, or
// N:ones[,ones|lo-hi]*, for the classes seeded from the listed
// popcount buckets. Each class is printed as one line: sequence number,
// canonical truth table, class size, and + if the function depends on
// every input.
//
// The destination may be a file, gs://bucket/object, or - for standard
// output; a .zst or .lz4 suffix compresses it.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/VictoriaMetrics/metrics"
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rsc.io/npn/argspec"
	"rsc.io/npn/classtab"
	"rsc.io/npn/compute"
	"rsc.io/npn/dest"
	"rsc.io/npn/web"
)

type options struct {
	format     string
	output     string
	exhaustive bool
	visited    string
	workers    int
	maxMemory  uint64
	metrics    bool
	debug      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if hint := errors.FlattenHints(err); hint != "" {
			log.Info(hint)
		}
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "npn [flags] spec...",
		Short: "Enumerate NPN classes of boolean functions",
		Long: `Enumerate the NPN equivalence classes of boolean functions: the classes
of functions equal up to permuting inputs, inverting inputs, and
inverting the output. Each spec is N or N:ones[,ones|lo-hi]*.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	addFlags(cmd.Flags(), opts)
	cmd.AddCommand(newServeCmd())
	return cmd
}

func addFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.format, "format", "f", "bin", "table `format`: bin, dec, hex or raw")
	flags.StringVarP(&opts.output, "output", "o", "-", "write the table to `dest`")
	flags.BoolVar(&opts.exhaustive, "exhaustive", false, "compute the orbit of every function (slow, at most 4 inputs)")
	flags.StringVar(&opts.visited, "visited", string(compute.VisitedBitmap), "visited set: bitmap or roaring")
	flags.IntVar(&opts.workers, "workers", 1, "classify up to `n` popcount buckets concurrently")
	flags.Uint64Var(&opts.maxMemory, "max-memory", 1<<30, "refuse bitmaps larger than `bytes` (0 for no limit)")
	flags.BoolVar(&opts.metrics, "metrics", false, "write metrics to standard error when done")
}

func run(ctx context.Context, opts *options, args []string) error {
	specs, err := argspec.ParseAll(args)
	if err != nil {
		return err
	}
	var base byte
	if opts.format != "raw" {
		if base, err = classtab.ParseBase(opts.format); err != nil {
			return err
		}
	}

	// Check every spec before writing anything.
	configs := make([]compute.Config, len(specs))
	for i, spec := range specs {
		configs[i] = compute.Config{
			Args:      spec.Args,
			Ones:      spec.Ones,
			Visited:   compute.VisitedKind(opts.visited),
			Workers:   opts.workers,
			MaxMemory: opts.maxMemory,
			Log:       log.StandardLogger(),
		}
		if err := configs[i].Validate(opts.exhaustive); err != nil {
			return errors.Wrapf(err, "npn %s", spec)
		}
	}

	out, err := dest.Open(ctx, opts.output)
	if err != nil {
		return err
	}
	for i, spec := range specs {
		var w classtab.Writer
		if base == 0 {
			w = classtab.NewRawWriter(out, spec.Args)
		} else {
			w = classtab.NewTextWriter(out, classtab.Format{Base: base, Args: spec.Args})
		}
		enumerate := compute.Enumerate
		if opts.exhaustive {
			enumerate = compute.Exhaustive
		}
		stats, err := enumerate(ctx, configs[i], w.Write)
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
		if err != nil {
			out.Close()
			return errors.Wrapf(err, "npn %s", spec)
		}
		log.WithFields(log.Fields{
			"spec":      spec.String(),
			"classes":   stats.Classes,
			"functions": stats.Functions,
			"digest":    fmt.Sprintf("%016x", w.Sum64()),
		}).Info("table written")
	}
	if err := out.Close(); err != nil {
		return err
	}
	if opts.metrics {
		metrics.WritePrometheus(os.Stderr, false)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	httpAddr := "localhost:8080"
	maxArgs := compute.MaxArgs
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve class lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port := os.Getenv("PORT"); port != "" {
				httpAddr = ":" + port
			}
			l, err := net.Listen("tcp", httpAddr)
			if err != nil {
				return err
			}
			log.Println("serving", httpAddr)
			return http.Serve(l, web.Handler(maxArgs, log.StandardLogger()))
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", httpAddr, "HTTP listen `address`")
	cmd.Flags().IntVar(&maxArgs, "max-args", maxArgs, "answer queries for up to `n` inputs")
	return cmd
}
