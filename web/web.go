// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package web serves NPN class lookups over HTTP.
//
//	GET /?args=4&q=0x6996
//
// answers with the canonical representative of the function q of
// args inputs, the size of its class, and the inputs it depends on.
package web

import (
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"rsc.io/npn/compute"
)

// ResultData is the answer to one query.
type ResultData struct {
	Query   string
	Args    int
	Func    compute.Func
	Canon   compute.Func
	Size    int
	AllSig  bool
	Support []int
}

// Vars returns the names of the inputs in Support.
func (r *ResultData) Vars() string {
	if len(r.Support) == 0 {
		return "none"
	}
	var names []string
	for _, i := range r.Support {
		names = append(names, "x"+strconv.Itoa(i))
	}
	return strings.Join(names, " ")
}

var resultText = template.Must(template.New("result").Parse(`query       {{.Query}}
args        {{.Args}}
function    {{.Func}}
canonical   {{.Canon}}
class size  {{.Size}}
significant {{.AllSig}}
depends on  {{.Vars}}
`))

type server struct {
	maxArgs int
	log     logrus.FieldLogger

	mu     sync.Mutex
	groups map[int]*compute.Group
}

// Handler returns a handler answering queries for functions of
// up to maxArgs inputs.
func Handler(maxArgs int, log logrus.FieldLogger) http.Handler {
	s := &server{
		maxArgs: maxArgs,
		log:     log,
		groups:  make(map[int]*compute.Group),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/.info", info)
	mux.HandleFunc("/", s.main)
	return mux
}

func info(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
}

// group returns the group for qargs inputs, building it on first use.
func (s *server) group(qargs int) (*compute.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g := s.groups[qargs]; g != nil {
		return g, nil
	}
	g, err := compute.NewGroup(qargs)
	if err != nil {
		return nil, err
	}
	s.groups[qargs] = g
	return g, nil
}

func (s *server) main(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	if req.Method != "GET" && req.Method != "HEAD" {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("only GET or HEAD"))
		return
	}
	defer func() {
		if err := recover(); err != nil {
			stk := make([]byte, 5000)
			n := runtime.Stack(stk, false)
			s.log.Errorf("lookup %s: %v\n%s", req.URL.RawQuery, err, stk[:n])
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}()

	res, err := s.resultData(req.FormValue("args"), req.FormValue("q"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := resultText.Execute(w, res); err != nil {
		s.log.Errorf("executing template: %v", err)
	}
}

func (s *server) resultData(args, q string) (*ResultData, error) {
	qargs := s.maxArgs
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n < 0 || n > s.maxArgs {
			return nil, errors.Newf("args must be between 0 and %d", s.maxArgs)
		}
		qargs = n
	}
	if q == "" {
		return nil, errors.New("missing query q")
	}
	n, err := strconv.ParseUint(q, 0, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing query")
	}
	g, err := s.group(qargs)
	if err != nil {
		return nil, err
	}
	f := compute.Func(n)
	if f&^g.Full() != 0 {
		return nil, errors.Newf("%#x has more than %d bits", n, g.Values())
	}
	return &ResultData{
		Query:   q,
		Args:    qargs,
		Func:    f,
		Canon:   g.Min(f),
		Size:    g.Size(f),
		AllSig:  g.Significant(f),
		Support: g.Support(f),
	}, nil
}
