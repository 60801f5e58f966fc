// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

type counters struct {
	classes   *metrics.Counter
	functions *metrics.Counter
	skipped   *metrics.Counter
}

func newCounters(qargs int) *counters {
	label := fmt.Sprintf(`{args="%d"}`, qargs)
	return &counters{
		classes:   metrics.GetOrCreateCounter("npn_classes_total" + label),
		functions: metrics.GetOrCreateCounter("npn_functions_total" + label),
		skipped:   metrics.GetOrCreateCounter("npn_candidates_skipped_total" + label),
	}
}

func (c *counters) class(size uint64) {
	c.classes.Inc()
	c.functions.Add(int(size))
}
