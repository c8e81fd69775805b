package soak

import (
	"slices"
	"time"

	"go.uber.org/zap"
)

const missingSampleSize = 16

// Report summarises a finished soak run.
type Report struct {
	Expected   int            `json:"expected"`
	Produced   int            `json:"produced"`
	Delivered  int            `json:"delivered"` // distinct items
	ByPath     map[string]int `json:"by_path"`
	Duplicates int            `json:"duplicates"`
	Missing    int            `json:"missing"`
	// MissingSample lists up to 16 IDs that were never delivered.
	MissingSample []int64       `json:"missing_sample,omitempty"`
	Duration      time.Duration `json:"duration"`
	WaitP50       time.Duration `json:"wait_p50"`
	WaitP99       time.Duration `json:"wait_p99"`
	WaitMax       time.Duration `json:"wait_max"`
}

// Fields renders the report as zap fields.
func (rep *Report) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("expected", rep.Expected),
		zap.Int("produced", rep.Produced),
		zap.Int("delivered", rep.Delivered),
		zap.Any("by_path", rep.ByPath),
		zap.Int("duplicates", rep.Duplicates),
		zap.Int("missing", rep.Missing),
		zap.Int64s("missing_sample", rep.MissingSample),
		zap.Duration("duration", rep.Duration),
		zap.Duration("wait_p50", rep.WaitP50),
		zap.Duration("wait_p99", rep.WaitP99),
		zap.Duration("wait_max", rep.WaitMax),
	}
}

func (r *Runner) report(elapsed time.Duration) *Report {
	rep := &Report{
		Expected:   r.Total(),
		Produced:   int(r.produced.Load()),
		Delivered:  r.ledger.Len(),
		ByPath:     r.pathCounts(),
		Duplicates: r.ledger.Duplicates(),
		Duration:   elapsed,
	}

	for p := 0; p < r.cfg.Producers; p++ {
		for seq := 0; seq < r.cfg.ItemsPerProducer; seq++ {
			id := MakeID(p, seq)
			if r.ledger.Count(id) > 0 {
				continue
			}
			rep.Missing++
			if len(rep.MissingSample) < missingSampleSize {
				rep.MissingSample = append(rep.MissingSample, id)
			}
		}
	}

	r.latMu.Lock()
	sorted := slices.Clone(r.latencies)
	r.latMu.Unlock()
	slices.Sort(sorted)

	rep.WaitP50 = percentile(sorted, 50)
	rep.WaitP99 = percentile(sorted, 99)
	if len(sorted) > 0 {
		rep.WaitMax = sorted[len(sorted)-1]
	}
	return rep
}

func (r *Runner) pathCounts() map[string]int {
	out := make(map[string]int, len(r.byPath))
	for path, n := range r.byPath {
		out[path] = int(n.Load())
	}
	return out
}

// percentile uses the nearest-rank method on an ascending slice.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
