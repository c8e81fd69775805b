package soak

import "time"

// Stats is a live snapshot of a soak run.
type Stats struct {
	Running   bool           `json:"running"`
	Expected  int            `json:"expected"`
	Produced  int64          `json:"produced"`
	Delivered int64          `json:"delivered"`
	Queued    int            `json:"queued"`
	Waiting   int            `json:"waiting"`
	Elapsed   time.Duration  `json:"elapsed"`
	ByPath    map[string]int `json:"by_path,omitempty"`
}

// Stats returns current counters. ByPath is filled only when detail is set.
func (r *Runner) Stats(detail bool) Stats {
	s := Stats{
		Expected:  r.Total(),
		Produced:  r.produced.Load(),
		Delivered: r.delivered.Load(),
		Queued:    r.queue.Len(),
		Waiting:   r.queue.Waiting(),
	}

	if started := r.started.Load(); started != 0 {
		s.Elapsed = time.Since(time.Unix(0, started))
		s.Running = !r.finished.Load()
	}
	if detail {
		s.ByPath = r.pathCounts()
	}
	return s
}
