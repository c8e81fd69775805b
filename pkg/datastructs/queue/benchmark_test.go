package queue

import (
	"context"
	"sync"
	"testing"
)

// ===========================================================================
// Benchmark Configuration
// ===========================================================================

// queueBenchConfig holds benchmark test configuration.
type queueBenchConfig struct {
	name    string
	backlog int // items left pending ahead of the one being selected
}

// benchConfigs defines the backlog sizes for benchmarking.
var benchConfigs = []queueBenchConfig{
	{"Backlog0", 0},
	{"Backlog64", 64},
	{"Backlog1K", 1024},
}

// ===========================================================================
// Single-Threaded Benchmarks
// ===========================================================================

// BenchmarkPutGetNowait measures Put followed by head retrieval.
func BenchmarkPutGetNowait(b *testing.B) {
	q := NewSelective[int](Config{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		q.Put(i)
		q.GetNowait(nil)
	}
}

// BenchmarkGetNowait_Selective measures retrieval of the tail item behind a backlog.
func BenchmarkGetNowait_Selective(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := NewSelective[int](Config{})
			for j := 0; j < cfg.backlog; j++ {
				q.Put(-1)
			}
			wanted := func(v int) bool { return v >= 0 }

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				q.Put(i)
				q.GetNowait(wanted)
			}
		})
	}
}

// BenchmarkGetAll measures bulk draining.
func BenchmarkGetAll(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := NewSelective[int](Config{})
			items := make([]int, cfg.backlog)
			for j := range items {
				items[j] = j
			}
			even := func(v int) bool { return v%2 == 0 }

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				q.PutMany(items...)
				q.GetAll(even)
				q.Flush()
			}
		})
	}
}

// ===========================================================================
// Concurrent Benchmarks
// ===========================================================================

type concurrencyConfig struct {
	name      string
	producers int
	consumers int
}

var concurrencyConfigs = []concurrencyConfig{
	{"1P1C", 1, 1},
	{"2P2C", 2, 2},
	{"4P4C", 4, 4},
	{"8P8C", 8, 8},
}

// BenchmarkConcurrent_PutGet measures blocking hand-off between producers and
// selective consumers that each own one residue class of the items.
func BenchmarkConcurrent_PutGet(b *testing.B) {
	const opsPerProducer = 10000

	for _, cc := range concurrencyConfigs {
		b.Run(cc.name, func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				q := NewSelective[int](Config{})
				total := cc.producers * opsPerProducer
				perConsumer := total / cc.consumers

				var wg sync.WaitGroup
				wg.Add(cc.consumers)
				for c := 0; c < cc.consumers; c++ {
					go func(id int) {
						defer wg.Done()
						mine := func(v int) bool { return v%cc.consumers == id }
						for i := 0; i < perConsumer; i++ {
							if _, err := q.Get(context.Background(), mine); err != nil {
								b.Error(err)
								return
							}
						}
					}(c)
				}

				wg.Add(cc.producers)
				for p := 0; p < cc.producers; p++ {
					go func(id int) {
						defer wg.Done()
						for i := 0; i < opsPerProducer; i++ {
							q.Put(id*opsPerProducer + i)
						}
					}(p)
				}

				wg.Wait()
			}
		})
	}
}
