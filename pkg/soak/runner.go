package soak

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-selectq/pkg/datastructs/queue"
	"github.com/huynhanx03/go-selectq/pkg/settings"
	"github.com/huynhanx03/go-selectq/pkg/utils"
)

// Delivery paths reported in Report.ByPath.
const (
	PathGet    = "get"
	PathNowait = "get_nowait"
	PathSweep  = "get_all"
	PathFlush  = "flush"
)

const nowaitBackoff = 100 * time.Microsecond

// Runner drives one selective queue with concurrent producers and selective
// consumers, and checks that every item comes out exactly once.
type Runner struct {
	cfg    settings.Soak
	queue  *queue.Selective[Item]
	ledger *Ledger
	log    *zap.Logger
	out    io.Writer // progress bar target, nil disables it

	produced  atomic.Int64
	delivered atomic.Int64
	byPath    map[string]*atomic.Int64
	started   atomic.Int64 // unix nanos, 0 until Run starts
	finished  atomic.Bool

	latMu     sync.Mutex
	latencies []time.Duration
}

// NewRunner creates a Runner. cfg must already carry defaults.
func NewRunner(cfg settings.Soak, log *zap.Logger, progress io.Writer) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	r := &Runner{
		cfg:    cfg,
		queue:  queue.NewSelective[Item](queue.Config{Name: "soak", Logger: log}),
		ledger: NewLedger(0),
		log:    log,
		out:    progress,
		byPath: make(map[string]*atomic.Int64, 4),
	}
	for _, path := range []string{PathGet, PathNowait, PathSweep, PathFlush} {
		r.byPath[path] = &atomic.Int64{}
	}
	return r
}

// Total returns the number of items the run produces.
func (r *Runner) Total() int {
	return r.cfg.Producers * r.cfg.ItemsPerProducer
}

// Run executes the soak and returns its report.
// The error is non-nil when the run timed out, ctx was cancelled, or delivery
// was not exactly-once; the report is returned in every case.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	ctx, cancel := context.WithTimeoutCause(ctx, utils.ToDuration(r.cfg.Timeout), ErrTimeout)
	defer cancel()

	// runCtx is cancelled once every item has been delivered.
	runCtx, finish := context.WithCancel(ctx)
	defer finish()

	start := time.Now()
	r.started.Store(start.UnixNano())

	total := int64(r.Total())
	bar := r.newProgressBar()

	record := func(path string, items ...Item) {
		now := time.Now()
		for _, item := range items {
			if !r.ledger.Record(item.ID) {
				r.log.Error("duplicate delivery",
					zap.Int64("id", item.ID), zap.String("path", path))
			}
			r.observe(now.Sub(item.EnqueuedAt))
		}
		r.byPath[path].Add(int64(len(items)))
		if bar != nil {
			_ = bar.Add(len(items))
		}
		if r.delivered.Add(int64(len(items))) >= total {
			finish()
		}
	}

	r.log.Info("soak started",
		zap.Int("producers", r.cfg.Producers),
		zap.Int("consumers", r.cfg.Consumers),
		zap.Int("nowait_consumers", r.cfg.NowaitConsumers),
		zap.Int64("items", total))

	g, gctx := errgroup.WithContext(runCtx)

	for p := 0; p < r.cfg.Producers; p++ {
		g.Go(func() error { return r.produce(gctx, p) })
	}
	for c := 0; c < r.cfg.Consumers; c++ {
		if c < r.cfg.NowaitConsumers {
			g.Go(func() error { return r.poll(gctx, c, record) })
		} else {
			g.Go(func() error { return r.consume(gctx, c, record) })
		}
	}
	if r.cfg.SweepInterval > 0 {
		g.Go(func() error { return r.sweep(gctx, record) })
	}

	runErr := g.Wait()
	if leftovers := r.queue.Flush(); len(leftovers) > 0 {
		r.log.Warn("flushed leftover items", zap.Int("count", len(leftovers)))
		record(PathFlush, leftovers...)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	r.finished.Store(true)

	report := r.report(time.Since(start))
	r.log.Info("soak finished", report.Fields()...)

	return report, verdict(ctx, runErr, report)
}

// verdict turns the outcome of a run into its error. An expired run timeout
// yields ErrTimeout; any other end of ctx, such as an interrupt, yields the
// cause of that cancellation.
func verdict(ctx context.Context, runErr error, report *Report) error {
	switch {
	case ctx.Err() != nil && (runErr != nil || report.Missing > 0):
		cause := context.Cause(ctx)
		if errors.Is(cause, ErrTimeout) {
			return errors.Wrapf(ErrTimeout, "%d of %d items delivered", report.Delivered, report.Expected)
		}
		return errors.Wrapf(cause, "run interrupted: %d of %d items delivered", report.Delivered, report.Expected)
	case runErr != nil:
		return runErr
	case report.Duplicates > 0:
		return errors.Wrapf(ErrDuplicateDelivery, "%d repeated deliveries", report.Duplicates)
	case report.Missing > 0:
		return errors.Wrapf(ErrLostItems, "%d items missing", report.Missing)
	}
	return nil
}

// produce puts this producer's share of items with pseudo-random keys.
func (r *Runner) produce(ctx context.Context, producer int) error {
	rng := rand.New(rand.NewPCG(uint64(producer), uint64(r.cfg.Keys)))

	for seq := 0; seq < r.cfg.ItemsPerProducer; seq++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "producer %d stopped after %d items", producer, seq)
		}

		r.queue.Put(Item{
			ID:         MakeID(producer, seq),
			Producer:   producer,
			Key:        rng.IntN(r.cfg.Keys),
			EnqueuedAt: time.Now(),
		})
		r.produced.Add(1)
	}
	return nil
}

// owns returns the predicate selecting the keys assigned to a consumer.
func (r *Runner) owns(consumer int) queue.Predicate[Item] {
	consumers := r.cfg.Consumers
	return func(item Item) bool { return item.Key%consumers == consumer }
}

// consume takes owned items with the blocking Get until the run ends.
func (r *Runner) consume(ctx context.Context, consumer int, record func(string, ...Item)) error {
	match := r.owns(consumer)
	for {
		item, err := r.queue.Get(ctx, match)
		if errors.Is(err, queue.ErrCancelled) {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "consumer %d", consumer)
		}
		record(PathGet, item)
	}
}

// poll takes owned items with GetNowait, backing off briefly on a miss.
func (r *Runner) poll(ctx context.Context, consumer int, record func(string, ...Item)) error {
	match := r.owns(consumer)
	for ctx.Err() == nil {
		if item, ok := r.queue.GetNowait(match); ok {
			record(PathNowait, item)
			continue
		}
		time.Sleep(nowaitBackoff)
	}
	return nil
}

// sweep periodically drains items that have waited longer than StaleAfter.
func (r *Runner) sweep(ctx context.Context, record func(string, ...Item)) error {
	ticker := time.NewTicker(utils.ToDurationMs(r.cfg.SweepInterval))
	defer ticker.Stop()

	staleAfter := utils.ToDurationMs(r.cfg.StaleAfter)
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			stale := r.queue.GetAll(func(item Item) bool {
				return now.Sub(item.EnqueuedAt) >= staleAfter
			})
			if len(stale) > 0 {
				r.log.Debug("swept stale items", zap.Int("count", len(stale)))
				record(PathSweep, stale...)
			}
		}
	}
}

func (r *Runner) observe(d time.Duration) {
	r.latMu.Lock()
	r.latencies = append(r.latencies, d)
	r.latMu.Unlock()
}

func (r *Runner) newProgressBar() *progressbar.ProgressBar {
	if r.out == nil {
		return nil
	}
	return progressbar.NewOptions64(int64(r.Total()),
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("delivered"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}
