package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-selectq/pkg/logger"
	"github.com/huynhanx03/go-selectq/pkg/soak"
)

func newSoakCmd(a *app) *cobra.Command {
	var progress bool

	cmd := &cobra.Command{
		Use:   "soak",
		Short: "Stress a selective queue and verify exactly-once delivery",
		Long: `Runs producers, blocking and polling consumers and a stale-item sweeper
against one selective queue, then prints a JSON report. Exits non-zero when an
item was lost, delivered twice, or the run timed out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out io.Writer
			if progress {
				out = cmd.ErrOrStderr()
			}
			return a.runSoak(cmd.Context(), cmd.ErrOrStderr(), cmd.OutOrStdout(), out)
		},
	}

	flags := cmd.Flags()
	flags.Int("producers", 0, "number of producer goroutines")
	flags.Int("consumers", 0, "number of consumer goroutines")
	flags.Int("nowait-consumers", 0, "how many consumers poll with GetNowait instead of blocking")
	flags.Int("items", 0, "items put by each producer")
	flags.Int("keys", 0, "distinct item keys")
	flags.Int("sweep-interval", 0, "sweeper period in milliseconds, -1 disables the sweeper")
	flags.Int("stale-after", 0, "age in milliseconds after which the sweeper takes an item")
	flags.Int("timeout", 0, "run timeout in seconds")
	flags.String("host", "", "stats server host")
	flags.Int("port", 0, "stats server port, 0 disables it")
	flags.BoolVar(&progress, "progress", false, "draw a progress bar on stderr")

	for key, name := range map[string]string{
		"soak.producers":          "producers",
		"soak.consumers":          "consumers",
		"soak.nowait_consumers":   "nowait-consumers",
		"soak.items_per_producer": "items",
		"soak.keys":               "keys",
		"soak.sweep_interval":     "sweep-interval",
		"soak.stale_after":        "stale-after",
		"soak.timeout":            "timeout",
		"server.host":             "host",
		"server.port":             "port",
	} {
		a.bind(key, flags.Lookup(name))
	}
	return cmd
}

func (a *app) runSoak(ctx context.Context, logOut, reportOut, progress io.Writer) error {
	cfg, err := a.load()
	if err != nil {
		return err
	}

	log, err := logger.NewWithWriter(cfg.Logger, logOut)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer func() { _ = log.Sync() }()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := soak.NewRunner(cfg.Soak, log, progress)

	var report *soak.Report
	g, gctx := errgroup.WithContext(ctx)
	srvCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	if cfg.Server.Port > 0 {
		srv := soak.NewServer(runner, cfg.Server, log)
		g.Go(func() error { return srv.ListenAndServe(srvCtx) })
	}
	g.Go(func() error {
		defer stopServer()
		var runErr error
		report, runErr = runner.Run(gctx)
		return runErr
	})

	runErr := g.Wait()
	if report != nil {
		enc := json.NewEncoder(reportOut)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Warn("write report", zap.Error(err))
		}
	}
	if runErr != nil {
		log.Error("soak failed", zap.Error(runErr))
	}
	return runErr
}
