package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/omeyang/xambient/pkg/config/xconf"
	"github.com/omeyang/xambient/pkg/context/xscope"
	"github.com/omeyang/xambient/pkg/lifecycle/xrun"
	"github.com/omeyang/xambient/pkg/observability/xlog"
)

// isolationValue 标识写入者；worker 为 -1 表示主 goroutine 压入的全局值。
type isolationValue struct {
	worker int
	level  int
}

var globalMarker = isolationValue{worker: -1}

// verifyWorker 在当前 goroutine 上逐层压入 depth 个本地值再逐层弹出，
// 每一步都确认可见值来自本 goroutine 的当前层。
func verifyWorker(worker, depth int) error {
	guards := make([]*xscope.Guard[isolationValue], 0, depth)
	defer func() {
		for i := len(guards) - 1; i >= 0; i-- {
			guards[i].Release()
		}
	}()

	for level := 1; level <= depth; level++ {
		guards = append(guards, xscope.PushLocal(isolationValue{worker: worker, level: level}))
		runtime.Gosched()
		if got := *xscope.Local[isolationValue](); got != (isolationValue{worker, level}) {
			return fmt.Errorf("worker %d level %d: saw %+v", worker, level, got)
		}
	}

	for level := depth; level >= 1; level-- {
		guards[level-1].Release()
		guards = guards[:level-1]
		runtime.Gosched()

		want := isolationValue{worker: worker, level: level - 1}
		if level == 1 {
			want = globalMarker
		}
		if got := *xscope.Top[isolationValue](); got != want {
			return fmt.Errorf("worker %d after releasing level %d: saw %+v, want %+v", worker, level, got, want)
		}
	}
	return nil
}

func (a *app) cmdIsolation(ctx context.Context, opts isolationConfig, watch bool) error {
	if opts.Workers < 1 || opts.Depth < 1 {
		return &usageError{msg: fmt.Sprintf("workers/depth 必须为正数: %d/%d", opts.Workers, opts.Depth)}
	}
	if watch && a.conf == nil {
		return &usageError{msg: "--watch 需要 --config"}
	}

	gg := xscope.PushGlobal(globalMarker)
	defer gg.Release()

	g, _ := xrun.NewGroup(ctx, xrun.WithName("isolation"), xrun.WithLogger(a.logger))

	var verified atomic.Int64
	for i := range opts.Workers {
		g.GoWithName(fmt.Sprintf("worker-%d", i), func(ctx context.Context) error {
			if err := verifyWorker(i, opts.Depth); err != nil {
				return err
			}
			verified.Add(1)
			xlog.Debug(ctx, "worker verified", slog.Int("depth", opts.Depth))
			return nil
		})
	}

	if watch {
		w, err := xconf.Watch(a.conf, a.onConfigReload, xconf.WithWatchLogger(a.logger))
		if err != nil {
			return err
		}
		w.StartAsync()
		defer func() { _ = w.Stop() }()

		g.GoWithName("heartbeat", xrun.Ticker(opts.Heartbeat, false, func(ctx context.Context) error {
			xlog.Info(ctx, "heartbeat",
				slog.Int64("verified", verified.Load()),
				slog.String("level", a.logger.GetLevel().String()),
			)
			return nil
		}))
	}

	err := g.Wait()
	fmt.Fprintf(a.stdout, "verified %d/%d workers at depth %d\n", verified.Load(), opts.Workers, opts.Depth)
	if err != nil {
		fmt.Fprintf(a.stdout, "isolation failed: %v\n", err)
		return &exitError{code: 1}
	}
	return nil
}

// onConfigReload 把重载后的 log.level 应用到当前 Logger。
func (a *app) onConfigReload(cfg xconf.Config, err error) {
	if err != nil {
		return
	}
	var lc logConfig
	if err := cfg.Unmarshal("log", &lc); err != nil || lc.Level == "" {
		return
	}
	level, err := xlog.ParseLevel(lc.Level)
	if err != nil {
		xlog.Warn(context.Background(), "ignoring invalid log level", slog.String("level", lc.Level))
		return
	}
	a.logger.SetLevel(level)
}
