package xtiming

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/xambient/pkg/context/xscope"
	"github.com/omeyang/xambient/pkg/observability/xlog"
	"github.com/omeyang/xambient/pkg/observability/xmetrics"
)

// 日志属性 key
const (
	KeyLabel   = "label"
	KeyDepth   = "depth"
	KeyFrameID = "frame_id"
	KeyElapsed = "elapsed_us"
)

// component 是 xmetrics 跨度的组件名。
const component = "xtiming"

// indentWidth 每层缩进的字符数。
const indentWidth = 4

// Frame 是一个计时作用域的快照。
type Frame struct {
	ID    string
	Label string
	Start time.Time
	Depth int
}

// frame 是压入 xscope 的计时数据。
type frame struct {
	Frame
	cfg  config
	ctx  context.Context
	span xmetrics.Span
}

var frameScope = xscope.For[frame]()

// Timer 持有一个计时作用域。
type Timer struct {
	guard   *xscope.Guard[frame]
	elapsed time.Duration
	stopped bool
}

// Start 在当前 goroutine 上开始一个计时作用域。
//
// 返回的 Timer 必须在同一 goroutine 中 Stop，通常写作 defer xtiming.Start(ctx, label).Stop()。
func Start(ctx context.Context, label string, opts ...Option) *Timer {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, depth := inherit()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if depth == 1 && cfg.sampler != nil && !cfg.sampler.ShouldSample(ctx) {
		cfg.silent = true
	}

	f := frame{
		Frame: Frame{
			ID:    uuid.NewString(),
			Label: label,
			Start: cfg.now(),
			Depth: depth,
		},
		cfg: cfg,
	}
	f.ctx, f.span = xmetrics.Start(ctx, cfg.observer, xmetrics.SpanOptions{
		Component: component,
		Operation: label,
		Attrs: []xmetrics.Attr{
			xmetrics.Depth(depth),
			xmetrics.FrameID(f.ID),
		},
	})

	return &Timer{guard: frameScope.PushLocal(f)}
}

// inherit 返回父 Frame 的配置和子 Frame 的深度；没有父 Frame 时使用默认配置。
func inherit() (config, int) {
	if parent, ok := frameScope.LookupLocal(); ok {
		return parent.cfg, parent.Depth + 1
	}
	return config{
		logger:   xlog.Default(),
		observer: xmetrics.Current(),
		now:      time.Now,
	}, 1
}

// Stop 结束计时作用域，记录日志与指标并返回耗时。重复调用返回首次的结果。
func (t *Timer) Stop() time.Duration {
	if t == nil {
		return 0
	}
	if t.stopped {
		return t.elapsed
	}
	t.stopped = true
	defer t.guard.Release()

	f := t.guard.Value()
	t.elapsed = f.cfg.now().Sub(f.Start)

	f.span.End(xmetrics.Result{
		Attrs: []xmetrics.Attr{xmetrics.Elapsed(t.elapsed)},
	})

	if !f.cfg.silent {
		f.cfg.logger.Info(f.ctx, formatLine(f.Depth, f.Label, t.elapsed),
			slog.String(KeyLabel, f.Label),
			slog.Int(KeyDepth, f.Depth),
			slog.String(KeyFrameID, f.ID),
			slog.Int64(KeyElapsed, t.elapsed.Microseconds()),
		)
	}
	return t.elapsed
}

// Context 返回携带计时跨度的 context，可传给下游以关联 trace。
// Stop 之后返回 context.Background()。
func (t *Timer) Context() context.Context {
	if ctx := t.guard.Value().ctx; ctx != nil {
		return ctx
	}
	return context.Background()
}

// Frame 返回 Timer 的快照，Stop 之后返回零值。
func (t *Timer) Frame() Frame {
	return t.guard.Value().Frame
}

// Current 返回当前 goroutine 最内层的计时作用域。
func Current() (Frame, bool) {
	f, ok := frameScope.LookupLocal()
	if !ok {
		return Frame{}, false
	}
	return f.Frame, true
}

// formatLine 生成形如 "---- step1 took 40us" 的消息。
func formatLine(depth int, label string, elapsed time.Duration) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("-", depth*indentWidth))
	b.WriteByte(' ')
	b.WriteString(label)
	b.WriteString(" took ")
	b.WriteString(strconv.FormatInt(elapsed.Microseconds(), 10))
	b.WriteString("us")
	return b.String()
}
