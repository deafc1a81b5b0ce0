package xmetrics

import (
	"context"
	"time"

	"github.com/omeyang/xambient/pkg/context/xscope"
)

// Status 表示观测结果状态。
type Status string

const (
	// StatusOK 表示成功。
	StatusOK Status = "ok"
	// StatusError 表示失败。
	StatusError Status = "error"
)

// Attr 表示观测属性。
type Attr struct {
	Key   string
	Value any
}

// 作用域跨度使用的属性键。
const (
	AttrDepth     = "scope.depth"
	AttrFrameID   = "scope.frame_id"
	AttrElapsedUS = "scope.elapsed_us"
)

// String 创建字符串属性。
func String(key, value string) Attr { return Attr{Key: key, Value: value} }

// Int64 创建 int64 属性。
func Int64(key string, value int64) Attr { return Attr{Key: key, Value: value} }

// Depth 记录作用域嵌套深度，最外层为 1。
func Depth(depth int) Attr { return Attr{Key: AttrDepth, Value: depth} }

// FrameID 记录作用域帧的唯一标识。
func FrameID(id string) Attr { return Attr{Key: AttrFrameID, Value: id} }

// Elapsed 以微秒记录作用域耗时，与计时日志的单位一致。
func Elapsed(d time.Duration) Attr { return Attr{Key: AttrElapsedUS, Value: d.Microseconds()} }

// SpanOptions 定义观测跨度的创建参数。
type SpanOptions struct {
	// Component 标识组件名称。
	Component string
	// Operation 标识操作名称。
	Operation string
	// Attrs 附加属性（写入 trace，不进入指标维度）。
	Attrs []Attr
}

// Result 表示观测跨度结束时的结果。
type Result struct {
	// Status 为空时根据 Err 推导。
	Status Status
	Err    error
	Attrs  []Attr
}

// Span 表示一次观测跨度。
type Span interface {
	// End 结束观测并记录结果，多次调用只记录一次。
	End(result Result)
}

// Observer 定义统一观测接口。
type Observer interface {
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)
}

// NoopObserver 是空实现。
type NoopObserver struct{}

// Start 返回 ctx 和空跨度。若 ctx 为 nil，返回 context.Background()。
func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// NoopSpan 是空跨度实现。
type NoopSpan struct{}

// End 空实现。
func (NoopSpan) End(_ Result) {}

// Start 使用 observer 开始观测，保证返回非 nil 的 context 和 Span。
// observer 为 nil 时使用 [Current]。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if observer == nil {
		observer = Current()
	}
	retCtx, span := observer.Start(ctx, opts)
	if retCtx == nil {
		retCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return retCtx, span
}

// =============================================================================
// 环境 Observer
// =============================================================================

// Binding 是压入 xscope 的 Observer 包装。
type Binding struct {
	Observer Observer
}

var observerScope = xscope.For[Binding]()

// Use 为当前 goroutine 压入 Observer，nil 视为 NoopObserver。
func Use(obs Observer) *xscope.Guard[Binding] {
	return observerScope.PushLocal(Binding{Observer: orNoop(obs)})
}

// UseGlobal 压入进程级 Observer，调用方负责与其他全局操作串行化。
func UseGlobal(obs Observer) *xscope.Guard[Binding] {
	return observerScope.PushGlobal(Binding{Observer: orNoop(obs)})
}

// Current 返回当前可见的 Observer（本地优先，其次全局），均未设置时返回 NoopObserver。
func Current() Observer {
	if b, ok := observerScope.LookupTop(); ok {
		return b.Observer
	}
	return NoopObserver{}
}

func orNoop(obs Observer) Observer {
	if obs == nil {
		return NoopObserver{}
	}
	return obs
}
