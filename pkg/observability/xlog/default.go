package xlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xambient/pkg/context/xscope"
)

// Binding 是压入 xscope 的 Logger 包装。
type Binding struct {
	Logger LoggerWithLevel
}

var loggerScope = xscope.For[Binding]()

// process 是没有任何作用域绑定时使用的进程 Logger。
var (
	process     atomic.Pointer[LoggerWithLevel]
	processMu   sync.Mutex
	processOnce sync.Once
)

// Default 返回当前可见的 Logger：先找作用域绑定（本地优先，其次全局），
// 没有绑定时返回进程 Logger，首次使用时按默认配置创建。
func Default() LoggerWithLevel {
	if b, ok := loggerScope.LookupTop(); ok {
		return b.Logger
	}
	if l := process.Load(); l != nil {
		return *l
	}
	return buildProcessLogger()
}

// Use 为当前 goroutine 绑定 Logger，释放 Guard 后恢复外层 Logger。nil 被忽略，
// 此时 Guard 重新压入当前可见的 Logger。
//
//	g := xlog.Use(debugLogger)
//	defer g.Release()
func Use(l LoggerWithLevel) *xscope.Guard[Binding] {
	if l == nil {
		l = Default()
	}
	return loggerScope.PushLocal(Binding{Logger: l})
}

// SetDefault 替换进程 Logger，nil 被忽略。已有的作用域绑定不受影响。
func SetDefault(l LoggerWithLevel) {
	if l == nil {
		return
	}
	process.Store(&l)
}

// ResetDefault 重置全局 Logger，下次调用 Default 时重新创建。
func ResetDefault() {
	processMu.Lock()
	process.Store(nil)
	processOnce = sync.Once{}
	processMu.Unlock()
}

// buildProcessLogger 在持锁状态下执行 once，与 ResetDefault 串行。
func buildProcessLogger() LoggerWithLevel {
	processMu.Lock()
	defer processMu.Unlock()

	processOnce.Do(func() {
		logger, _, err := New().Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "xlog: default logger: %v, falling back to plain text\n", err)
			logger = &xlogger{
				handler:        slog.NewTextHandler(os.Stderr, nil),
				levelVar:       new(slog.LevelVar),
				errorCount:     new(atomic.Uint64),
				inErrorHandler: new(atomic.Bool),
			}
		}
		process.Store(&logger)
	})
	return *process.Load()
}

func logDefault(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	l := Default()
	if xl, ok := l.(*xlogger); ok {
		// 包级函数多一层调用
		xl.logWithSkip(ctx, slog.Level(level), msg, attrs, 1)
		return
	}
	switch level {
	case LevelDebug:
		l.Debug(ctx, msg, attrs...)
	case LevelInfo:
		l.Info(ctx, msg, attrs...)
	case LevelWarn:
		l.Warn(ctx, msg, attrs...)
	default:
		l.Error(ctx, msg, attrs...)
	}
}

// Debug 使用 [Default] 记录 Debug 日志。
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelDebug, msg, attrs)
}

// Info 使用 [Default] 记录 Info 日志。
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelInfo, msg, attrs)
}

// Warn 使用 [Default] 记录 Warn 日志。
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelWarn, msg, attrs)
}

// Error 使用 [Default] 记录 Error 日志。
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelError, msg, attrs)
}
