package xlog

import (
	"log/slog"

	"github.com/omeyang/xambient/pkg/context/xscope"
)

// Fields 是通过 xscope 隐式传播的日志字段集合。
//
// Fields 的内容在压栈时确定，之后只读；同名 key 以内层为准。
type Fields struct {
	attrs []slog.Attr
}

// Attrs 返回字段集合的副本。
func (f Fields) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), f.attrs...)
}

// Len 返回字段数量。
func (f Fields) Len() int {
	return len(f.attrs)
}

var fieldScope = xscope.For[Fields]()

// WithFields 压入当前 goroutine 的本地日志字段，继承当前可见的字段（本地优先，其次全局）。
//
// 返回的 Guard 必须在同一 goroutine 中以 defer 释放：
//
//	g := xlog.WithFields(slog.String("job", "reindex"))
//	defer g.Release()
func WithFields(attrs ...slog.Attr) *xscope.Guard[Fields] {
	var parent []slog.Attr
	if f, ok := fieldScope.LookupTop(); ok {
		parent = f.attrs
	}
	return fieldScope.PushLocal(Fields{attrs: mergeAttrs(parent, attrs)})
}

// WithGlobalFields 压入进程级日志字段，继承当前的全局字段。
//
// 全局字段没有并发保护，通常只在启动阶段设置。
func WithGlobalFields(attrs ...slog.Attr) *xscope.Guard[Fields] {
	var parent []slog.Attr
	if f, ok := fieldScope.LookupGlobal(); ok {
		parent = f.attrs
	}
	return fieldScope.PushGlobal(Fields{attrs: mergeAttrs(parent, attrs)})
}

// CurrentFields 返回当前 goroutine 可见的日志字段副本，没有字段时返回 nil。
func CurrentFields() []slog.Attr {
	f, ok := fieldScope.LookupTop()
	if !ok || len(f.attrs) == 0 {
		return nil
	}
	return f.Attrs()
}

// mergeAttrs 合并父级与新增字段，新增字段覆盖同名父级字段，空 key 被丢弃。
func mergeAttrs(parent, attrs []slog.Attr) []slog.Attr {
	merged := make([]slog.Attr, 0, len(parent)+len(attrs))
	for _, p := range parent {
		if !hasKey(attrs, p.Key) {
			merged = append(merged, p)
		}
	}
	for i, a := range attrs {
		if a.Key == "" || hasKey(attrs[i+1:], a.Key) {
			continue
		}
		merged = append(merged, a)
	}
	return merged
}

func hasKey(attrs []slog.Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}
