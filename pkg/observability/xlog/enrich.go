package xlog

import (
	"context"
	"log/slog"
)

// EnrichHandler 在记录日志时注入当前 goroutine 可见的环境字段（见 [WithFields]）。
//
// 装饰模式实现，包装底层 slog.Handler。没有可见字段时原样透传。
type EnrichHandler struct {
	base slog.Handler
}

// NewEnrichHandler 创建 EnrichHandler
//
// 调用 WithGroup 后，注入的字段会被归入 group 下（slog handler 的分组语义）。
func NewEnrichHandler(base slog.Handler) (*EnrichHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	return &EnrichHandler{base: base}, nil
}

// Enabled 委托给底层 handler
func (h *EnrichHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle 在调用底层 handler 前追加环境字段。
//
// 根据 slog 契约，修改前必须 Clone record。
// 字段在调用 Handle 的 goroutine 上查找，因此需同步调用（slog 的默认行为）。
func (h *EnrichHandler) Handle(ctx context.Context, r slog.Record) error {
	if f, ok := fieldScope.LookupTop(); ok && len(f.attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(f.attrs...)
	}
	return h.base.Handle(ctx, r)
}

// WithAttrs 返回带额外属性的新 handler
func (h *EnrichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EnrichHandler{base: h.base.WithAttrs(attrs)}
}

// WithGroup 返回带分组的新 handler
func (h *EnrichHandler) WithGroup(name string) slog.Handler {
	return &EnrichHandler{base: h.base.WithGroup(name)}
}
