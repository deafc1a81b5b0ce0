package xtiming

import (
	"time"

	"github.com/omeyang/xambient/pkg/observability/xlog"
	"github.com/omeyang/xambient/pkg/observability/xmetrics"
	"github.com/omeyang/xambient/pkg/observability/xsampling"
)

// Option 配置 Timer。
type Option func(*config)

type config struct {
	logger   xlog.Logger
	observer xmetrics.Observer
	now      func() time.Time
	silent   bool
	sampler  xsampling.Sampler
}

// WithLogger 设置输出耗时日志的 Logger，nil 忽略。
func WithLogger(l xlog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver 设置记录指标的 Observer，nil 忽略。
func WithObserver(o xmetrics.Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithClock 设置时钟函数，nil 忽略。主要用于测试。
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSilent 关闭耗时日志，仅记录指标。子 Timer 继承该设置。
func WithSilent(silent bool) Option {
	return func(c *config) {
		c.silent = silent
	}
}

// WithSampler 设置根计时作用域的日志采样策略，未被采样的整棵计时树不输出日志，
// 指标不受影响。对子作用域无效。
func WithSampler(s xsampling.Sampler) Option {
	return func(c *config) {
		c.sampler = s
	}
}
