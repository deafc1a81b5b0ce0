package xconf

import "github.com/omeyang/xambient/pkg/context/xscope"

// Binding 是压入 xscope 的 Config 包装。
type Binding struct {
	Config Config
}

var configScope = xscope.For[Binding]()

// Use 为当前 goroutine 绑定 Config。
func Use(cfg Config) *xscope.Guard[Binding] {
	return configScope.PushLocal(Binding{Config: cfg})
}

// UseGlobal 绑定进程级 Config，调用方负责与其他全局操作串行化。
func UseGlobal(cfg Config) *xscope.Guard[Binding] {
	return configScope.PushGlobal(Binding{Config: cfg})
}

// Current 返回当前可见的 Config（本地优先，其次全局）。
func Current() (Config, bool) {
	b, ok := configScope.LookupTop()
	if !ok || b.Config == nil {
		return nil, false
	}
	return b.Config, true
}
