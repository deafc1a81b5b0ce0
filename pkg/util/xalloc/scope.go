package xalloc

import "github.com/omeyang/xambient/pkg/context/xscope"

// Binding 是压入 xscope 的 Resource 包装。
type Binding struct {
	Resource Resource
}

var resourceScope = xscope.For[Binding]()

// Use 为当前 goroutine 绑定 Resource，nil 视为 Heap。
func Use(r Resource) *xscope.Guard[Binding] {
	return resourceScope.PushLocal(Binding{Resource: orHeap(r)})
}

// UseGlobal 绑定进程级 Resource，调用方负责与其他全局操作串行化。
func UseGlobal(r Resource) *xscope.Guard[Binding] {
	return resourceScope.PushGlobal(Binding{Resource: orHeap(r)})
}

// Current 返回当前 Resource（本地优先，其次全局）。
// 没有任何绑定属于使用错误，默认构建会终止进程。
func Current() Resource {
	return resourceScope.Top().Resource
}

// CurrentOr 返回当前 Resource，没有绑定时返回 fallback。
func CurrentOr(fallback Resource) Resource {
	if b, ok := resourceScope.LookupTop(); ok {
		return b.Resource
	}
	return fallback
}

// Bytes 从当前 Resource 分配 n 字节，没有绑定时使用 Heap。
func Bytes(n int) ([]byte, error) {
	return CurrentOr(Heap()).Allocate(n, 1)
}

func orHeap(r Resource) Resource {
	if r == nil {
		return Heap()
	}
	return r
}
