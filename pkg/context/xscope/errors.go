package xscope

import "errors"

var (
	// ErrNilConstructor 表示传给 NewLocal/NewGlobal 的构造函数为 nil。
	ErrNilConstructor = errors.New("xscope: nil constructor")
)

// 误用检查的诊断信息，进程终止时原样输出。
const (
	msgInactiveLocal  = "tried using inactive local context"
	msgInactiveGlobal = "tried using inactive global context"
	msgNoContext      = "no available context"
)
