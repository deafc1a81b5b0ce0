package xscope

// Scope 是类型 T 的上下文句柄。
//
// 同一 T 的所有 Scope 共享同一份槽位存储，可以作为包级变量长期持有，
// 省去每次调用时的注册表查找：
//
//	var reqScope = xscope.For[requestData]()
//
//	g := reqScope.PushLocal(requestData{user: "alice"})
//	defer g.Release()
//	user := reqScope.Top().user
type Scope[T any] struct {
	s *slots[T]
}

// For 返回类型 T 的上下文句柄。
func For[T any]() Scope[T] {
	return Scope[T]{s: slotsFor[T]()}
}

// PushLocal 把 v 压入当前 goroutine 的本地栈。
func (sc Scope[T]) PushLocal(v T) *Guard[T] {
	g := &Guard[T]{data: v}
	return g.link(sc.s, KindLocal)
}

// PushGlobal 把 v 压入全局栈。调用方负责与其他 goroutine 的全局操作串行化。
func (sc Scope[T]) PushGlobal(v T) *Guard[T] {
	g := &Guard[T]{data: v}
	return g.link(sc.s, KindGlobal)
}

// NewLocal 调用 ctor 构造数据并压入当前 goroutine 的本地栈。
// ctor 返回错误时槽位保持不变，错误原样返回。
func (sc Scope[T]) NewLocal(ctor func() (T, error)) (*Guard[T], error) {
	return construct(sc.s, KindLocal, ctor)
}

// NewGlobal 调用 ctor 构造数据并压入全局栈。
// ctor 返回错误时槽位保持不变，错误原样返回。
func (sc Scope[T]) NewGlobal(ctor func() (T, error)) (*Guard[T], error) {
	return construct(sc.s, KindGlobal, ctor)
}

// Local 返回当前 goroutine 本地栈顶。
//
// 前置条件：本地栈非空。检查模式下违反时终止进程。
func (sc Scope[T]) Local() *T {
	p := sc.s.localTop()
	if checksEnabled && p == nil {
		fail[T](msgInactiveLocal)
	}
	return p
}

// Global 返回全局值。
//
// 前置条件：全局槽位非空。检查模式下违反时终止进程。
func (sc Scope[T]) Global() *T {
	p := sc.s.global
	if checksEnabled && p == nil {
		fail[T](msgInactiveGlobal)
	}
	return p
}

// Top 返回本地栈顶，本地栈为空时返回全局值。
//
// 前置条件：两者至少一个非空。检查模式下违反时终止进程。
func (sc Scope[T]) Top() *T {
	if p := sc.s.localTop(); p != nil {
		return p
	}
	p := sc.s.global
	if checksEnabled && p == nil {
		fail[T](msgNoContext)
	}
	return p
}

// LookupLocal 返回当前 goroutine 本地栈顶，栈为空时返回 (nil, false)。
func (sc Scope[T]) LookupLocal() (*T, bool) {
	p := sc.s.localTop()
	return p, p != nil
}

// LookupGlobal 返回全局值，槽位为空时返回 (nil, false)。
func (sc Scope[T]) LookupGlobal() (*T, bool) {
	p := sc.s.global
	return p, p != nil
}

// LookupTop 与 Top 语义相同，但两者皆空时返回 (nil, false) 而不是终止进程。
func (sc Scope[T]) LookupTop() (*T, bool) {
	if p := sc.s.localTop(); p != nil {
		return p, true
	}
	p := sc.s.global
	return p, p != nil
}
