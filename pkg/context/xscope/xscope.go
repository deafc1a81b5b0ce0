package xscope

// =============================================================================
// 包级便利函数：等价于 For[T]() 上的同名方法
// =============================================================================

// PushLocal 把 v 压入当前 goroutine 的类型 T 本地栈。
func PushLocal[T any](v T) *Guard[T] {
	return For[T]().PushLocal(v)
}

// PushGlobal 把 v 压入类型 T 的全局栈。
func PushGlobal[T any](v T) *Guard[T] {
	return For[T]().PushGlobal(v)
}

// NewLocal 构造数据并压入当前 goroutine 的本地栈，构造失败时槽位不变。
func NewLocal[T any](ctor func() (T, error)) (*Guard[T], error) {
	return For[T]().NewLocal(ctor)
}

// NewGlobal 构造数据并压入全局栈，构造失败时槽位不变。
func NewGlobal[T any](ctor func() (T, error)) (*Guard[T], error) {
	return For[T]().NewGlobal(ctor)
}

// Local 返回当前 goroutine 的类型 T 本地栈顶。
func Local[T any]() *T {
	return For[T]().Local()
}

// Global 返回类型 T 的全局值。
func Global[T any]() *T {
	return For[T]().Global()
}

// Top 返回类型 T 的本地栈顶，不存在时返回全局值。
func Top[T any]() *T {
	return For[T]().Top()
}

// LookupLocal 是 Local 的非致命版本。
func LookupLocal[T any]() (*T, bool) {
	return For[T]().LookupLocal()
}

// LookupGlobal 是 Global 的非致命版本。
func LookupGlobal[T any]() (*T, bool) {
	return For[T]().LookupGlobal()
}

// LookupTop 是 Top 的非致命版本。
func LookupTop[T any]() (*T, bool) {
	return For[T]().LookupTop()
}
