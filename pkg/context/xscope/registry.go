package xscope

import (
	"sync"

	"github.com/petermattis/goid"
)

// registry 按类型身份保存每个类型的槽位存储。
//
// key 为 typeKey[T]{}：不同 T 实例化出不同的动态类型，比较时天然区分，
// 无需反射。
var registry sync.Map

type typeKey[T any] struct{}

// slots 是类型 T 的全部槽位。
//
// global 不做任何同步，并发写入由调用方串行化。
// locals 只在 goroutine 首次压栈和栈清空时写入，单元内容由所属 goroutine 独占。
type slots[T any] struct {
	global *T
	locals sync.Map // int64(goroutine id) -> *localCell[T]
}

// localCell 是某个 goroutine 的本地栈顶指针。
type localCell[T any] struct {
	top *T
}

// slotsFor 返回类型 T 的槽位存储，首次访问时惰性创建。
func slotsFor[T any]() *slots[T] {
	if v, ok := registry.Load(typeKey[T]{}); ok {
		return v.(*slots[T])
	}
	v, _ := registry.LoadOrStore(typeKey[T]{}, new(slots[T]))
	return v.(*slots[T])
}

// localTop 返回当前 goroutine 的本地栈顶，栈为空时返回 nil。
func (s *slots[T]) localTop() *T {
	v, ok := s.locals.Load(goid.Get())
	if !ok {
		return nil
	}
	return v.(*localCell[T]).top
}

// acquireCell 返回当前 goroutine 的本地单元，不存在时创建。
func (s *slots[T]) acquireCell() (int64, *localCell[T]) {
	id := goid.Get()
	if v, ok := s.locals.Load(id); ok {
		return id, v.(*localCell[T])
	}
	cell := new(localCell[T])
	s.locals.Store(id, cell)
	return id, cell
}

// dropCell 在本地栈清空后移除单元，避免已退出 goroutine 的条目常驻。
func (s *slots[T]) dropCell(id int64, cell *localCell[T]) {
	s.locals.CompareAndDelete(id, cell)
}
