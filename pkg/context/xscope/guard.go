package xscope

import "strconv"

// Kind 标识 Guard 所属的作用域。
type Kind int

const (
	// KindLocal 表示 goroutine 本地作用域。
	KindLocal Kind = iota
	// KindGlobal 表示进程全局作用域。
	KindGlobal
)

// String 返回 Kind 的可读字符串表示。
func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindGlobal:
		return "global"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// noCopy 使 go vet 的 copylocks 检查拒绝按值复制 Guard。
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Guard 持有一个上下文数据，并把它链接在对应槽位的栈顶。
//
// Guard 只能通过 PushXxx/NewXxx 获得，必须在同一作用域内以 defer 释放。
// 同一 (T, Kind) 的 Guard 必须按创建逆序释放，本包不校验这一前置条件。
type Guard[T any] struct {
	noCopy   noCopy
	data     T
	prev     *T
	slots    *slots[T]
	cell     *localCell[T] // 仅 KindLocal 使用
	gid      int64
	kind     Kind
	released bool
}

// Value 返回 Guard 持有的数据。Release 之后返回的指针指向零值。
func (g *Guard[T]) Value() *T {
	return &g.data
}

// Kind 返回 Guard 的作用域。
func (g *Guard[T]) Kind() Kind {
	return g.kind
}

// Release 将槽位恢复为创建前的值，然后清空持有的数据。
//
// Release 没有失败路径；重复调用为空操作。
// 必须在创建 Guard 的 goroutine 中调用（对 KindLocal 而言）。
func (g *Guard[T]) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true

	switch g.kind {
	case KindLocal:
		g.cell.top = g.prev
		if g.prev == nil {
			g.slots.dropCell(g.gid, g.cell)
		}
	default:
		g.slots.global = g.prev
	}

	var zero T
	g.data = zero
	g.prev = nil
	g.cell = nil
}

// link 把已构造完成的 Guard 压入槽位。调用前 g.data 必须已经就绪。
func (g *Guard[T]) link(s *slots[T], kind Kind) *Guard[T] {
	g.slots = s
	g.kind = kind
	switch kind {
	case KindLocal:
		g.gid, g.cell = s.acquireCell()
		g.prev = g.cell.top
		g.cell.top = &g.data
	default:
		g.prev = s.global
		s.global = &g.data
	}
	return g
}

// construct 执行构造函数，成功后才链接到槽位。
func construct[T any](s *slots[T], kind Kind, ctor func() (T, error)) (*Guard[T], error) {
	if ctor == nil {
		return nil, ErrNilConstructor
	}
	v, err := ctor()
	if err != nil {
		return nil, err
	}
	g := &Guard[T]{data: v}
	return g.link(s, kind), nil
}
