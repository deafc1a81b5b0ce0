package xalloc

import (
	"fmt"
	"sync"
)

// Monotonic 在固定缓冲区上顺序分配，单次分配不会被单独回收，Reset 时整体回收。
//
// 缓冲区耗尽后转交 upstream；upstream 为 nil 时返回 ErrExhausted。
// Monotonic 可并发使用。
type Monotonic struct {
	mu        sync.Mutex
	buf       []byte
	offset    int
	upstream  Resource
	fallbacks int
}

// NewMonotonic 创建基于 buf 的 Monotonic。buf 的所有权转交给 Monotonic。
func NewMonotonic(buf []byte, upstream Resource) *Monotonic {
	return &Monotonic{buf: buf, upstream: upstream}
}

// Allocate 实现 Resource。
func (m *Monotonic) Allocate(size, align int) ([]byte, error) {
	if err := validate(size, align); err != nil {
		return nil, err
	}

	m.mu.Lock()
	start := alignOffset(m.buf, m.offset, align)
	if start <= len(m.buf) && size <= len(m.buf)-start {
		end := start + size
		m.offset = end
		b := m.buf[start:end:end]
		m.mu.Unlock()
		clear(b)
		return b, nil
	}
	m.fallbacks++
	upstream := m.upstream
	m.mu.Unlock()

	if upstream == nil {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrExhausted, size, m.Remaining())
	}
	return upstream.Allocate(size, align)
}

// Name 实现 Resource。
func (m *Monotonic) Name() string { return "monotonic" }

// Used 返回缓冲区已分配的字节数（含按地址对齐产生的填充）。
func (m *Monotonic) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset
}

// Remaining 返回缓冲区剩余的字节数。
func (m *Monotonic) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buf) - m.offset
}

// Fallbacks 返回转交 upstream（或因耗尽失败）的次数。
func (m *Monotonic) Fallbacks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fallbacks
}

// Reset 回收全部已分配空间。之前返回的切片不得继续使用。
func (m *Monotonic) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset = 0
	m.fallbacks = 0
}
