package xalloc

import (
	"fmt"
	"unsafe"
)

// Resource 是字节内存的来源。
type Resource interface {
	// Allocate 返回长度为 size 的切片，首字节地址按 align 对齐（2 的幂）。
	Allocate(size, align int) ([]byte, error)

	// Name 返回用于日志的名称。
	Name() string
}

type heapResource struct{}

var heap Resource = &heapResource{}

// Heap 返回基于 make 的默认 Resource，每次调用返回同一实例。
func Heap() Resource { return heap }

func (*heapResource) Allocate(size, align int) ([]byte, error) {
	if err := validate(size, align); err != nil {
		return nil, err
	}
	if align == 1 || size == 0 {
		return make([]byte, size), nil
	}
	// 多申请 align-1 字节，从第一个对齐地址开始切
	raw := make([]byte, size+align-1)
	start := alignOffset(raw, 0, align)
	return raw[start : start+size : start+size], nil
}

func (*heapResource) Name() string { return "heap" }

func validate(size, align int) error {
	if size < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if align <= 0 || align&(align-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAlign, align)
	}
	return nil
}

// alignOffset 返回 buf 中不小于 offset、且对应地址按 align 对齐的下标。
func alignOffset(buf []byte, offset, align int) int {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	addr := base + uintptr(offset)
	aligned := (addr + uintptr(align) - 1) &^ (uintptr(align) - 1)
	return offset + int(aligned-addr)
}
